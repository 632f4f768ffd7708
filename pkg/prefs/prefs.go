// Package prefs persists the generation options a user wants to reuse between
// runs. Preferences live under the [preferences] section of json2beamer.ini,
// either next to the working directory or in the user config directory.
package prefs

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-json2beamer/pkg/model"
)

const (
	// FileName is the preference file looked up locally and in the config dir.
	FileName = "json2beamer.ini"
	// Section groups the preference keys in the ini file.
	Section = "preferences"
	// EnvPrefix prefixes environment overrides, e.g. JSON2BEAMER_TITLE.
	EnvPrefix = "JSON2BEAMER"

	appDir = "json2beamer"
)

// Preference keys as stored in the file.
const (
	KeyTitle       = "title"
	KeyFSQ         = "fsq"
	KeyFSA         = "fsa"
	KeyAlertColor  = "alert_color"
	KeyShuffleSeed = "shuffle_seed"
)

var keys = []string{KeyTitle, KeyFSQ, KeyFSA, KeyAlertColor, KeyShuffleSeed}

// Preferences is the persisted form of the generation options. Values are
// kept as typed by the user; Resolve interprets them.
type Preferences struct {
	Title       string `json:"title"`
	FSQ         string `json:"fsq"`
	FSA         string `json:"fsa"`
	AlertColor  string `json:"alert_color"`
	ShuffleSeed string `json:"shuffle_seed"`
}

// Defaults returns the preferences matching model.DefaultGenerationOptions.
// The alert color is left blank: the selected theme decides, then #FF0000.
func Defaults() Preferences {
	return Preferences{
		Title: model.DefaultTitle,
		FSQ:   string(model.DefaultQuestionFontSize),
		FSA:   string(model.DefaultAnswerFontSize),
	}
}

// Store reads and writes one preference file.
type Store struct {
	path      string
	workDir   string
	configDir string
	viper     *viper.Viper
}

// Option customises store construction.
type Option func(*Store)

// WithPath pins the preference file, skipping the lookup.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithWorkingDir overrides the directory searched for a local file.
func WithWorkingDir(dir string) Option {
	return func(s *Store) {
		s.workDir = dir
	}
}

// WithConfigDir overrides the user config directory.
func WithConfigDir(dir string) Option {
	return func(s *Store) {
		s.configDir = dir
	}
}

// Open resolves the preference file and reads it when it exists. A missing
// file is not an error; the store then reports defaults.
func Open(options ...Option) (*Store, error) {
	store := &Store{}
	for _, opt := range options {
		if opt != nil {
			opt(store)
		}
	}
	if store.path == "" {
		path, err := store.locate()
		if err != nil {
			return nil, err
		}
		store.path = path
	}

	v, err := newViper()
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(store.path)
	v.SetConfigType(configType(store.path))
	v.SetEnvPrefix(EnvPrefix)
	defaults := Defaults()
	for _, key := range keys {
		v.SetDefault(sectionKey(key), defaults.get(key))
		if err := v.BindEnv(sectionKey(key), EnvPrefix+"_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("prefs: bind env %s: %w", key, err)
		}
	}

	if _, err := os.Stat(store.path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("prefs: read %s: %w", store.path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("prefs: stat %s: %w", store.path, err)
	}

	store.viper = v
	return store, nil
}

// Path returns the file the store reads from and saves to.
func (s *Store) Path() string {
	return s.path
}

// Load returns the effective preferences: environment over file over
// defaults.
func (s *Store) Load() Preferences {
	var prefs Preferences
	for _, key := range keys {
		prefs.set(key, strings.TrimSpace(s.viper.GetString(sectionKey(key))))
	}
	return prefs
}

// Save writes prefs to the store path, creating its directory.
func (s *Store) Save(prefs Preferences) error {
	for _, key := range keys {
		s.viper.Set(sectionKey(key), prefs.get(key))
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prefs: create directory: %w", err)
	}
	if err := s.viper.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("prefs: write %s: %w", s.path, err)
	}
	return nil
}

// Resolve maps preferences onto generation options. Blank values take the
// defaults. A seed that is not an integer is hashed with FNV-1a so any text
// still yields a reproducible arrangement.
func (p Preferences) Resolve() model.GenerationOptions {
	opts := model.GenerationOptions{
		Title:            strings.TrimSpace(p.Title),
		QuestionFontSize: model.FontSize(strings.TrimSpace(p.FSQ)),
		AnswerFontSize:   model.FontSize(strings.TrimSpace(p.FSA)),
		AlertColor:       strings.TrimSpace(p.AlertColor),
		ShuffleSeed:      ParseSeed(p.ShuffleSeed),
	}
	if size, err := model.ParseFontSize(string(opts.QuestionFontSize)); err == nil {
		opts.QuestionFontSize = size
	}
	if size, err := model.ParseFontSize(string(opts.AnswerFontSize)); err == nil {
		opts.AnswerFontSize = size
	}
	// A blank alert color stays blank so the selected theme can supply it.
	alert := opts.AlertColor
	opts = opts.WithDefaults()
	opts.AlertColor = alert
	return opts
}

// ParseSeed interprets raw as a shuffle seed. Blank means unseeded.
func ParseSeed(raw string) *int64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if seed, err := strconv.ParseInt(value, 10, 64); err == nil {
		return model.Seed(seed)
	}
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(value))
	return model.Seed(int64(hash.Sum64()))
}

// Merge overlays the non-blank fields of override onto p.
func (p Preferences) Merge(override Preferences) Preferences {
	out := p
	for _, key := range keys {
		if value := strings.TrimSpace(override.get(key)); value != "" {
			out.set(key, value)
		}
	}
	return out
}

func (s *Store) locate() (string, error) {
	workDir := s.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("prefs: working directory: %w", err)
		}
		workDir = wd
	}
	local := filepath.Join(workDir, FileName)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local, nil
	}

	configDir := s.configDir
	if configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return local, nil
		}
		configDir = dir
	}
	return filepath.Join(configDir, appDir, FileName), nil
}

func (p Preferences) get(key string) string {
	switch key {
	case KeyTitle:
		return p.Title
	case KeyFSQ:
		return p.FSQ
	case KeyFSA:
		return p.FSA
	case KeyAlertColor:
		return p.AlertColor
	case KeyShuffleSeed:
		return p.ShuffleSeed
	}
	return ""
}

func (p *Preferences) set(key, value string) {
	switch key {
	case KeyTitle:
		p.Title = value
	case KeyFSQ:
		p.FSQ = value
	case KeyFSA:
		p.FSA = value
	case KeyAlertColor:
		p.AlertColor = value
	case KeyShuffleSeed:
		p.ShuffleSeed = value
	}
}

func sectionKey(key string) string {
	return Section + "." + key
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return iniFormat
	}
}
