package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/prefs"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("cli: aborted")

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal so the interactive flow can be tested
// without one.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

// newPromptDriver is a test seam for the interactive flow.
var newPromptDriver = func() PromptDriver {
	return surveyDriver{}
}

type surveyDriver struct{}

func (surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		validate := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans any) error {
			return validate(fmt.Sprint(ans))
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// askPreferences walks the user through every generation option, starting
// from current.
func askPreferences(ctx context.Context, driver PromptDriver, current prefs.Preferences) (prefs.Preferences, error) {
	out := current

	title, err := driver.Input(ctx, InputConfig{
		Message: "Deck title:",
		Default: current.Title,
		Validator: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("title is required")
			}
			return nil
		},
	})
	if err != nil {
		return prefs.Preferences{}, err
	}
	out.Title = strings.TrimSpace(title)

	sizes := fontSizeNames()
	for _, field := range []struct {
		message string
		target  *string
	}{
		{message: "Question font size:", target: &out.FSQ},
		{message: "Answer font size:", target: &out.FSA},
	} {
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      field.message,
			Options:      sizes,
			DefaultIndex: indexOf(sizes, strings.TrimPrefix(*field.target, `\`)),
			PageSize:     len(sizes),
		})
		if err != nil {
			return prefs.Preferences{}, err
		}
		if idx >= 0 {
			*field.target = sizes[idx]
		}
	}

	alert, err := driver.Input(ctx, InputConfig{
		Message: "Alert color (#RRGGBB, blank follows the theme):",
		Default: current.AlertColor,
		Validator: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return nil
			}
			_, err := model.NormalizeHexColor(value)
			return err
		},
	})
	if err != nil {
		return prefs.Preferences{}, err
	}
	out.AlertColor = strings.TrimSpace(alert)

	seed, err := driver.Input(ctx, InputConfig{
		Message: "Shuffle seed:",
		Default: current.ShuffleSeed,
		Help:    "Leave blank for a new arrangement on every run. Any text works as a seed.",
	})
	if err != nil {
		return prefs.Preferences{}, err
	}
	out.ShuffleSeed = strings.TrimSpace(seed)

	return out, nil
}

func fontSizeNames() []string {
	sizes := model.FontSizes()
	names := make([]string, len(sizes))
	for i, size := range sizes {
		names[i] = string(size)
	}
	return names
}
