package prefs

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

const iniFormat = "ini"

// iniCodec lets viper read and write ini files through go-ini. Sections map
// to nested keys; keys outside any section live at the top level.
type iniCodec struct{}

func (iniCodec) Decode(b []byte, v map[string]any) error {
	cfg, err := ini.Load(b)
	if err != nil {
		return err
	}
	for _, section := range cfg.Sections() {
		values := section.KeysHash()
		if section.Name() == ini.DefaultSection {
			for key, value := range values {
				v[key] = value
			}
			continue
		}
		nested := make(map[string]any, len(values))
		for key, value := range values {
			nested[key] = value
		}
		v[section.Name()] = nested
	}
	return nil
}

func (iniCodec) Encode(v map[string]any) ([]byte, error) {
	cfg := ini.Empty()
	for _, name := range sortedKeys(v) {
		values, ok := v[name].(map[string]any)
		if !ok {
			if _, err := cfg.Section("").NewKey(name, fmt.Sprint(v[name])); err != nil {
				return nil, err
			}
			continue
		}
		section, err := cfg.NewSection(name)
		if err != nil {
			return nil, err
		}
		for _, key := range sortedKeys(values) {
			if _, err := section.NewKey(key, fmt.Sprint(values[key])); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// newViper returns a viper instance that also understands ini files.
func newViper() (*viper.Viper, error) {
	codecs := viper.NewCodecRegistry()
	if err := codecs.RegisterCodec(iniFormat, iniCodec{}); err != nil {
		return nil, fmt.Errorf("prefs: register ini codec: %w", err)
	}
	return viper.NewWithOptions(viper.WithCodecRegistry(codecs)), nil
}
