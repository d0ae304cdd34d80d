package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// document mirrors Options in a YAML-friendly shape; PythonVersion is
// written "major.minor" rather than as a two-element array, matching the
// way real project config files spell it.
type document struct {
	StrictOptional     bool   `yaml:"strict_optional"`
	PythonVersion      string `yaml:"python_version"`
	DisallowAny        bool   `yaml:"disallow_any"`
	WarnReturnAny      bool   `yaml:"warn_return_any"`
	WarnRedundantCasts bool   `yaml:"warn_redundant_casts"`
	ShowNoneErrors     bool   `yaml:"show_none_errors"`
	StrictBoolean      bool   `yaml:"strict_boolean"`
	TypingMode         string `yaml:"typing_mode"`
	SuppressErrors     bool   `yaml:"suppress_errors"`
}

// Load reads an Options bag from a YAML document, starting from Default()
// for any field the document omits.
func Load(r io.Reader) (Options, error) {
	opts := Default()

	doc := document{
		StrictOptional:     opts.StrictOptional,
		DisallowAny:        opts.DisallowAny,
		WarnReturnAny:      opts.WarnReturnAny,
		WarnRedundantCasts: opts.WarnRedundantCasts,
		ShowNoneErrors:     opts.ShowNoneErrors,
		StrictBoolean:      opts.StrictBoolean,
		SuppressErrors:     opts.SuppressErrors,
	}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return opts, nil
		}
		return Options{}, fmt.Errorf("config: decode yaml: %w", err)
	}

	opts.StrictOptional = doc.StrictOptional
	opts.DisallowAny = doc.DisallowAny
	opts.WarnReturnAny = doc.WarnReturnAny
	opts.WarnRedundantCasts = doc.WarnRedundantCasts
	opts.ShowNoneErrors = doc.ShowNoneErrors
	opts.StrictBoolean = doc.StrictBoolean
	opts.SuppressErrors = doc.SuppressErrors

	if doc.PythonVersion != "" {
		var major, minor int
		if _, err := fmt.Sscanf(doc.PythonVersion, "%d.%d", &major, &minor); err == nil {
			opts.PythonVersion = [2]int{major, minor}
		}
	}

	switch doc.TypingMode {
	case "weak":
		opts.TypingMode = ModeWeak
	default:
		opts.TypingMode = ModeFull
	}

	return opts, nil
}

// MarshalYAML renders o as a YAML document, the inverse of Load.
func (o Options) MarshalYAML() (interface{}, error) {
	return document{
		StrictOptional:     o.StrictOptional,
		PythonVersion:      fmt.Sprintf("%d.%d", o.PythonVersion[0], o.PythonVersion[1]),
		DisallowAny:        o.DisallowAny,
		WarnReturnAny:      o.WarnReturnAny,
		WarnRedundantCasts: o.WarnRedundantCasts,
		ShowNoneErrors:     o.ShowNoneErrors,
		StrictBoolean:      o.StrictBoolean,
		TypingMode:         o.TypingMode.String(),
		SuppressErrors:     o.SuppressErrors,
	}, nil
}
