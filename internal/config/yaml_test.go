package config

import (
	"strings"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
strict_optional: false
python_version: "3.9"
disallow_any: true
typing_mode: weak
`
	opts, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.StrictOptional {
		t.Fatalf("expected strict_optional to be overridden to false")
	}
	if opts.PythonVersion != [2]int{3, 9} {
		t.Fatalf("expected python_version 3.9, got %v", opts.PythonVersion)
	}
	if !opts.DisallowAny {
		t.Fatalf("expected disallow_any to be true")
	}
	if opts.TypingMode != ModeWeak {
		t.Fatalf("expected weak typing mode, got %v", opts.TypingMode)
	}
}

func TestLoadEmptyDocumentReturnsDefaults(t *testing.T) {
	opts, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts != Default() {
		t.Fatalf("expected Default() for an empty document, got %+v", opts)
	}
}

func TestMarshalYAMLRoundTripsPythonVersion(t *testing.T) {
	doc, err := Default().MarshalYAML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rendered, ok := doc.(document)
	if !ok {
		t.Fatalf("expected a document, got %T", doc)
	}
	if rendered.PythonVersion != "3.12" {
		t.Fatalf("expected 3.12, got %s", rendered.PythonVersion)
	}
}

func TestOptionsSuppressedInWeakMode(t *testing.T) {
	opts := Default().WithTypingMode(ModeWeak)
	if !opts.Suppressed() {
		t.Fatalf("expected weak mode to suppress diagnostics")
	}
	if Default().Suppressed() {
		t.Fatalf("expected full mode with no explicit suppression to not suppress")
	}
}
