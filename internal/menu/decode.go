package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a serialisation of a Spec.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrMalformed is the sentinel wrapped by every SpecError.
var ErrMalformed = errors.New("malformed menu specification")

// SpecError pinpoints the part of a Spec that violates an invariant.
type SpecError struct {
	Path   string
	Reason string
}

func (e *SpecError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrMalformed, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformed, e.Path, e.Reason)
}

func (e *SpecError) Unwrap() error {
	return ErrMalformed
}

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported spec extension %q", filepath.Ext(path))
	}
}

// Decode parses and validates a Spec.
func Decode(data []byte, format Format) (Spec, error) {
	var spec Spec
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, fmt.Errorf("decode json spec: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, fmt.Errorf("decode yaml spec: %w", err)
		}
	default:
		return Spec{}, fmt.Errorf("unsupported spec format %q", format)
	}
	if err := Validate(spec); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate refuses specs whose invariants cannot hold once built.
func Validate(spec Spec) error {
	if len(spec.Menus) == 0 {
		return &SpecError{Path: "menus", Reason: "at least one menu is required"}
	}
	for i, m := range spec.Menus {
		path := fmt.Sprintf("menus[%d]", i)
		if m.Options == nil {
			return &SpecError{Path: path + ".options", Reason: "missing options array"}
		}
		if err := validateOptions(path, m.Options); err != nil {
			return err
		}
	}
	return nil
}

func validateOptions(parent string, options []Option) error {
	for i, opt := range options {
		path := fmt.Sprintf("%s.options[%d]", parent, i)
		if opt.Checked != nil && opt.Selected != nil {
			return &SpecError{Path: path, Reason: "option sets both checked and selected"}
		}
		if err := validateOptions(path, opt.Options); err != nil {
			return err
		}
	}
	return nil
}
