package cli

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nbkernel/pkg/errors"
)

const (
	formatText = "text" // styled terminal output
	formatJSON = "json"
	formatYAML = "yaml"
)

var validFormats = []string{formatText, formatJSON, formatYAML}

// validateFormat checks that f is one of validFormats.
func validateFormat(f string) error {
	for _, v := range validFormats {
		if f == v {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be one of %s)", f, strings.Join(validFormats, ", "))
}

// writeData encodes v as JSON or YAML. Text output is rendered by each
// command itself.
func writeData(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInternal, "format %s is not a data format", format)
	}
}
