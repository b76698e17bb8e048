package notebook

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/nbkernel/pkg/errors"
	"github.com/matzehuels/nbkernel/pkg/kernel"
)

// Document is a decoded notebook: the top-level JSON object.
type Document map[string]any

// Read decodes a notebook from r.
//
// r must contain exactly one JSON value, and that value must be an object.
// Malformed input fails with PARSE_ERROR; a non-object value (array, string,
// null, ...) fails with STRUCTURE_ERROR. Read does not close r.
func Read(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode notebook")
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, errors.New(errors.ErrCodeParse, "unexpected data after top-level JSON value")
		}
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode notebook")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeStructure, "top-level JSON value is %s, not an object", kindOf(v))
	}
	return Document(obj), nil
}

// Load reads and decodes the notebook at path. The file is closed before
// Load returns.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileAccess, err, "open notebook")
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Metadata returns the notebook's metadata object.
func (d Document) Metadata() (map[string]any, error) {
	v, ok := d[keyMetadata]
	if !ok {
		return nil, errors.New(errors.ErrCodeStructure, "notebook has no %q key", keyMetadata)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeStructure, "notebook %q is %s, not an object", keyMetadata, kindOf(v))
	}
	return m, nil
}

// Kernel returns the descriptors currently stored in the notebook's
// metadata. Either result is nil when the key is absent or is not an object
// of the expected shape.
func (d Document) Kernel() (*kernel.KernelSpec, *kernel.LanguageInfo) {
	meta, err := d.Metadata()
	if err != nil {
		return nil, nil
	}

	var spec *kernel.KernelSpec
	if v, ok := meta[keyKernelSpec]; ok {
		var s kernel.KernelSpec
		if convert(v, &s) == nil {
			spec = &s
		}
	}

	var info *kernel.LanguageInfo
	if v, ok := meta[keyLanguageInfo]; ok {
		var li kernel.LanguageInfo
		if convert(v, &li) == nil {
			info = &li
		}
	}
	return spec, info
}

// convert re-decodes a generic JSON value into dst. Only objects are
// accepted.
func convert(v any, dst any) error {
	if _, ok := v.(map[string]any); !ok {
		return errors.New(errors.ErrCodeStructure, "value is %s, not an object", kindOf(v))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// kindOf names the JSON type of a decoded value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64:
		return "a number"
	default:
		return "an unknown value"
	}
}
