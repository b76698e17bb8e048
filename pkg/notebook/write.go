package notebook

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/nbkernel/pkg/errors"
)

// DefaultIndent is the indentation Jupyter uses for .ipynb files.
const DefaultIndent = 1

// WriteOptions controls how a document is serialized.
type WriteOptions struct {
	// Indent is the number of spaces per nesting level. Zero writes compact
	// JSON on a single line.
	Indent int
}

// Encode serializes doc. Object keys are sorted, HTML characters are left
// unescaped and the output ends with a newline.
func Encode(doc Document, opts WriteOptions) ([]byte, error) {
	if opts.Indent < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "indent must not be negative, got %d", opts.Indent)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", opts.Indent))
	}
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode notebook")
	}
	return buf.Bytes(), nil
}

// Write encodes doc and writes it to w.
func Write(w io.Writer, doc Document, opts WriteOptions) error {
	data, err := Encode(doc, opts)
	if err != nil {
		return err
	}
	return writeTo(w, data)
}

// Save writes doc to path, replacing the file's contents in place. The
// document is fully encoded before the file is opened, so an encoding
// failure leaves the file untouched. An existing file keeps its permissions.
func Save(path string, doc Document, opts WriteOptions) error {
	data, err := Encode(doc, opts)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeTo(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeFileAccess, err, "write notebook")
	}
	return nil
}

// writeFile truncates path and writes data to it.
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileAccess, err, "open notebook for writing")
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeFileAccess, err, "write notebook")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFileAccess, err, "close notebook")
	}
	return nil
}
