package notebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/matzehuels/nbkernel/pkg/errors"
	"github.com/matzehuels/nbkernel/pkg/kernel"
	"github.com/matzehuels/nbkernel/pkg/observability"
)

const (
	keyMetadata     = "metadata"
	keyKernelSpec   = "kernelspec"
	keyLanguageInfo = "language_info"
)

// SetKernel replaces metadata.kernelspec and metadata.language_info with
// spec and info. Other metadata keys are left alone.
//
// The metadata object must already exist; SetKernel never creates it and
// fails with STRUCTURE_ERROR instead, leaving doc unmodified. The returned
// bool reports whether either key held a different value before the call.
func (d Document) SetKernel(spec kernel.KernelSpec, info kernel.LanguageInfo) (bool, error) {
	meta, err := d.Metadata()
	if err != nil {
		return false, err
	}

	specValue, err := toValue(spec)
	if err != nil {
		return false, err
	}
	infoValue, err := toValue(info)
	if err != nil {
		return false, err
	}

	changed := !reflect.DeepEqual(meta[keyKernelSpec], specValue) ||
		!reflect.DeepEqual(meta[keyLanguageInfo], infoValue)

	meta[keyKernelSpec] = specValue
	meta[keyLanguageInfo] = infoValue
	return changed, nil
}

// toValue converts a descriptor to the generic form Read produces, so the
// patched keys compare and encode like any other decoded value.
func toValue(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode descriptor")
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode descriptor")
	}
	return out, nil
}

// Options configures [Patch].
type Options struct {
	WriteOptions

	// Output, when set, receives the patched document instead of the
	// notebook file. The file on disk is then only read.
	Output io.Writer
}

// Result describes a completed patch.
type Result struct {
	Path     string
	Language kernel.Language
	Kernel   kernel.KernelSpec
	Info     kernel.LanguageInfo

	// Changed is false when the notebook already carried the descriptors.
	// The file is rewritten either way.
	Changed bool
}

// Patch sets the kernel metadata of the notebook at path to the descriptors
// of lang and writes the document back to path.
//
// The language is resolved before the file is read, and the document is
// loaded, patched and encoded before the file is opened for writing, so
// every failure except a failed write leaves the file unmodified. ctx is
// checked before reading and before writing.
func Patch(ctx context.Context, path string, lang kernel.Language, opts Options) (*Result, error) {
	spec, info, err := kernel.Lookup(lang)
	if err != nil {
		return nil, err
	}

	hooks := observability.Notebook()
	hooks.OnPatchStart(ctx, path, lang.String())
	start := time.Now()

	changed, err := patch(ctx, path, spec, info, opts)
	hooks.OnPatchComplete(ctx, path, lang.String(), changed, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:     path,
		Language: lang,
		Kernel:   spec,
		Info:     info,
		Changed:  changed,
	}, nil
}

func patch(ctx context.Context, path string, spec kernel.KernelSpec, info kernel.LanguageInfo, opts Options) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	doc, err := Load(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	changed, err := doc.SetKernel(spec, info)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	data, err := Encode(doc, opts.WriteOptions)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}
	dest := path
	if opts.Output != nil {
		dest = "-"
		err = writeTo(opts.Output, data)
	} else {
		err = writeFile(path, data)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	observability.Notebook().OnWrite(ctx, dest, len(data))
	return changed, nil
}
