// Package notebook reads, patches and writes notebook (.ipynb) documents.
//
// # Overview
//
// A notebook is a JSON object with a top-level "metadata" object. This
// package treats everything in the document as opaque except for two keys
// of that metadata object:
//
//   - metadata.kernelspec: which kernel runs the notebook
//   - metadata.language_info: the language of its code cells
//
// [Patch] overwrites both keys with the fixed descriptors of a
// [kernel.Language] and writes the document back in place:
//
//	res, err := notebook.Patch(ctx, "analysis.ipynb", kernel.Julia, notebook.Options{})
//	if err != nil {
//	    return err
//	}
//
// # Round-trip
//
// Numbers are decoded as [encoding/json.Number], so every value outside the
// two patched keys is written back with the same value it was read with
// (large integers and float spellings included). Formatting is not
// preserved: keys come out sorted and indentation follows [WriteOptions].
//
// # Errors
//
// All errors carry an [errors.Code]:
//
//   - FILE_ACCESS when the path cannot be read or written
//   - PARSE_ERROR when the file is not a single JSON value
//   - STRUCTURE_ERROR when the document is not an object or has no
//     metadata object (a missing metadata key is never created)
//   - KEY_LOOKUP when the language has no descriptors
//
// [Patch] resolves the language before reading the file and performs every
// check before writing, so a failed run never modifies the file. A failure
// during the write itself can leave the file truncated: there is no backup
// and no atomic replace.
//
// # Instrumentation
//
// [Patch] reports its start, its outcome and the size of the written
// document to the hooks registered with the observability package.
//
// [errors.Code]: github.com/matzehuels/nbkernel/pkg/errors.Code
// [kernel.Language]: github.com/matzehuels/nbkernel/pkg/kernel.Language
package notebook
