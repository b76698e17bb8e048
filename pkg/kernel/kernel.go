// Package kernel defines the notebook kernel descriptors nbkernel knows about.
//
// A [Language] selects one entry of a fixed lookup table. Each entry pairs a
// [KernelSpec] (written to metadata.kernelspec) with a [LanguageInfo]
// (written to metadata.language_info). The table is closed: there is no way
// to register additional languages.
//
//	spec, info, err := kernel.Lookup(kernel.Julia)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(spec.Name) // julia-1.8
package kernel

import (
	"github.com/matzehuels/nbkernel/pkg/errors"
)

// Language is a language selector. Valid values are [Python] and [Julia].
type Language string

// Supported language selectors.
const (
	Python Language = "PYTHON"
	Julia  Language = "JULIA"
)

// KernelSpec identifies the execution kernel a notebook expects.
type KernelSpec struct {
	DisplayName string `json:"display_name" yaml:"display_name"`
	Language    string `json:"language" yaml:"language"`
	Name        string `json:"name" yaml:"name"`
}

// LanguageInfo describes the language of a notebook's code cells.
type LanguageInfo struct {
	FileExtension string `json:"file_extension" yaml:"file_extension"`
	Mimetype      string `json:"mimetype" yaml:"mimetype"`
	Name          string `json:"name" yaml:"name"`
	Version       string `json:"version" yaml:"version"`
}

// descriptors builds a table entry. Entries are constructed on every call so
// callers can never mutate a shared value.
type descriptors func() (KernelSpec, LanguageInfo)

var table = map[Language]descriptors{
	Python: pythonDescriptors,
	Julia:  juliaDescriptors,
}

func pythonDescriptors() (KernelSpec, LanguageInfo) {
	spec := KernelSpec{
		DisplayName: "Python 3 (ipykernel)",
		Language:    "python",
		Name:        "python3",
	}
	info := LanguageInfo{
		FileExtension: ".py",
		Mimetype:      "text/x-python",
		Name:          "python",
		Version:       "3.9.16",
	}
	return spec, info
}

func juliaDescriptors() (KernelSpec, LanguageInfo) {
	spec := KernelSpec{
		DisplayName: "Julia 1.8.1",
		Language:    "julia",
		Name:        "julia-1.8",
	}
	info := LanguageInfo{
		FileExtension: ".jl",
		Mimetype:      "application/julia",
		Name:          "julia",
		Version:       "1.8.1",
	}
	return spec, info
}

// Languages returns every supported selector in display order.
func Languages() []Language {
	return []Language{Python, Julia}
}

// ParseLanguage converts s to a Language. Matching is case-sensitive, so
// "python" is rejected. Unknown values fail with [errors.ErrCodeKeyLookup].
func ParseLanguage(s string) (Language, error) {
	lang := Language(s)
	if _, ok := table[lang]; !ok {
		return "", unknown(s)
	}
	return lang, nil
}

// Lookup returns the descriptors for lang.
func Lookup(lang Language) (KernelSpec, LanguageInfo, error) {
	build, ok := table[lang]
	if !ok {
		return KernelSpec{}, LanguageInfo{}, unknown(string(lang))
	}
	spec, info := build()
	return spec, info, nil
}

// Match returns the selector whose descriptors equal spec and info.
func Match(spec KernelSpec, info LanguageInfo) (Language, bool) {
	for _, lang := range Languages() {
		s, i := table[lang]()
		if s == spec && i == info {
			return lang, true
		}
	}
	return "", false
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

func unknown(s string) error {
	if s == "" {
		return errors.New(errors.ErrCodeKeyLookup, "no language selected (want one of %v)", Languages())
	}
	return errors.New(errors.ErrCodeKeyLookup, "unknown language %q (want one of %v)", s, Languages())
}
