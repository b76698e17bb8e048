package kernel

import (
	"testing"

	"github.com/matzehuels/nbkernel/pkg/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		lang     Language
		wantSpec KernelSpec
		wantInfo LanguageInfo
	}{
		{
			lang:     Python,
			wantSpec: KernelSpec{DisplayName: "Python 3 (ipykernel)", Language: "python", Name: "python3"},
			wantInfo: LanguageInfo{FileExtension: ".py", Mimetype: "text/x-python", Name: "python", Version: "3.9.16"},
		},
		{
			lang:     Julia,
			wantSpec: KernelSpec{DisplayName: "Julia 1.8.1", Language: "julia", Name: "julia-1.8"},
			wantInfo: LanguageInfo{FileExtension: ".jl", Mimetype: "application/julia", Name: "julia", Version: "1.8.1"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			spec, info, err := Lookup(tt.lang)
			if err != nil {
				t.Fatalf("Lookup(%s) error: %v", tt.lang, err)
			}
			if spec != tt.wantSpec {
				t.Errorf("Lookup(%s) spec = %+v, want %+v", tt.lang, spec, tt.wantSpec)
			}
			if info != tt.wantInfo {
				t.Errorf("Lookup(%s) info = %+v, want %+v", tt.lang, info, tt.wantInfo)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, lang := range []Language{"", "RUST", "python"} {
		_, _, err := Lookup(lang)
		if !errors.Is(err, errors.ErrCodeKeyLookup) {
			t.Errorf("Lookup(%q) error = %v, want KEY_LOOKUP", lang, err)
		}
	}
}

func TestLookupReturnsFreshValues(t *testing.T) {
	spec, _, _ := Lookup(Python)
	spec.Name = "mutated"

	again, _, _ := Lookup(Python)
	if again.Name != "python3" {
		t.Errorf("Lookup(Python) after mutation: Name = %q, want %q", again.Name, "python3")
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"PYTHON", Python, false},
		{"JULIA", Julia, false},
		{"python", "", true},
		{"Julia", "", true},
		{"", "", true},
		{"R", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeKeyLookup) {
				t.Errorf("ParseLanguage(%q) code = %s, want KEY_LOOKUP", tt.input, errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 2 || langs[0] != Python || langs[1] != Julia {
		t.Errorf("Languages() = %v, want [PYTHON JULIA]", langs)
	}
	for _, l := range langs {
		if _, _, err := Lookup(l); err != nil {
			t.Errorf("Lookup(%s) error: %v", l, err)
		}
	}
}

func TestMatch(t *testing.T) {
	pySpec, pyInfo, _ := Lookup(Python)
	jlSpec, jlInfo, _ := Lookup(Julia)

	tests := []struct {
		name   string
		spec   KernelSpec
		info   LanguageInfo
		want   Language
		wantOK bool
	}{
		{"python", pySpec, pyInfo, Python, true},
		{"julia", jlSpec, jlInfo, Julia, true},
		{"mixed", pySpec, jlInfo, "", false},
		{"other version", pySpec, LanguageInfo{FileExtension: ".py", Mimetype: "text/x-python", Name: "python", Version: "3.11.4"}, "", false},
		{"empty", KernelSpec{}, LanguageInfo{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.spec, tt.info)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Match() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
