package cli

import (
	"encoding/json"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nbkernel/pkg/errors"
	"github.com/matzehuels/nbkernel/pkg/kernel"
)

func TestInspect(t *testing.T) {
	pySpec, pyInfo, _ := kernel.Lookup(kernel.Python)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    notebookKernel
	}{
		{
			name:    "python",
			content: `{` + pythonMetadata + `}`,
			want:    notebookKernel{Lang: kernel.Python, KernelSpec: &pySpec, LanguageInfo: &pyInfo},
		},
		{
			name:    "no kernel",
			content: `{"metadata":{}}`,
			want:    notebookKernel{},
		},
		{
			name: "other version",
			content: `{"metadata":{"kernelspec":{"display_name":"Python 3 (ipykernel)","language":"python","name":"python3"},` +
				`"language_info":{"file_extension":".py","mimetype":"text/x-python","name":"python","version":"3.12.1"}}}`,
			want: notebookKernel{
				KernelSpec:   &pySpec,
				LanguageInfo: &kernel.LanguageInfo{FileExtension: ".py", Mimetype: "text/x-python", Name: "python", Version: "3.12.1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".ipynb", tt.content)
			got, err := inspect(path)
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
			tt.want.Path = path
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("inspect mismatch (-want +got):\n%s", diff)
			}
			if after := readFile(t, path); after != tt.content {
				t.Errorf("inspect modified the notebook: %s", after)
			}
		})
	}
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		content  string
		wantCode errors.Code
	}{
		{"malformed", `{"metadata":`, errors.ErrCodeParse},
		{"array", `[]`, errors.ErrCodeStructure},
		{"no metadata", `{"cells":[]}`, errors.ErrCodeStructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".ipynb", tt.content)
			if _, err := inspect(path); !errors.Is(err, tt.wantCode) {
				t.Errorf("inspect error = %v, want %s", err, tt.wantCode)
			}
		})
	}

	if _, err := inspect(filepath.Join(dir, "missing.ipynb")); !errors.Is(err, errors.ErrCodeFileAccess) {
		t.Errorf("inspect missing file error = %v, want FILE_ACCESS", err)
	}
}

func TestShowCommandText(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	julia := writeFile(t, dir, "julia.ipynb", `{`+juliaMetadata+`}`)
	bare := writeFile(t, dir, "bare.ipynb", `{"metadata":{}}`)

	out, err := execute(t, c, "show", julia, bare)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{julia, "julia-1.8", "matches --lang JULIA", bare, "no kernelspec", "no language_info"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommandData(t *testing.T) {
	jlSpec, jlInfo, _ := kernel.Lookup(kernel.Julia)

	tests := []struct {
		format    string
		unmarshal func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			c, _ := newTestCLI(t)
			path := writeFile(t, t.TempDir(), "nb.ipynb", `{`+juliaMetadata+`}`)

			out, err := execute(t, c, "show", "--format", tt.format, path)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			var got []notebookKernel
			if err := tt.unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("unmarshal: %v\n%s", err, out)
			}
			want := []notebookKernel{{Path: path, Lang: kernel.Julia, KernelSpec: &jlSpec, LanguageInfo: &jlInfo}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("show mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShowCommandErrors(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ipynb", `{`+pythonMetadata+`}`)
	bad := writeFile(t, dir, "bad.ipynb", `{"cells":[]}`)
	missing := filepath.Join(dir, "missing.ipynb")

	out, err := execute(t, c, "show", missing, good, bad)

	var merr *multierror.Error
	if !stderrors.As(err, &merr) || len(merr.Errors) != 2 {
		t.Fatalf("error = %v, want two aggregated errors", err)
	}
	if !strings.Contains(merr.Errors[0].Error(), missing) {
		t.Errorf("first error %q does not name %s", merr.Errors[0], missing)
	}
	if !strings.Contains(out, "matches --lang PYTHON") {
		t.Errorf("good notebook not shown:\n%s", out)
	}
}

func TestShowCommandNeedsArgs(t *testing.T) {
	c, _ := newTestCLI(t)
	if _, err := execute(t, c, "show"); err == nil {
		t.Error("show without notebooks succeeded")
	}
}
