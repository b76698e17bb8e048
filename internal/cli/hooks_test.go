package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/nbkernel/pkg/observability"
)

func TestNotebookHooksLogPatches(t *testing.T) {
	c, logs := newTestCLI(t)
	observability.SetNotebookHooks(c.NotebookHooks())
	t.Cleanup(observability.Reset)

	path := writeFile(t, t.TempDir(), "nb.ipynb", `{"metadata":{}}`)
	if _, err := execute(t, c, "--notebook_path", path, "--lang", "JULIA", "--indent", "0"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"Patch started", "lang=JULIA", "Wrote notebook", "Patch complete", "changed=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q:\n%s", want, out)
		}
	}
}

func TestNotebookHooksLogFailures(t *testing.T) {
	c, logs := newTestCLI(t)
	observability.SetNotebookHooks(c.NotebookHooks())
	t.Cleanup(observability.Reset)

	path := writeFile(t, t.TempDir(), "nb.ipynb", `{"cells":[]}`)
	if _, err := execute(t, c, "--notebook_path", path, "--lang", "PYTHON"); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(logs.String(), "code=STRUCTURE_ERROR") {
		t.Errorf("logs missing failure code:\n%s", logs.String())
	}
}

// cancelOnFailure cancels the command context after the first failed patch.
type cancelOnFailure struct {
	observability.NoopNotebookHooks
	cancel context.CancelFunc
}

func (h cancelOnFailure) OnPatchComplete(_ context.Context, _, _ string, _ bool, _ time.Duration, err error) {
	if err != nil {
		h.cancel()
	}
}

func TestPatchCommandCancelReportsEarlierFailures(t *testing.T) {
	c, logs := newTestCLI(t)
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.ipynb")
	const content = `{"metadata":{}}`
	good := writeFile(t, dir, "good.ipynb", content)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	observability.SetNotebookHooks(cancelOnFailure{cancel: cancel})
	t.Cleanup(observability.Reset)

	root := c.RootCommand()
	root.SetArgs([]string{"--lang", "PYTHON", missing, good})
	root.SetOut(&bytes.Buffer{})
	err := root.ExecuteContext(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if !strings.Contains(logs.String(), "Patch failed before cancel") || !strings.Contains(logs.String(), missing) {
		t.Errorf("earlier failure not reported:\n%s", logs.String())
	}
	if got := readFile(t, good); got != content {
		t.Errorf("notebook patched after cancel: %s", got)
	}
}
