package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nbkernel/pkg/errors"
	"github.com/matzehuels/nbkernel/pkg/observability"
)

// logHooks reports notebook events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// NotebookHooks returns hooks that log patch events through the CLI's
// logger. They are only visible with --verbose.
func (c *CLI) NotebookHooks() observability.NotebookHooks {
	return logHooks{logger: c.Logger}
}

func (h logHooks) OnPatchStart(_ context.Context, path, lang string) {
	h.logger.Debug("Patch started", "path", path, "lang", lang)
}

func (h logHooks) OnPatchComplete(_ context.Context, path, lang string, changed bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Patch failed", "path", path, "lang", lang, "code", errors.GetCode(err), "elapsed", d)
		return
	}
	h.logger.Debug("Patch complete", "path", path, "lang", lang, "changed", changed, "elapsed", d)
}

func (h logHooks) OnWrite(_ context.Context, dest string, size int) {
	h.logger.Debug("Wrote notebook", "dest", dest, "bytes", size)
}
