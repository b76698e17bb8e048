// Package cli implements the nbkernel command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nbkernel/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "nbkernel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// interactive reports whether the picker can take over the terminal.
	interactive func() bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		interactive: stdioIsTerminal,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself is the patcher.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.patchCommand()
	root.Use = appName + " --notebook_path PATH --lang PYTHON|JULIA [NOTEBOOK...]"
	root.Short = "Set the kernel metadata of Jupyter notebooks"
	root.Long = `nbkernel rewrites metadata.kernelspec and metadata.language_info of a
notebook (.ipynb) file so that it opens with the Python or Julia kernel.

All other notebook content is kept as is. The file is overwritten in place.`
	root.Version = buildinfo.Resolve().Version
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// stdioIsTerminal reports whether both stdin and stdout are terminals.
func stdioIsTerminal() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}
