package cli

import (
	"context"
	stderrors "errors"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nbkernel/pkg/config"
	"github.com/matzehuels/nbkernel/pkg/errors"
	"github.com/matzehuels/nbkernel/pkg/kernel"
	"github.com/matzehuels/nbkernel/pkg/notebook"
)

// patchOpts holds the command-line flags of the patch (root) command.
type patchOpts struct {
	notebookPath string // --notebook_path
	lang         string // selector as typed; validated in resolveLanguage
	indent       int    // output indentation
	configPath   string // explicit config file, empty for the default location
	dryRun       bool   // print instead of writing
	interactive  bool   // pick the language in a TUI; overrides the config file
}

// patchCommand creates the command that patches notebooks. It is used as
// the root command.
func (c *CLI) patchCommand() *cobra.Command {
	opts := patchOpts{indent: notebook.DefaultIndent}

	cmd := &cobra.Command{
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runPatch(ctx, cmd, &opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.notebookPath, "notebook_path", "", "notebook file to patch")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "kernel language: PYTHON or JULIA")
	cmd.Flags().IntVar(&opts.indent, "indent", opts.indent, "spaces per indentation level, 0 for compact JSON")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nbkernel/config.toml)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the patched notebook to stdout instead of writing it")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose the language interactively when --lang is not set")

	_ = cmd.MarkFlagFilename("notebook_path", "ipynb")
	_ = cmd.MarkFlagFilename("config", "toml")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)

	return cmd
}

// completeLanguages offers every selector for --lang.
func completeLanguages(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	langs := kernel.Languages()
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = l.String()
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// runPatch patches every requested notebook with the same descriptors.
// Notebooks are processed in order; failures are collected and the
// remaining notebooks are still attempted unless ctx is cancelled.
func (c *CLI) runPatch(ctx context.Context, cmd *cobra.Command, opts *patchOpts, args []string) error {
	logger := loggerFromContext(ctx)

	paths := args
	if opts.notebookPath != "" {
		paths = append([]string{opts.notebookPath}, args...)
	}
	if len(paths) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no notebook given (use --notebook_path)")
	}

	cfg := &config.Config{}
	if needsConfig(cmd, opts) {
		var err error
		if cfg, err = loadConfig(opts.configPath); err != nil {
			return err
		}
		if cfg.Path != "" {
			logger.Debug("Loaded config", "path", cfg.Path)
		}
	}

	lang, err := c.resolveLanguage(ctx, opts, cfg)
	if err != nil {
		return err
	}

	indent := opts.indent
	if !cmd.Flags().Changed("indent") && cfg.Indent != nil {
		indent = *cfg.Indent
	}
	if indent < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--indent must not be negative, got %d", indent)
	}

	nbOpts := notebook.Options{WriteOptions: notebook.WriteOptions{Indent: indent}}
	if opts.dryRun {
		nbOpts.Output = cmd.OutOrStdout()
	}

	prog := newProgress(logger)
	var merr *multierror.Error
	patched := 0
	for _, path := range paths {
		logger.Debug("Patching notebook", "path", path, "lang", lang)
		res, err := notebook.Patch(ctx, path, lang, nbOpts)
		if err != nil {
			if stderrors.Is(err, context.Canceled) {
				if merr != nil {
					for _, e := range merr.Errors {
						logger.Warn("Patch failed before cancel", "err", errors.UserMessage(e))
					}
				}
				return err
			}
			logger.Debug("Patch failed", "path", path, "err", errors.UserMessage(err))
			merr = multierror.Append(merr, err)
			continue
		}
		patched++
		switch {
		case opts.dryRun:
			logger.Info("Printed patched notebook", "path", res.Path, "kernel", res.Kernel.Name)
		case res.Changed:
			logger.Info("Patched notebook", "path", res.Path, "kernel", res.Kernel.Name)
		default:
			logger.Info("Notebook already uses kernel, rewritten", "path", res.Path, "kernel", res.Kernel.Name)
		}
	}

	if len(paths) > 1 {
		prog.done("Finished", "patched", patched, "failed", len(paths)-patched)
	}
	if merr == nil {
		return nil
	}
	if len(merr.Errors) == 1 {
		return merr.Errors[0]
	}
	return merr
}

// resolveLanguage picks the selector from, in order: --lang, the
// interactive picker, the config file.
func (c *CLI) resolveLanguage(ctx context.Context, opts *patchOpts, cfg *config.Config) (kernel.Language, error) {
	switch {
	case opts.lang != "":
		return kernel.ParseLanguage(opts.lang)
	case opts.interactive:
		return c.pickLanguage(ctx)
	case cfg.Lang != "":
		lang, err := kernel.ParseLanguage(cfg.Lang)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeKeyLookup, err, "config %s", cfg.Path)
		}
		return lang, nil
	default:
		return kernel.ParseLanguage("")
	}
}

// needsConfig reports whether the config file has to be read. An explicit
// --config is always read; the default file is skipped when flags already
// supply the language and the indentation.
func needsConfig(cmd *cobra.Command, opts *patchOpts) bool {
	if opts.configPath != "" {
		return true
	}
	langSet := opts.lang != "" || opts.interactive
	return !langSet || !cmd.Flags().Changed("indent")
}

// loadConfig loads the config at path, or the default config when path is
// empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		defaultPath, _ := config.DefaultPath()
		return nil, errors.Wrap(errors.GetCode(err), err, "default config %s (fix it, or pass --config with another file)", defaultPath)
	}
	return cfg, nil
}
