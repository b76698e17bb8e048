package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nbkernel/pkg/errors"
	"github.com/matzehuels/nbkernel/pkg/kernel"
	"github.com/matzehuels/nbkernel/pkg/notebook"
)

// notebookKernel is what show reports for one notebook. Lang is empty when
// the stored descriptors do not exactly match a supported language.
type notebookKernel struct {
	Path         string               `json:"path" yaml:"path"`
	Lang         kernel.Language      `json:"lang,omitempty" yaml:"lang,omitempty"`
	KernelSpec   *kernel.KernelSpec   `json:"kernelspec" yaml:"kernelspec"`
	LanguageInfo *kernel.LanguageInfo `json:"language_info" yaml:"language_info"`
}

// inspect loads path and reports its current kernel metadata.
func inspect(path string) (notebookKernel, error) {
	doc, err := notebook.Load(path)
	if err != nil {
		return notebookKernel{}, err
	}
	if _, err := doc.Metadata(); err != nil {
		return notebookKernel{}, err
	}

	nk := notebookKernel{Path: path}
	nk.KernelSpec, nk.LanguageInfo = doc.Kernel()
	if nk.KernelSpec != nil && nk.LanguageInfo != nil {
		if lang, ok := kernel.Match(*nk.KernelSpec, *nk.LanguageInfo); ok {
			nk.Lang = lang
		}
	}
	return nk, nil
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show NOTEBOOK...",
		Short: "Print the kernel metadata stored in notebooks",
		Long: `Show reads each notebook and prints its metadata.kernelspec and
metadata.language_info without modifying the file. When both match a
supported language exactly, the matching --lang value is shown as well.`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{"ipynb"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			logger := c.Logger

			var merr *multierror.Error
			results := make([]notebookKernel, 0, len(args))
			for _, path := range args {
				nk, err := inspect(path)
				if err != nil {
					logger.Debug("Show failed", "path", path, "err", errors.UserMessage(err))
					merr = multierror.Append(merr, fmt.Errorf("%s: %w", path, err))
					continue
				}
				results = append(results, nk)
			}

			out := cmd.OutOrStdout()
			if format == formatText {
				p := printer{w: out}
				for i, nk := range results {
					if i > 0 {
						p.newline()
					}
					printNotebookKernel(p, nk)
				}
			} else if err := writeData(out, format, results); err != nil {
				return err
			}

			if merr == nil {
				return nil
			}
			if len(merr.Errors) == 1 {
				return merr.Errors[0]
			}
			return merr
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(validFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func printNotebookKernel(p printer, nk notebookKernel) {
	p.title(nk.Path)
	if nk.KernelSpec == nil {
		p.warning("no kernelspec")
	} else {
		p.keyValue("kernel", nk.KernelSpec.Name)
		p.keyValue("display name", nk.KernelSpec.DisplayName)
	}
	if nk.LanguageInfo == nil {
		p.warning("no language_info")
	} else {
		p.keyValue("language", nk.LanguageInfo.Name)
		p.keyValue("version", nk.LanguageInfo.Version)
		p.keyValue("extension", nk.LanguageInfo.FileExtension)
	}
	if nk.Lang != "" {
		p.success("matches --lang %s", nk.Lang)
	} else {
		p.warning("does not match a supported language")
	}
}
