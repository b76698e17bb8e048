package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nbkernel/pkg/kernel"
)

// languageEntry is one row of the languages listing.
type languageEntry struct {
	Selector     kernel.Language     `json:"selector" yaml:"selector"`
	KernelSpec   kernel.KernelSpec   `json:"kernelspec" yaml:"kernelspec"`
	LanguageInfo kernel.LanguageInfo `json:"language_info" yaml:"language_info"`
}

// languageEntries returns every supported language with its descriptors.
func languageEntries() ([]languageEntry, error) {
	langs := kernel.Languages()
	entries := make([]languageEntry, 0, len(langs))
	for _, lang := range langs {
		spec, info, err := kernel.Lookup(lang)
		if err != nil {
			return nil, err
		}
		entries = append(entries, languageEntry{Selector: lang, KernelSpec: spec, LanguageInfo: info})
	}
	return entries, nil
}

// languagesCommand creates the languages command.
func (c *CLI) languagesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the supported --lang values and their kernel metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			entries, err := languageEntries()
			if err != nil {
				return err
			}
			if format == formatText {
				renderLanguageTable(cmd.OutOrStdout(), entries)
				return nil
			}
			return writeData(cmd.OutOrStdout(), format, entries)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(validFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func renderLanguageTable(w io.Writer, entries []languageEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Selector.String(),
			e.KernelSpec.Name,
			e.KernelSpec.DisplayName,
			e.LanguageInfo.Version,
			e.LanguageInfo.FileExtension,
			e.LanguageInfo.Mimetype,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Lang", "Kernel", "Display name", "Version", "Ext", "Mimetype").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return base.Inherit(styleHighlight).Bold(true)
			}
			return base
		})

	fmt.Fprintln(w, t.Render())
}
