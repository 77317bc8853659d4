package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cdecl/internal/dialect"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the supported dialects",
	Long:  `List every dialect a document may name in its lang key, with its predefined macro value; the default dialect is marked`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		aliases, err := cmd.Flags().GetBool("aliases")
		if err != nil {
			return fmt.Errorf("failed to get aliases flag: %w", err)
		}
		if aliases {
			for _, name := range dialect.Names(true) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		return renderLangs(cmd.OutOrStdout(), s.lang)
	},
}

func init() {
	langsCmd.Flags().Bool("aliases", false, "list every accepted name, aliases included")
}

func renderLangs(out io.Writer, current dialect.Lang) error {
	mark := color.New(color.FgGreen, color.Bold)
	var rows [][]string
	for _, l := range dialect.All() {
		prefix := "  "
		if l == current {
			prefix = mark.Sprint("* ")
		}
		macro := ""
		switch {
		case l.CPlusPlus() != "":
			macro = "__cplusplus " + l.CPlusPlus()
		case l.STDCVersion() != "":
			macro = "__STDC_VERSION__ " + l.STDCVersion()
		}
		rows = append(rows, []string{prefix + l.Name(), macro})
	}
	return writeTable(out, rows)
}

func langNames() []string {
	all := dialect.All()
	out := make([]string, 0, len(all))
	for _, l := range all {
		out = append(out, l.Name())
	}
	return out
}

// langRange is "K&RC..C++23".
func langRange() string {
	all := dialect.All()
	if len(all) == 0 {
		return ""
	}
	return all[0].Name() + ".." + all[len(all)-1].Name()
}
