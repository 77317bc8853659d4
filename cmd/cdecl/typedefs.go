package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cdecl/internal/diagfmt"
	"cdecl/internal/dialect"
	"cdecl/internal/driver"
	"cdecl/internal/english"
	"cdecl/internal/gibberish"
	"cdecl/internal/typedefs"
)

var typedefsCmd = &cobra.Command{
	Use:   "typedefs [typedef documents...]",
	Short: "List the typedefs visible in a dialect",
	Long: `List the predefined typedefs and those of the configured (and given) typedef
documents that are visible in the selected dialect, explained in English`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		userOnly, err := cmd.Flags().GetBool("user")
		if err != nil {
			return fmt.Errorf("failed to get user flag: %w", err)
		}

		opts := &driver.Options{
			Lang:           s.lang,
			MaxDiagnostics: s.cfg.Check.MaxDiagnostics,
			Typedefs:       append(append([]string(nil), s.cfg.Typedefs.Files...), args...),
		}
		registry, batch, err := driver.LoadTypedefs(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("failed to load typedefs: %w", err)
		}
		for i := range batch.Typedefs {
			r := &batch.Typedefs[i]
			if r.Bag.Len() > 0 {
				r.Bag.Sort()
				diagfmt.Pretty(cmd.ErrOrStderr(), r.Bag, batch.FileSet, diagfmt.PrettyOpts{Color: s.color, Context: 1, ShowHints: true})
			}
		}

		renderTypedefs(cmd.OutOrStdout(), registry, s.lang, userOnly)
		if batch.HasErrors() {
			return fmt.Errorf("typedef documents have errors")
		}
		return nil
	},
}

func init() {
	typedefsCmd.Flags().Bool("user", false, "list only typedefs from documents")
}

func renderTypedefs(out io.Writer, registry *typedefs.Registry, lang dialect.Lang, userOnly bool) {
	ctx := dialect.NewContext(lang)
	var rows [][]string
	for _, e := range registry.Entries() {
		if userOnly && !e.UserDefined {
			continue
		}
		if !e.Langs.Contains(lang) {
			continue
		}
		rows = append(rows, []string{e.Name.Full(), english.Type(e.Tree, e.Def, ctx), gibberish.TypeName(e.Tree, e.Def, ctx)})
	}
	_ = writeTable(out, rows)
}
