package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cdecl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cdecl",
	Short: "Check C and C++ declarations against a language dialect",
	Long: `cdecl checks declaration documents (YAML descriptions of C and C++
declarations) for legality in a chosen dialect, from K&R C to C++23, and
explains the accepted ones in English.`,
	SilenceUsage: true,
}

// main registers subcommands and persistent flags, then executes the root
// command. Any error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(langsCmd)
	rootCmd.AddCommand(typedefsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to cdecl.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("lang", "", "dialect for documents without a lang key (e.g. C99, C++17)")
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per document (0 = from config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
