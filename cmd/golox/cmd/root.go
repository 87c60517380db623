// Package cmd implements the golox command line, a single-binary
// REPL/run-file dispatcher per spec.md §6, pared down from go-dws's
// cmd/dwscript/cmd subcommand tree (run/lex/parse/compile/fmt/version)
// to the one spec.md actually calls for.
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ochardlang/golox/pkg/golox"
)

// Version information, set by build flags (-ldflags), mirroring
// go-dws's cmd/dwscript/cmd/root.go version-variable pattern.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const usageLine = "Usage: golox [script]"

var rootCmd = &cobra.Command{
	Use:   "golox [script]",
	Short: "A tree-walking interpreter",
	Long: `golox runs scripts in a small dynamically typed scripting language.

With no arguments it starts an interactive REPL; given one argument it
runs that file as a script.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(_ *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			runPrompt(os.Stdin, os.Stdout, os.Stderr)
			return nil
		case 1:
			return runFile(args[0], os.Stdout, os.Stderr)
		default:
			fmt.Fprintln(os.Stdout, usageLine)
			os.Exit(64)
			return nil
		}
	},
}

// Execute runs the root command. main.go's only job is to call this and
// translate its error into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

// runFile loads and runs a single script once, per spec.md §6: exit 65
// on a static error, 70 on an uncaught runtime error, 0 otherwise.
func runFile(path string, stdout, stderr io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	hadError, hadRuntimeError := golox.Run(string(content), stdout, stderr)
	switch {
	case hadRuntimeError:
		os.Exit(70)
	case hadError:
		os.Exit(65)
	}
	return nil
}

// runPrompt implements the REPL: each line runs against the same Session
// so variable and function declarations persist across lines (spec.md
// §6), while a per-line error never aborts the loop — only EOF does.
func runPrompt(in io.Reader, stdout, stderr io.Writer) {
	session := golox.NewSession(stderr, stdout)
	scanner := bufio.NewScanner(in)

	fmt.Fprint(stdout, "> ")
	for scanner.Scan() {
		session.Run(scanner.Text())
		fmt.Fprint(stdout, "> ")
	}
}
