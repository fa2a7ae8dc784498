/*
File    : gomix-pseudo/cmd/pseudo/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package main is the entry point for the pseudocode interpreter. Invoked
// with one positional argument it executes that source file; with no
// arguments it starts the interactive REPL. The explicit "run <file>" and
// "repl" subcommands do the same two things by name.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akashmaji946/gomix-pseudo/internal/builtins"
	"github.com/akashmaji946/gomix-pseudo/internal/eval"
	"github.com/akashmaji946/gomix-pseudo/internal/lexer"
	"github.com/akashmaji946/gomix-pseudo/internal/parser"
	"github.com/akashmaji946/gomix-pseudo/internal/replio"
)

const (
	version = "v1.0.0"
	author  = "akashmaji(@iisc.ac.in)"
	line    = "----------------------------------------------------------------"
	prompt  = "pseudo >>> "
	banner  = `
  ██████╗ ███████╗███████╗██╗   ██╗██████╗  ██████╗
  ██╔══██╗██╔════╝██╔════╝██║   ██║██╔══██╗██╔═══██╗
  ██████╔╝███████╗█████╗  ██║   ██║██║  ██║██║   ██║
  ██╔═══╝ ╚════██║██╔══╝  ██║   ██║██║  ██║██║   ██║
  ██║     ███████║███████╗╚██████╔╝██████╔╝╚██████╔╝
  ╚═╝     ╚══════╝╚══════╝ ╚═════╝ ╚═════╝  ╚═════╝
`
)

var redColor = color.New(color.FgRed)

func main() {
	root := &cobra.Command{
		Use:     "pseudo [file]",
		Short:   "Run or explore OCR-style pseudocode programs",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runFile(args[0])
			}
			startRepl()
			return nil
		},
	}

	root.AddCommand(runCmd(), replCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a pseudocode source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive line-at-a-time REPL",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			startRepl()
		},
	}
}

func startRepl() {
	r := replio.New(banner, version, author, line, prompt)
	r.Start(os.Stdin, os.Stdout)
}

// runFile reads and executes a pseudocode source file. A top-level panic is
// recovered as a last line of defense even though the lexer/parser/eval API
// itself never panics across its boundary.
func runFile(path string) error {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", recovered)
			os.Exit(1)
		}
	}()

	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read '%s': %v\n", path, err)
		os.Exit(1)
	}

	tokens, lexErr := lexer.Tokenize(string(source))
	if lexErr != nil {
		redColor.Fprintf(os.Stderr, "%v\n", lexErr)
		os.Exit(1)
	}

	prog, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		redColor.Fprintf(os.Stderr, "%v\n", parseErr)
		os.Exit(1)
	}

	builtinTable := builtins.New(os.Stdout, os.Stdin)
	evaluator := eval.New(os.Stdout, os.Stdin, builtinTable)
	if _, evalErr := evaluator.Run(prog); evalErr != nil {
		redColor.Fprintf(os.Stderr, "%v\n", evalErr)
		os.Exit(1)
	}
	return nil
}
