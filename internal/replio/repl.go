/*
File    : gomix-pseudo/internal/replio/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package replio implements the interactive line-at-a-time REPL: one shared
// environment across inputs, colored feedback, readline-backed history
// editing, and "exit" to end the session.
package replio

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/gomix-pseudo/internal/builtins"
	"github.com/akashmaji946/gomix-pseudo/internal/environment"
	"github.com/akashmaji946/gomix-pseudo/internal/eval"
	"github.com/akashmaji946/gomix-pseudo/internal/lexer"
	"github.com/akashmaji946/gomix-pseudo/internal/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
}

// New creates a Repl with the given banner/version/author/separator/prompt.
func New(banner, version, author, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "%s\n", "Type your code and press enter.")
	cyanColor.Fprintf(w, "%s\n", "Type 'exit' to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the REPL loop: one Evaluator and one Environment shared across
// every line read, so a variable or subroutine declared on one line is
// visible on the next. An error is reported at the line boundary and the
// loop re-prompts without losing the environment.
func (r *Repl) Start(in io.Reader, out io.Writer) {
	r.printBanner(out)

	rl, err := readline.NewEx(&readline.Config{Prompt: r.Prompt, Stdin: io.NopCloser(in), Stdout: out})
	if err != nil {
		redColor.Fprintf(out, "[RUNTIME ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	builtinTable := builtins.New(out, in)
	evaluator := eval.New(out, in, builtinTable)
	env := evaluator.Global

	for {
		line, err := rl.Readline()
		if err != nil {
			out.Write([]byte("Good bye!\n"))
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			out.Write([]byte("Good bye!\n"))
			return
		}
		rl.SaveHistory(line)
		r.executeLine(out, line, evaluator, env)
	}
}

func (r *Repl) executeLine(out io.Writer, line string, evaluator *eval.Evaluator, env *environment.Environment) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(out, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	tokens, lexErr := lexer.Tokenize(line + "\n")
	if lexErr != nil {
		redColor.Fprintf(out, "%v\n", lexErr)
		return
	}
	prog, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		redColor.Fprintf(out, "%v\n", parseErr)
		return
	}
	result, evalErr := evaluator.RunIn(prog, env)
	if evalErr != nil {
		redColor.Fprintf(out, "%v\n", evalErr)
		return
	}
	if result != nil {
		yellowColor.Fprintf(out, "%s\n", result.String())
	}
}
