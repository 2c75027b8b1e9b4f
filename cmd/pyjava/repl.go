package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/agenthands/pyjava/internal/config"
	"github.com/agenthands/pyjava/internal/diag"
	"github.com/agenthands/pyjava/pkg/compiler/python"
)

const (
	banner      = "pyjava repl: type Python statements, :vars, :reset or :quit"
	promptMain  = ">>> "
	promptCont  = "... "
	historyFile = ".pyjava_history"
)

func runRepl(cfg config.Config, log *diag.Logger, stdout, stderr io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sess := python.NewSession(cfg.Output.Indent)
	fmt.Fprintln(stdout, banner)
	tm := log.Start("repl", "session started")
	count := 0
	defer func() { tm.Finish("session ended", count) }()

	for {
		snippet, ok := readSnippet(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return nil
		}
		trimmed := strings.TrimSpace(snippet)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(snippet, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := handleCommand(sess, trimmed, stdout); quit {
				return nil
			}
			continue
		}
		evalSnippet(sess, snippet, stdout, stderr)
		count++
	}
}

// readSnippet reads one statement, or a block header followed by its body
// up to an empty line. ok is false at end of input.
func readSnippet(ln *liner.State) (string, bool) {
	line, err := ln.Prompt(promptMain)
	if errors.Is(err, io.EOF) {
		return "", false
	}
	if err != nil {
		return "", true
	}
	if !python.Continues(line) {
		return line, true
	}

	var b strings.Builder
	b.WriteString(line)
	for {
		more, err := ln.Prompt(promptCont)
		if errors.Is(err, io.EOF) || strings.TrimSpace(more) == "" {
			return b.String(), true
		}
		if err != nil {
			return "", true
		}
		b.WriteByte('\n')
		b.WriteString(more)
	}
}

func evalSnippet(sess *python.Session, snippet string, stdout, stderr io.Writer) {
	res, err := sess.Eval(snippet)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return
	}
	fmt.Fprint(stdout, res.Code)
	for _, d := range res.Diagnostics {
		fmt.Fprintln(stderr, "warning:", d)
	}
}

// handleCommand runs a colon command and reports whether to leave.
func handleCommand(sess *python.Session, cmd string, w io.Writer) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":reset":
		sess.Reset()
		fmt.Fprintln(w, "variables cleared")
	case ":vars":
		vars := sess.Vars()
		if len(vars) == 0 {
			fmt.Fprintln(w, "no variables")
		}
		for _, v := range vars {
			fmt.Fprintf(w, "%s %s\n", v.Type, v.Name)
		}
	default:
		fmt.Fprintf(w, "unknown command %s. Type :vars, :reset or :quit.\n", cmd)
	}
	return false
}
