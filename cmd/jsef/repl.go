package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/alttpo/jsef"
	"github.com/alttpo/jsef/internal/highlight"
)

const (
	historyFile = ".jsef_history"
	promptMain  = "==> "
	promptCont  = "... "
	banner      = "JSeF REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands."
	helpText    = `
REPL commands:
  :help            Show this help
  :quit / :exit    Exit the REPL
  :style <name>    Output style: pretty, compact or simple
  :form <name>     Input form: value, list or dict
  :json            Print the last value as JSON
`
)

// session is the REPL state between inputs.
type session struct {
	style     jsef.Style
	styleName string
	form      string
	last      *jsef.Value
	theme     *highlight.Theme
	out       io.Writer
	errOut    io.Writer
}

func (c *cli) cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	styleName := fs.String("style", "pretty", "output style: pretty, compact or simple")
	form := fs.String("form", "value", "input form: value, list or dict")
	when := fs.String("color", "auto", "colorize: auto, always or never")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	s := &session{form: *form, out: c.stdout, errOut: c.stderr}
	if err := s.setStyle(*styleName); err != nil {
		c.fail(err)
		return 2
	}
	if err := checkForm(*form); err != nil {
		c.fail(err)
		return 2
	}
	theme, err := c.theme(*when)
	if err != nil {
		c.fail(err)
		return 2
	}
	s.theme = theme

	fmt.Fprintln(c.stdout, banner)

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

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont, s.probe)
		if !ok {
			fmt.Fprintln(c.stdout)
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		if s.handle(code) {
			break
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
	return 0
}

// readByParseProbe reads lines until probe accepts the buffer or fails for
// a reason other than running out of input.
func readByParseProbe(ln *liner.State, prompt, cont string, probe func(string) error) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C aborts the current input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if perr := probe(src); perr != nil && jsef.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

func (s *session) probe(src string) error {
	_, err := parseAs(src, s.form)
	return err
}

func (s *session) setStyle(name string) error {
	style, err := styleByName(name)
	if err != nil {
		return err
	}
	s.style, s.styleName = style, name
	return nil
}

// handle runs one complete input and reports whether the REPL should exit.
func (s *session) handle(code string) (exit bool) {
	if strings.HasPrefix(strings.TrimSpace(code), ":") {
		return s.command(code)
	}

	v, err := parseAs(code, s.form)
	if err != nil {
		fmt.Fprintln(s.errOut, red(err.Error()))
		return false
	}
	s.last = v
	s.print(v)
	return false
}

func (s *session) command(line string) (exit bool) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Fprint(s.out, helpText)

	case ":quit", ":exit":
		return true

	case ":style":
		if len(fields) < 2 {
			fmt.Fprintf(s.out, "style is %s\n", s.styleName)
			return false
		}
		if err := s.setStyle(fields[1]); err != nil {
			fmt.Fprintln(s.errOut, red(err.Error()))
		}

	case ":form":
		if len(fields) < 2 {
			fmt.Fprintf(s.out, "form is %s\n", s.form)
			return false
		}
		if err := checkForm(fields[1]); err != nil {
			fmt.Fprintln(s.errOut, red(err.Error()))
			return false
		}
		s.form = fields[1]

	case ":json":
		if s.last == nil {
			fmt.Fprintln(s.out, "no value yet")
			return false
		}
		out, err := json.MarshalIndent(s.last, "", "  ")
		if err != nil {
			fmt.Fprintln(s.errOut, red(err.Error()))
			return false
		}
		fmt.Fprintln(s.out, string(out))

	default:
		fmt.Fprintf(s.out, "unknown command. Type :help for help.\n")
	}
	return false
}

func (s *session) print(v *jsef.Value) {
	out, err := composeAs(v, s.form, s.style)
	if err != nil {
		fmt.Fprintln(s.errOut, red(err.Error()))
		return
	}
	if s.theme != nil {
		out = s.theme.Render(out)
	}
	fmt.Fprintln(s.out, out)
}
