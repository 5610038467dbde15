package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/alttpo/jsef"
)

const appName = "jsef"

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	if len(args) < 1 {
		c.usage()
		return 2
	}

	cmd := args[0]
	switch cmd {
	case "fmt":
		return c.cmdFmt(args[1:])
	case "get":
		return c.cmdGet(args[1:])
	case "json":
		return c.cmdJSON(args[1:])
	case "from-json":
		return c.cmdFromJSON(args[1:])
	case "cat":
		return c.cmdCat(args[1:])
	case "repl":
		return c.cmdRepl(args[1:])
	case "-h", "--help", "help":
		c.usage()
		return 0
	default:
		fmt.Fprintf(c.stderr, "%s: unknown command %q\n", appName, cmd)
		c.usage()
		return 2
	}
}

func (c *cli) usage() {
	fmt.Fprintf(c.stderr, `Usage:
  %s fmt [-style s] [-form f] [-w] [-check] [file ...]   Reformat files or stdin
  %s get [-style s] [-form f] <path> [file]              Print the value at a.b.0
  %s json [-form f] [-indent s] [file]                   Convert to JSON
  %s from-json [-style s] [-form f] [file]               Convert from JSON
  %s cat [-color when] [-form f] [file]                  Print with syntax colors
  %s repl [-style s] [-form f]                           Start the REPL

Styles are pretty, compact and simple. Forms are value, list and dict.
`, appName, appName, appName, appName, appName, appName)
}

func (c *cli) fail(err error) {
	fmt.Fprintln(c.stderr, red(err.Error()))
}

// styleFlags are the composer options shared by the sub-commands that write
// JSeF.
type styleFlags struct {
	name    string
	indent  string
	prelude string
	quote   bool
}

func addStyleFlags(fs *flag.FlagSet, def string) *styleFlags {
	s := &styleFlags{}
	fs.StringVar(&s.name, "style", def, "output style: pretty, compact or simple")
	fs.StringVar(&s.indent, "indent", "", "indent unit, implies multiline output")
	fs.StringVar(&s.prelude, "prelude", "", "comment written before the output")
	fs.BoolVar(&s.quote, "quote", false, "quote every string")
	return s
}

func (s *styleFlags) style() (jsef.Style, error) {
	style, err := styleByName(s.name)
	if err != nil {
		return style, err
	}
	if s.indent != "" {
		style = style.WithIndent(s.indent)
	}
	if s.quote {
		style = style.WithForceQuotes(true)
	}
	return style.WithPrelude(s.prelude), nil
}

func styleByName(name string) (jsef.Style, error) {
	switch name {
	case "pretty":
		return jsef.Pretty, nil
	case "compact":
		return jsef.Compact, nil
	case "simple":
		return jsef.Simple, nil
	}
	return jsef.Style{}, fmt.Errorf("unknown style %q", name)
}

func checkForm(form string) error {
	switch form {
	case "value", "list", "dict":
		return nil
	}
	return fmt.Errorf("unknown form %q", form)
}

// parseAs parses text in the given top-level form and wraps lists and dicts
// into a single value.
func parseAs(text, form string) (*jsef.Value, error) {
	switch form {
	case "list":
		l, err := jsef.ParseList(text)
		if err != nil {
			return nil, err
		}
		return jsef.ListOf(l...), nil
	case "dict":
		d, err := jsef.ParseDict(text)
		if err != nil {
			return nil, err
		}
		return jsef.DictOf(d), nil
	}
	return jsef.ParseValue(text)
}

func composeAs(v *jsef.Value, form string, style jsef.Style) (string, error) {
	switch form {
	case "list":
		if !v.IsList() {
			return "", fmt.Errorf("list form needs a list, got %v", v.Kind)
		}
		return style.ComposeList(v.List)
	case "dict":
		if !v.IsDict() {
			return "", fmt.Errorf("dict form needs a dict, got %v", v.Kind)
		}
		return style.ComposeDict(v.Dict)
	}
	return style.ComposeValue(v)
}

// readInput reads the named file, or stdin for no name or "-".
func (c *cli) readInput(name string) (string, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(c.stdin)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	return string(b), err
}

// withName prefixes parse errors with the input name the way compilers do.
func withName(name string, err error) error {
	if name == "" || name == "-" {
		name = "<stdin>"
	}
	return fmt.Errorf("%s: %w", name, err)
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
