package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/termenv"

	"github.com/alttpo/jsef"
	"github.com/alttpo/jsef/internal/highlight"
)

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func (c *cli) cmdFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	sf := addStyleFlags(fs, "pretty")
	form := fs.String("form", "dict", "top-level form: value, list or dict")
	write := fs.Bool("w", false, "write the result back to the file")
	check := fs.Bool("check", false, "only report files that are not formatted")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	style, err := sf.style()
	if err == nil {
		err = checkForm(*form)
	}
	if err != nil {
		c.fail(err)
		return 2
	}

	names := fs.Args()
	if len(names) == 0 {
		if *write {
			c.fail(errors.New("-w needs file arguments"))
			return 2
		}
		names = []string{"-"}
	}

	ret := 0
	for _, name := range names {
		src, err := c.readInput(name)
		if err != nil {
			c.fail(err)
			ret = 1
			continue
		}
		out, err := reformat(src, *form, style)
		if err != nil {
			c.fail(withName(name, err))
			ret = 1
			continue
		}

		switch {
		case *check:
			if out != src {
				fmt.Fprintln(c.stdout, displayName(name))
				ret = 1
			}
		case *write:
			if out == src {
				continue
			}
			if err := os.WriteFile(name, []byte(out), 0o644); err != nil {
				c.fail(err)
				ret = 1
			}
		default:
			fmt.Fprint(c.stdout, out)
		}
	}
	return ret
}

func reformat(src, form string, style jsef.Style) (string, error) {
	v, err := parseAs(src, form)
	if err != nil {
		return "", err
	}
	out, err := composeAs(v, form, style)
	if err != nil {
		return "", err
	}
	return terminate(out), nil
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

// -----------------------------------------------------------------------------
// get
// -----------------------------------------------------------------------------

func (c *cli) cmdGet(args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	sf := addStyleFlags(fs, "pretty")
	form := fs.String("form", "dict", "top-level form: value, list or dict")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fmt.Fprintf(c.stderr, "usage: %s get [flags] <path> [file]\n", appName)
		return 2
	}
	style, err := sf.style()
	if err == nil {
		err = checkForm(*form)
	}
	if err != nil {
		c.fail(err)
		return 2
	}

	path, err := jsef.ParsePath(fs.Arg(0))
	if err != nil {
		c.fail(fmt.Errorf("bad path %q: %w", fs.Arg(0), err))
		return 2
	}
	name := fs.Arg(1)
	src, err := c.readInput(name)
	if err != nil {
		c.fail(err)
		return 1
	}
	root, err := parseAs(src, *form)
	if err != nil {
		c.fail(withName(name, err))
		return 1
	}

	v, ok := root.Lookup(path...)
	if !ok {
		msg := fmt.Sprintf("no value at %s", fs.Arg(0))
		if alt := suggest(root, path); alt != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", yellow(alt))
		}
		fmt.Fprintln(c.stderr, red(msg))
		return 1
	}

	if s, ok := v.AsString(); ok {
		fmt.Fprintln(c.stdout, s)
		return 0
	}
	out, err := style.ComposeValue(v)
	if err != nil {
		c.fail(err)
		return 1
	}
	fmt.Fprint(c.stdout, terminate(out))
	return 0
}

// suggest follows path as far as it resolves and proposes the closest key
// for the first segment that does not, or "" when nothing is close.
func suggest(root *jsef.Value, path []string) string {
	cur := root
	var walked []string
	for _, seg := range path {
		switch {
		case cur.IsDict():
			next, ok := cur.Dict.Get(seg)
			if !ok {
				alt := closestMatch(seg, cur.Dict.Keys())
				if alt == "" {
					return ""
				}
				return joinPath(append(walked, alt))
			}
			cur = next
		case cur.IsList():
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(cur.List) {
				return ""
			}
			cur = cur.List[i]
		default:
			return ""
		}
		walked = append(walked, seg)
	}
	return ""
}

// closestMatch prefers candidates that contain target as a fuzzy
// subsequence and falls back to the nearest edit distance for typos.
func closestMatch(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", len(target)/2+1
	for _, cand := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(cand)); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func joinPath(path []string) string {
	parts := make([]string, len(path))
	for i, seg := range path {
		parts[i] = jsef.Str(seg).String()
	}
	return strings.Join(parts, ".")
}

// -----------------------------------------------------------------------------
// json / from-json
// -----------------------------------------------------------------------------

func (c *cli) cmdJSON(args []string) int {
	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	form := fs.String("form", "dict", "top-level form: value, list or dict")
	indent := fs.String("indent", "  ", "JSON indent, empty for one line")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := checkForm(*form); err != nil {
		c.fail(err)
		return 2
	}

	name := fs.Arg(0)
	src, err := c.readInput(name)
	if err != nil {
		c.fail(err)
		return 1
	}
	v, err := parseAs(src, *form)
	if err != nil {
		c.fail(withName(name, err))
		return 1
	}

	var out []byte
	if *indent == "" {
		out, err = json.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", *indent)
	}
	if err != nil {
		c.fail(err)
		return 1
	}
	fmt.Fprintln(c.stdout, string(out))
	return 0
}

func (c *cli) cmdFromJSON(args []string) int {
	fs := flag.NewFlagSet("from-json", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	sf := addStyleFlags(fs, "pretty")
	form := fs.String("form", "dict", "top-level form: value, list or dict")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	style, err := sf.style()
	if err == nil {
		err = checkForm(*form)
	}
	if err != nil {
		c.fail(err)
		return 2
	}

	name := fs.Arg(0)
	src, err := c.readInput(name)
	if err != nil {
		c.fail(err)
		return 1
	}
	var v jsef.Value
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		c.fail(withName(name, err))
		return 1
	}
	out, err := composeAs(&v, *form, style)
	if err != nil {
		c.fail(err)
		return 1
	}
	fmt.Fprint(c.stdout, terminate(out))
	return 0
}

// -----------------------------------------------------------------------------
// cat
// -----------------------------------------------------------------------------

func (c *cli) cmdCat(args []string) int {
	fs := flag.NewFlagSet("cat", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	when := fs.String("color", "auto", "colorize: auto, always or never")
	form := fs.String("form", "dict", "top-level form checked after printing: value, list, dict or none")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	theme, err := c.theme(*when)
	if err != nil {
		c.fail(err)
		return 2
	}

	name := fs.Arg(0)
	src, err := c.readInput(name)
	if err != nil {
		c.fail(err)
		return 1
	}
	if theme != nil {
		fmt.Fprint(c.stdout, theme.Render(src))
	} else {
		fmt.Fprint(c.stdout, src)
	}

	if *form == "none" {
		return 0
	}
	if err := checkForm(*form); err != nil {
		c.fail(err)
		return 2
	}
	if _, err := parseAs(src, *form); err != nil {
		c.fail(withName(name, err))
		return 1
	}
	return 0
}

// theme returns the highlight theme for stdout, or nil when output should
// stay plain.
func (c *cli) theme(when string) (*highlight.Theme, error) {
	r := lipgloss.NewRenderer(c.stdout)
	switch when {
	case "never":
		return nil, nil
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	case "auto":
		if color.NoColor || r.ColorProfile() == termenv.Ascii {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("unknown color mode %q", when)
	}
	th := highlight.NewTheme(r)
	return &th, nil
}
