package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/alttpo/jsef"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func runCLI(stdin string, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	c := &cli{stdin: strings.NewReader(stdin), stdout: &out, stderr: &errOut}
	code = c.run(args)
	return code, out.String(), errOut.String()
}

func TestCLI(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "xpass: fmt pretty",
			args:       []string{"fmt"},
			stdin:      "b = 1\na.x = [p q]",
			wantStdout: "b = 1\na.x = [\n\tp\n\tq\n]\n",
		},
		{
			name:       "xpass: fmt compact",
			args:       []string{"fmt", "-style", "compact"},
			stdin:      "b = 1\na = { x = [p q] }",
			wantStdout: "b=1 a.x=[p q]\n",
		},
		{
			name:       "xpass: fmt prelude",
			args:       []string{"fmt", "-style", "compact", "-prelude", "generated"},
			stdin:      "a=b",
			wantStdout: "# generated\na=b\n",
		},
		{
			name:  "xpass: fmt check formatted",
			args:  []string{"fmt", "-check", "-style", "compact"},
			stdin: "a=b c=d\n",
		},
		{
			name:       "xfail: fmt check unformatted",
			args:       []string{"fmt", "-check"},
			stdin:      "a=b",
			wantCode:   1,
			wantStdout: "<stdin>\n",
		},
		{
			name:       "xfail: fmt parse error",
			args:       []string{"fmt"},
			stdin:      "a = {b = c",
			wantCode:   1,
			wantStderr: "<stdin>: jsef: 1:11: expected '}', found end of input",
		},
		{
			name:       "xfail: fmt bad style",
			args:       []string{"fmt", "-style", "loud"},
			wantCode:   2,
			wantStderr: `unknown style "loud"`,
		},
		{
			name:       "xfail: fmt -w without files",
			args:       []string{"fmt", "-w"},
			wantCode:   2,
			wantStderr: "-w needs file arguments",
		},
		{
			name:       "xpass: get string",
			args:       []string{"get", "server.host"},
			stdin:      "server.host = localhost",
			wantStdout: "localhost\n",
		},
		{
			name:       "xpass: get through list",
			args:       []string{"get", "servers.1.name"},
			stdin:      "servers = [{name = a} {name = b}]",
			wantStdout: "b\n",
		},
		{
			name:       "xpass: get dict",
			args:       []string{"get", "-style", "compact", "server"},
			stdin:      "server.host = localhost server.port = 80",
			wantStdout: "{host=localhost port=80}\n",
		},
		{
			name:       "xfail: get suggests",
			args:       []string{"get", "server.hots"},
			stdin:      "server.host = localhost",
			wantCode:   1,
			wantStderr: "no value at server.hots (did you mean server.host?)",
		},
		{
			name:       "xfail: get bad path",
			args:       []string{"get", "a..b"},
			wantCode:   2,
			wantStderr: "bad path",
		},
		{
			name:       "xpass: json",
			args:       []string{"json", "-indent", ""},
			stdin:      "a = [1 2] b.c = d",
			wantStdout: `{"a":["1","2"],"b":{"c":"d"}}` + "\n",
		},
		{
			name:       "xpass: from-json",
			args:       []string{"from-json", "-style", "compact"},
			stdin:      `{"a": [1, true], "b": {"c": "x y"}}`,
			wantStdout: `a=[1 true] b.c="x y"` + "\n",
		},
		{
			name:       "xfail: from-json list as dict",
			args:       []string{"from-json"},
			stdin:      `["a"]`,
			wantCode:   1,
			wantStderr: "dict form needs a dict",
		},
		{
			name:       "xpass: cat plain",
			args:       []string{"cat", "-color", "never"},
			stdin:      "# c\na = b\n",
			wantStdout: "# c\na = b\n",
		},
		{
			name:       "xfail: cat reports parse errors",
			args:       []string{"cat", "-color", "never"},
			stdin:      "a = ",
			wantCode:   1,
			wantStdout: "a = ",
			wantStderr: "unexpected end of input",
		},
		{
			name:       "xfail: unknown command",
			args:       []string{"frobnicate"},
			wantCode:   2,
			wantStderr: `unknown command "frobnicate"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.stdin, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr)
			}
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestFmtWrite(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "conf.jsef")
	if err := os.WriteFile(name, []byte("a = {b=c}\nd=e"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI("", "fmt", "-w", name)
	if code != 0 {
		t.Fatalf("fmt -w exit code = %d: %s", code, stderr)
	}
	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if want := "a.b = c\nd = e\n"; string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	if code, stdout, _ := runCLI("", "fmt", "-check", name); code != 0 || stdout != "" {
		t.Errorf("fmt -check after -w = %d, %q", code, stdout)
	}
}

func TestSuggest(t *testing.T) {
	root, err := jsef.ParseValue(`{server = {host = h port = p} list = [{name = n}] "two words" = x}`)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path []string
		want string
	}{
		{[]string{"srv"}, "server"},
		{[]string{"server", "prt"}, "server.port"},
		{[]string{"server", "hots"}, "server.host"},
		{[]string{"list", "0", "nmae"}, "list.0.name"},
		{[]string{"two"}, `"two words"`},
		{[]string{"list", "7", "name"}, ""},
		{[]string{"zzzzzz"}, ""},
	}
	for _, tt := range tests {
		if got := suggest(root, tt.path); got != tt.want {
			t.Errorf("suggest(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSession(t *testing.T) {
	var out, errOut bytes.Buffer
	s := &session{form: "value", out: &out, errOut: &errOut}
	if err := s.setStyle("compact"); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		input   string
		want    string
		wantErr string
		exit    bool
	}{
		{input: "[a b]", want: "[a b]\n"},
		{input: ":style simple", want: ""},
		{input: "[a b]", want: `["a" "b"]` + "\n"},
		{input: ":json", want: "[\n  \"a\",\n  \"b\"\n]\n"},
		{input: ":form dict", want: ""},
		{input: "x=1", want: `"x"="1"` + "\n"},
		{input: ":form", want: "form is dict\n"},
		{input: "x=", wantErr: "unexpected end of input"},
		{input: ":style loud", wantErr: `unknown style "loud"`},
		{input: ":nope", want: "unknown command. Type :help for help.\n"},
		{input: ":quit", exit: true},
	}
	for _, step := range steps {
		out.Reset()
		errOut.Reset()
		if exit := s.handle(step.input); exit != step.exit {
			t.Errorf("handle(%q) exit = %v", step.input, exit)
		}
		if out.String() != step.want {
			t.Errorf("handle(%q) out = %q, want %q", step.input, out.String(), step.want)
		}
		if !strings.Contains(errOut.String(), step.wantErr) {
			t.Errorf("handle(%q) err = %q, want %q", step.input, errOut.String(), step.wantErr)
		}
	}
}
