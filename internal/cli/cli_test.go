package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tinta/internal/version"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/paths"
	"github.com/arthur-debert/tinta/pkg/testutil"
)

// run executes the root command with args and stdin, returning stdout
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	testutil.IsolateEnv(t)
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	out := strings.Split(s, "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " ")
	}
	return out
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
	assert.Contains(t, out, "tinta "+version.Version)
}

func TestPrint(t *testing.T) {
	t.Run("markup", func(t *testing.T) {
		out, err := run(t, "", "print", "[bold]hello[/]", "world")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", out)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, "[i]piped[/i]\n", "print")
		require.NoError(t, err)
		assert.Equal(t, "piped\n", out)
	})

	t.Run("no_markup", func(t *testing.T) {
		out, err := run(t, "", "--no-markup", "print", "[bold]x[/]")
		require.NoError(t, err)
		assert.Equal(t, "[bold]x[/]\n", out)
	})

	t.Run("no_newline", func(t *testing.T) {
		out, err := run(t, "", "print", "-n", "x")
		require.NoError(t, err)
		assert.Equal(t, "x", out)
	})

	t.Run("justify", func(t *testing.T) {
		out, err := run(t, "", "--width", "9", "print", "-j", "right", "abc")
		require.NoError(t, err)
		assert.Equal(t, []string{"      abc"}, lines(out))
	})

	t.Run("bad_markup", func(t *testing.T) {
		_, err := run(t, "", "print", "[bold]x[/italic]")
		assert.True(t, errors.IsErrorCode(err, errors.ErrMarkupSyntax), "got %v", err)
	})

	t.Run("forced_color", func(t *testing.T) {
		out, err := run(t, "", "--color-system", "standard", "print", "[red]x[/]")
		require.NoError(t, err)
		// a buffer is not a terminal, so color stays off until forced
		assert.Equal(t, "x\n", out)

		t.Setenv("FORCE_COLOR", "1")
		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--color-system", "standard", "print", "[red]x[/]"})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "\x1b[31mx\x1b[0m\n", buf.String())
	})
}

func TestRule(t *testing.T) {
	out, err := run(t, "", "--width", "10", "rule")
	require.NoError(t, err)
	assert.Equal(t, []string{"──────────"}, lines(out))

	out, err = run(t, "", "--width", "10", "rule", "--char", "=", "--align", "left", "Hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi ======="}, lines(out))
}

func TestPanel(t *testing.T) {
	out, err := run(t, "", "panel", "--fit", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"╭───╮", "│ x │", "╰───╯"}, lines(out))

	out, err = run(t, "", "--width", "8", "panel", "--box", "ascii", "x")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	assert.Equal(t, "| x    |", got[1])

	_, err = run(t, "", "panel", "--box", "wobbly", "x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTable(t *testing.T) {
	out, err := run(t, "Name,Qty\napple,3\n", "table")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"┏━━━━━━━┳━━━━━┓",
		"┃ Name  ┃ Qty ┃",
		"┡━━━━━━━╇━━━━━┩",
		"│ apple │ 3   │",
		"└───────┴─────┘",
	}, lines(out))

	out, err = run(t, "Name,Qty\napple,3\n", "table", "--justify", "left,right")
	require.NoError(t, err)
	assert.Contains(t, out, "│ apple │   3 │")

	out, err = run(t, "a;b\nc;d\n", "table", "--no-header", "-d", ";", "--box", "none")
	require.NoError(t, err)
	assert.Equal(t, []string{"a  b", "c  d"}, lines(out))
}

func TestBuildTable(t *testing.T) {
	tbl, err := buildTable("h1,h2\n1,2\n3\n", tableFlags{boxName: "rounded"})
	require.NoError(t, err)
	assert.Len(t, tbl.Columns, 2)
	assert.Equal(t, 2, tbl.RowCount())
	assert.True(t, tbl.ShowHeader)

	// brackets in plain headers are escaped so they print literally
	tbl, err = buildTable("[x],y\n", tableFlags{})
	require.NoError(t, err)
	assert.Equal(t, "[[x]]", tbl.Columns[0].Header)

	_, err = buildTable("", tableFlags{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = buildTable("a\n", tableFlags{delimiter: "::"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = buildTable("a,\"b\n", tableFlags{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestParseTree(t *testing.T) {
	root, err := parseTree("root\n  a\n    a1\n\n  b\n")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Len(t, root.Children[0].Children, 1)
	assert.Empty(t, root.Children[1].Children)

	_, err = parseTree("one\ntwo\n")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = parseTree("\n  \n")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTree(t *testing.T) {
	out, err := run(t, "root\n\ta\n\t\ta1\n\tb\n", "tree")
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "├── a", "│   └── a1", "└── b"}, lines(out))

	out, err = run(t, "root\n  a\n  b\n", "tree", "--hide-root")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines(out))
}

func TestSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0644))

	out, err := run(t, "", "syntax", "-n", path)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "1")
	assert.Contains(t, got[0], "package main")
	assert.Contains(t, got[2], "func main() {}")

	_, err = run(t, "", "syntax", filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}

func TestMarkdown(t *testing.T) {
	out, err := run(t, "# Title\n\nSome text.\n", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Some text.")
	assert.NotContains(t, out, "\x1b[")
}

func TestBanner(t *testing.T) {
	out, err := run(t, "", "banner", "--list-fonts")
	require.NoError(t, err)
	assert.Contains(t, lines(out), "standard")

	out, err = run(t, "", "banner", "hi")
	require.NoError(t, err)
	assert.Greater(t, len(lines(out)), 2)
}

func TestProfile(t *testing.T) {
	out, err := run(t, "", "--width", "50", "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "color system")
	assert.Contains(t, out, "50x25")
	assert.Contains(t, out, "utf-8")
	// plain output has no swatch
	assert.NotContains(t, out, "\x1b[")
}

func TestExport(t *testing.T) {
	t.Run("svg_stdout", func(t *testing.T) {
		out, err := run(t, "", "export", "--title", "demo", "[bold red]hi[/]")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<"))
		assert.Contains(t, out, "<svg")
		assert.Contains(t, out, "demo")
		assert.Contains(t, out, "hi")
	})

	t.Run("text_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		out, err := run(t, "", "export", "-f", "text", "-o", path, "[bold]hi[/]")
		require.NoError(t, err)
		assert.Contains(t, out, "Saved")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hi\n", string(data))
	})

	t.Run("ansi", func(t *testing.T) {
		out, err := run(t, "", "export", "-f", "ansi", "[bold]hi[/]")
		require.NoError(t, err)
		assert.Equal(t, "\x1b[1mhi\x1b[0m\n", out)
	})

	t.Run("bad_format", func(t *testing.T) {
		_, err := run(t, "", "export", "-f", "pdf", "x")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("bad_theme", func(t *testing.T) {
		_, err := run(t, "", "export", "--terminal-theme", "neon", "x")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestProgress(t *testing.T) {
	out, err := run(t, "", "progress", "--tasks", "2", "--steps", "3", "--delay", "1ms", "--columns", "description,count,percentage")
	require.NoError(t, err)
	// without cursor control only the final frame is printed
	assert.Equal(t, []string{"task 1  3/3  100%", "task 2  3/3  100%"}, lines(out))

	_, err = run(t, "", "progress", "--columns", "sparkles")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = run(t, "", "progress", "--tasks", "0")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestStatus(t *testing.T) {
	out, err := run(t, "", "status", "--for", "5ms", "-m", "[b]Waiting[/]")
	require.NoError(t, err)
	assert.Equal(t, []string{"✔ Waiting"}, lines(out))

	_, err = run(t, "", "status")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = run(t, "", "status", "-s", "nope", "--for", "1ms")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestStatusRunsCommand(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no sh available")
	}
	out, err := run(t, "", "status", "-m", "running", "--", sh, "-c", "echo one; echo two")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"one", "two"}, got[:2])
	assert.True(t, strings.HasPrefix(got[2], "✔ "))

	_, err = run(t, "", "status", "--", sh, "-c", "exit 3")
	assert.Error(t, err)

	// escapes from the child are decoded, not passed through
	out, err = run(t, "", "status", "--", sh, "-c", `printf '\033[31mred\033[0m\n'`)
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b")
	assert.Equal(t, "red", lines(out)[0])
}

func TestLineWriter(t *testing.T) {
	var got []string
	w := &lineWriter{fn: func(l string) error { got = append(got, l); return nil }}
	_, err := w.Write([]byte("a\nb"))
	require.NoError(t, err)
	_, err = w.Write([]byte("c\n\nd"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bc", ""}, got)
	require.NoError(t, w.Flush())
	assert.Equal(t, []string{"a", "bc", "", "d"}, got)
}

func TestConfigCommands(t *testing.T) {
	out, err := run(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, paths.ConfigFile()+"\n", out)

	out, err = run(t, "", "--width", "72", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[console]")
	assert.Contains(t, out, "width = 72")

	out, err = run(t, "", "config", "show", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "refresh_per_second")

	path := filepath.Join(t.TempDir(), "tinta.toml")
	out, err = run(t, "", "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	_, err = run(t, "", "config", "init", "--path", path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	// the written file loads cleanly
	_, err = run(t, "", "--config", path, "print", "ok")
	require.NoError(t, err)
}

func TestConfigFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[console]\nwidth = 6\n"), 0644))
	out, err := run(t, "", "--config", path, "rule")
	require.NoError(t, err)
	assert.Equal(t, []string{"──────"}, lines(out))

	// flags beat the file
	out, err = run(t, "", "--config", path, "--width", "3", "rule")
	require.NoError(t, err)
	assert.Equal(t, []string{"───"}, lines(out))

	_, err = run(t, "", "--config", filepath.Join(t.TempDir(), "none.toml"), "rule")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	_, err = run(t, "", "--color-system", "sepia", "rule")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestFormatError(t *testing.T) {
	err := errors.New(errors.ErrInvalidInput, "bad")
	assert.Equal(t, "Error: [INVALID_INPUT] bad", formatError(err))
}

func TestHelpTopics(t *testing.T) {
	out, err := run(t, "", "help", "topics")
	require.NoError(t, err)
	for _, name := range []string{"colors", "config", "live", "markup"} {
		assert.Contains(t, out, "  "+name+"\n")
	}

	out, err = run(t, "", "help", "markup")
	require.NoError(t, err)
	assert.Contains(t, out, "[bold]bold[/]")
	// doubled brackets in the topic source come out single
	assert.Equal(t, 1, strings.Count(out, "[[bold]"))
	assert.Contains(t, out, "prints [bold].")
	assert.NotContains(t, out, "[[[[")

	out, err = run(t, "", "help", "colors")
	require.NoError(t, err)
	assert.Contains(t, out, "Downgrading")

	out, err = run(t, "", "help", "print")
	require.NoError(t, err)
	assert.Contains(t, out, MsgPrintShort)
}
