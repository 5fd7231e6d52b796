package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/songbook-cli/internal/song"
)

const letItBe = "# Let It Be - The Beatles\n\nLet it [Am]be, let it [C]be\nLet it [Am]be, let it [G]be\n"

// resetFlags clears sticky flag state that persists across Execute calls.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	})
}

// runCmd is a helper to execute the root command with args and return stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		resetFlags(c.Flags())
	}
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	require.NoError(t, err, "command %v failed", args)
	return out
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeSong(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCLI_ShowYAML(t *testing.T) {
	home := setupHome(t)
	p := writeSong(t, home, "let_it_be.udn", letItBe)

	out := mustRun(t, "show", p, "--tag", "tested", "--tag", "easy")

	var rec song.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Let It Be", rec.Title)
	require.NotNil(t, rec.Artist)
	assert.Equal(t, "The Beatles", *rec.Artist)
	assert.Equal(t, []string{"Am", "C", "G"}, rec.Chords)
	assert.Equal(t, []string{"easy", "tested"}, rec.Tags)
	assert.Equal(t, p, rec.Filename)
	assert.NotContains(t, rec.Body, "<h1")
}

func TestCLI_ShowTextWithOverrides(t *testing.T) {
	home := setupHome(t)
	p := writeSong(t, home, "greensleeves.udn", "# Greensleeves\n\n[Am]Alas my [C]love\n")

	out := mustRun(t, "show", p, "--format", "text", "--title", "Green Sleeves", "--filename", "gs.udn")
	assert.Contains(t, out, "title: Green Sleeves\n")
	assert.Contains(t, out, "artist: (none)\n")
	assert.Contains(t, out, "filename: gs.udn\n")
	assert.Contains(t, out, "chords: Am C\n")
}

func TestCLI_ShowJSONFromConfig(t *testing.T) {
	home := setupHome(t)
	p := writeSong(t, home, "song.udn", letItBe)

	mustRun(t, "config", "set", "output_format", "json")
	out := mustRun(t, "show", p)
	assert.True(t, strings.HasPrefix(out, "{"), "expected json output, got %q", out)
	assert.Contains(t, out, `"title": "Let It Be"`)
}

func TestCLI_Chords(t *testing.T) {
	home := setupHome(t)
	p := writeSong(t, home, "song.udn", letItBe)

	out := mustRun(t, "chords", p)
	assert.Equal(t, "Am\nC\nG\n", out)

	p = writeSong(t, home, "plain.udn", "# Plain\n\nno chords\n")
	out = mustRun(t, "chords", p)
	assert.Equal(t, "(no chords)\n", out)
}

func TestCLI_BodyToFile(t *testing.T) {
	home := setupHome(t)
	p := writeSong(t, home, "song.udn", letItBe)
	dest := filepath.Join(home, "out", "body.html")

	mustRun(t, "body", p, "--out", dest)
	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(b), `<span class="chord">Am</span>`)
	assert.NotContains(t, string(b), "The Beatles")

	out := mustRun(t, "body", p)
	assert.Equal(t, string(b), out)
}

func TestCLI_CheckReportsFailures(t *testing.T) {
	home := setupHome(t)
	good := writeSong(t, home, "good.udn", letItBe)
	bad := writeSong(t, home, "bad.udn", "no header here\n")
	twice := writeSong(t, home, "twice.udn", "# One - A\n\nx\n\n# Two\n\ny\n")

	out := mustRun(t, "check", good, twice)
	assert.Contains(t, out, "✓ "+good+": Let It Be - The Beatles (3 chords)")
	assert.Contains(t, out, "ambiguous header")

	out, err := runCmd(t, "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "✗ ")
	assert.Contains(t, out, "malformed input")

	_, err = runCmd(t, "check", "--strict", twice)
	require.Error(t, err)

	_, err = runCmd(t, "check", filepath.Join(home, "missing.udn"))
	require.Error(t, err)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	setupHome(t)

	mustRun(t, "config", "set", "chord_class", "crd")
	mustRun(t, "config", "set", "extensions", "table, strikethrough")
	out := mustRun(t, "config", "show")
	assert.Contains(t, out, "chord_class: crd\n")
	assert.Contains(t, out, "extensions: table,strikethrough\n")

	_, err := runCmd(t, "config", "set", "output_format", "xml")
	assert.Error(t, err)
	_, err = runCmd(t, "config", "set", "nope", "1")
	assert.Error(t, err)
}

func TestCLI_ConfigSetKeepsFlagOverridesOutOfFile(t *testing.T) {
	home := setupHome(t)

	mustRun(t, "--strict", "config", "set", "xhtml", "true")
	b, err := os.ReadFile(filepath.Join(home, ".songbook", "config.yaml"))
	require.NoError(t, err)

	var stored map[string]interface{}
	require.NoError(t, yaml.Unmarshal(b, &stored))
	assert.Equal(t, true, stored["xhtml"])
	assert.Equal(t, false, stored["strict_header"])
}

func TestCLI_ConfigSetRejectsBrokenFile(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, ".songbook", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("output_format: xml\n"), 0o644))

	_, err := runCmd(t, "config", "set", "xhtml", "true")
	require.Error(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output_format: xml\n", string(b))
}

func TestCLI_UnsafeRawHTML(t *testing.T) {
	home := setupHome(t)
	p := writeSong(t, home, "raw.udn", "# Raw\n\nsing <em>loud</em> [G]now\n")

	out := mustRun(t, "body", p)
	assert.NotContains(t, out, "<em>")
	assert.Contains(t, out, `<span class="chord">G</span>`)

	mustRun(t, "config", "set", "unsafe", "true")
	assert.Contains(t, mustRun(t, "config", "show"), "unsafe: true\n")
	out = mustRun(t, "body", p)
	assert.Contains(t, out, "<em>loud</em>")
}
