package generate

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"countdown/config"
	"countdown/markup"
	"countdown/widget"
)

const (
	linkLine   = `<link href="lib/countdown-0.0.1/countdown.css" rel="stylesheet"/>`
	scriptLine = `<script src="lib/countdown-0.0.1/countdown.js"></script>`
)

func TestResolveDestination(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		arg      string
		batch    bool
		wantDir  string
		wantFile string
	}{
		{"stdout", "", false, "", ""},
		{"stdout batch", "", true, "", ""},
		{"existing directory", dir, false, dir, ""},
		{"new file", filepath.Join(dir, "timer.html"), false, "", filepath.Join(dir, "timer.html")},
		{"trailing separator", filepath.Join(dir, "new") + string(filepath.Separator), false, filepath.Join(dir, "new"), ""},
		{"batch forces directory", filepath.Join(dir, "batch"), true, filepath.Join(dir, "batch"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDestination(tt.arg, tt.batch)
			if err != nil {
				t.Fatalf("resolveDestination() error = %v", err)
			}
			if got.dir != tt.wantDir || got.file != tt.wantFile {
				t.Errorf("resolveDestination() = %+v, want dir %q file %q", got, tt.wantDir, tt.wantFile)
			}
		})
	}
}

func TestProduceWidgets_SingleFile(t *testing.T) {
	_, env := setupTestEnv(t)
	out := filepath.Join(t.TempDir(), "timers.html")

	o := widget.DefaultOptions()
	o.ID = "first"
	o2 := widget.DefaultOptions()
	o2.ID, o2.Minutes = "second", 2

	timers := []Timer{{Name: "a", Options: o}, {Name: "b", Options: o2}}
	ro := markup.RenderOptions{AssetPrefix: "lib"}
	if err := produceWidgets(context.Background(), env, timers, destination{file: out}, ro, env.Log); err != nil {
		t.Fatalf("produceWidgets() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(readFile(t, out), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if lines[0] != linkLine || lines[1] != scriptLine {
		t.Errorf("dependencies not rendered once on top:\n%s\n%s", lines[0], lines[1])
	}
	if !strings.Contains(lines[2], `id="first"`) || !strings.Contains(lines[3], `id="second"`) {
		t.Errorf("widgets out of order:\n%s\n%s", lines[2], lines[3])
	}
	if !strings.Contains(lines[3], `<span class="countdown-digits minutes">02</span>`) {
		t.Errorf("second widget minutes wrong: %s", lines[3])
	}
}

func TestProduceWidgets_StoredInReport(t *testing.T) {
	_, env := setupTestEnv(t)
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.zip")

	rpt, err := (&config.ReporterConfig{Destination: dest}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	o := widget.DefaultOptions()
	o.ID = "first"
	out := filepath.Join(dir, "timer.html")
	if err := produceWidgets(context.Background(), env, []Timer{{Name: "a", Options: o}}, destination{file: out}, markup.RenderOptions{}, env.Log); err != nil {
		t.Fatalf("produceWidgets() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"trees/a.txt", "fragments/widget.html"} {
		if !names[want] {
			t.Errorf("report is missing %s, has %v", want, names)
		}
	}
}

func TestProduceWidgets_Directory(t *testing.T) {
	_, env := setupTestEnv(t)
	dir := t.TempDir()
	env.Cfg.Output.NameTemplate = "{{ .Name }}-{{ .Minutes }}"

	timers := []Timer{
		{Name: "intro", Options: widget.Options{Minutes: 5, UpdateEvery: 1}},
		{Name: "broken", Options: widget.Options{Minutes: 120, UpdateEvery: 1}},
		{Name: "outro", Options: widget.Options{Seconds: 90, UpdateEvery: 1}},
	}
	ro := markup.RenderOptions{AssetPrefix: "lib", OmitDependencies: true}
	err := produceWidgets(context.Background(), env, timers, destination{dir: dir}, ro, env.Log)
	if err == nil {
		t.Fatal("produceWidgets() expected error for broken timer")
	}
	if !errors.Is(err, widget.ErrInvalidArgument) || !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("unexpected error %v", err)
	}

	intro := readFile(t, filepath.Join(dir, "intro-5.html"))
	if strings.Contains(intro, "<link") {
		t.Error("dependencies emitted although omitted")
	}
	if !strings.HasPrefix(intro, `<div class="countdown" id="timer_`) {
		t.Errorf("unexpected fragment %s", intro)
	}
	if _, err := os.Stat(filepath.Join(dir, "outro-1.html")); err != nil {
		t.Errorf("outro not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken-120.html")); err == nil {
		t.Error("broken timer written")
	}

	// second run must not clobber files
	timers = timers[:1]
	err = produceWidgets(context.Background(), env, timers, destination{dir: dir}, ro, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected existing file error, got %v", err)
	}
	env.Overwrite = true
	if err := produceWidgets(context.Background(), env, timers, destination{dir: dir}, ro, env.Log); err != nil {
		t.Errorf("overwrite failed: %v", err)
	}
}

func TestProduceWidgets_Cancelled(t *testing.T) {
	_, env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := produceWidgets(ctx, env, []Timer{{Options: widget.DefaultOptions()}}, destination{dir: t.TempDir()}, markup.RenderOptions{}, env.Log)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestProduceStyle(t *testing.T) {
	_, env := setupTestEnv(t)
	out := filepath.Join(t.TempDir(), "theme.html")

	theme := widget.StyleOptions{}
	if err := theme.Set("color_text", "navy"); err != nil {
		t.Fatal(err)
	}
	if err := produceStyle(env, theme, ".deck", destination{file: out}, env.Log); err != nil {
		t.Fatalf("produceStyle() error = %v", err)
	}
	want := "<style>.deck { --countdown-color-text: navy; }</style>\n"
	if got := readFile(t, out); got != want {
		t.Errorf("style = %q, want %q", got, want)
	}
}

func TestProduceStyle_NothingToEmit(t *testing.T) {
	_, env := setupTestEnv(t)
	out := filepath.Join(t.TempDir(), "theme.html")

	if err := produceStyle(env, widget.StyleOptions{}, ":root", destination{file: out}, env.Log); err != nil {
		t.Fatalf("produceStyle() error = %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("file created for empty theme: %v", err)
	}
}

func runCommand(t *testing.T, ctx context.Context, name string, flags []cli.Flag, action cli.ActionFunc, args ...string) error {
	t.Helper()
	cmd := &cli.Command{
		Name:   name,
		Flags:  flags,
		Action: action,
		// default handler exits process on aggregated errors
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	return cmd.Run(ctx, append([]string{name}, args...))
}

func TestRunWidget_Flags(t *testing.T) {
	ctx, env := setupTestEnv(t)
	out := filepath.Join(t.TempDir(), "w.html")

	err := runCommand(t, ctx, "widget", WidgetFlags(), RunWidget,
		"--minutes", "0", "--seconds", "135", "--id", "talk", "--class", "big",
		"--warn-when", "30", "--play-sound", "--blink-colon=false", "--top", "0",
		"--style", "z-index=5", "--font-size", "4rem", "--no-deps", out)
	if err != nil {
		t.Fatalf("RunWidget() error = %v", err)
	}

	got := readFile(t, out)
	for _, want := range []string{
		`class="countdown big"`,
		`id="talk"`,
		`data-warn-when="30"`,
		`data-play-sound="true"`,
		`style="top: 0; --countdown-font-size: 4rem; z-index: 5;"`,
		`<span class="countdown-digits minutes">02</span>`,
		`<span class="countdown-digits seconds">15</span>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %s:\n%s", want, got)
		}
	}
	if strings.Contains(got, "data-blink-colon") || strings.Contains(got, "<script") {
		t.Errorf("unexpected content:\n%s", got)
	}
	if env.Cfg.Widget.ID != "" || env.Cfg.Widget.Style != nil {
		t.Error("configured defaults modified by flags")
	}
}

func TestRunWidget_Timers(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	dir := t.TempDir()
	timers := writeFile(t, dir, "timers.yaml", `
break10: {minutes: 10}
break2: {minutes: 2, id: "b2"}
bad: {minutes: 100}
`)
	outDir := filepath.Join(dir, "out")

	err := runCommand(t, ctx, "widget", WidgetFlags(), RunWidget, "--timers", timers, "--asset-prefix", "static", outDir)
	if err == nil || len(multierr.Errors(err)) != 1 {
		t.Fatalf("RunWidget() error = %v, want single error for bad timer", err)
	}

	got := readFile(t, filepath.Join(outDir, "break2.html"))
	if !strings.HasPrefix(got, `<link href="static/countdown-0.0.1/countdown.css" rel="stylesheet"/>`) {
		t.Errorf("asset prefix not applied:\n%s", got)
	}
	if !strings.Contains(got, `id="b2"`) {
		t.Errorf("timer id lost:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "break10.html")); err != nil {
		t.Errorf("break10 not written: %v", err)
	}
}

func TestRunWidget_TimersWithID(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	dir := t.TempDir()
	timers := writeFile(t, dir, "timers.yaml", "a: {}\n")

	if err := runCommand(t, ctx, "widget", WidgetFlags(), RunWidget, "--timers", timers, "--id", "x", dir); err == nil {
		t.Error("RunWidget() expected error for --id with --timers")
	}
}

func TestRunWidget_BadParameters(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	out := filepath.Join(t.TempDir(), "w.html")

	if err := runCommand(t, ctx, "widget", WidgetFlags(), RunWidget, "--update-every", "0", out); err == nil {
		t.Error("RunWidget() expected error for zero update interval")
	}
	if err := runCommand(t, ctx, "widget", WidgetFlags(), RunWidget, "--minutes", "100", out); !errors.Is(err, widget.ErrInvalidArgument) {
		t.Errorf("RunWidget() error = %v, want invalid argument", err)
	}
}

func TestRunStyle(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "style.html")

	err := runCommand(t, ctx, "style", StyleFlags(), RunStyle, "--bare", "--selector", ".deck", "--color-text", "red", "--margin", "0", out)
	if err != nil {
		t.Fatalf("RunStyle() error = %v", err)
	}
	want := "<style>.deck { --countdown-color-text: red; --countdown-margin: 0; }</style>\n"
	if got := readFile(t, out); got != want {
		t.Errorf("style = %q, want %q", got, want)
	}

	// configured theme is used as is without --bare
	out = filepath.Join(dir, "full.html")
	if err := runCommand(t, ctx, "style", StyleFlags(), RunStyle, out); err != nil {
		t.Fatalf("RunStyle() error = %v", err)
	}
	got := readFile(t, out)
	if !strings.HasPrefix(got, "<style>:root { --countdown-border-radius: 0.9rem;") {
		t.Errorf("unexpected style %q", got)
	}
	if strings.Count(got, "--countdown-") != len(widget.StyleKeys()) {
		t.Errorf("not all variables emitted: %q", got)
	}
	if v, _ := env.Cfg.Theme.Style.Get("color_text"); v != "inherit" {
		t.Errorf("configured theme modified: color_text = %q", v)
	}
}

func TestRunStyle_FromCSS(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	dir := t.TempDir()
	sheet := writeFile(t, dir, "theme.css", `
:root { --countdown-font-size: 8rem; --countdown-glow: yes; }
.other { --countdown-color-text: green; }
`)
	out := filepath.Join(dir, "style.html")

	err := runCommand(t, ctx, "style", StyleFlags(), RunStyle, "--bare", "--from-css", sheet, "--padding", "1px", out)
	if err != nil {
		t.Fatalf("RunStyle() error = %v", err)
	}
	want := "<style>:root { --countdown-font-size: 8rem; --countdown-padding: 1px; }</style>\n"
	if got := readFile(t, out); got != want {
		t.Errorf("style = %q, want %q", got, want)
	}

	err = runCommand(t, ctx, "style", StyleFlags(), RunStyle, "--from-css", filepath.Join(dir, "absent.css"), out)
	if err == nil {
		t.Error("RunStyle() expected error for absent stylesheet")
	}
}
