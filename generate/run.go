// Package generate implements "widget" and "style" commands: it turns
// configuration, command line and timers files into countdown HTML fragments.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"countdown/markup"
	"countdown/state"
	"countdown/widget"
)

// destination is where generated fragments go: directory (one file per
// fragment), single file, or stdout when both are empty.
type destination struct {
	dir  string
	file string
}

func (d destination) String() string {
	switch {
	case d.dir != "":
		return d.dir
	case d.file != "":
		return d.file
	default:
		return "STDOUT"
	}
}

// resolveDestination treats argument as directory when it exists as one, ends
// with path separator, or when batch output was requested.
func resolveDestination(arg string, batch bool) (destination, error) {
	if arg == "" {
		return destination{}, nil
	}
	isDir := batch || strings.HasSuffix(arg, string(filepath.Separator)) || strings.HasSuffix(arg, "/")
	abs, err := filepath.Abs(arg)
	if err != nil {
		return destination{}, err
	}
	if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
		isDir = true
	}
	if isDir {
		return destination{dir: abs}, nil
	}
	return destination{file: abs}, nil
}

func destinationArg(cmd *cli.Command, log *zap.Logger) string {
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	return cmd.Args().Get(0)
}

// RunWidget is the action of "widget" command.
func RunWidget(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("widget")

	defaults := env.Cfg.Widget
	applyWidgetFlags(cmd, &defaults)
	env.Overwrite = cmd.Bool("overwrite")

	var (
		timers []Timer
		errs   error
	)
	if path := cmd.String("timers"); path != "" {
		if defaults.ID != "" {
			return errors.New("--id cannot be used with --timers, every timer needs its own id")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read timers from %q: %w", path, err)
		}
		env.Rpt.Store("timers/"+filepath.Base(path), path)
		// keep going with whatever could be decoded
		timers, errs = parseTimers(data, defaults)
		if len(timers) == 0 {
			return errs
		}
	} else {
		if err := validateOptions(&defaults); err != nil {
			return fmt.Errorf("bad timer parameters: %w", err)
		}
		timers = []Timer{{Name: cmd.String("name"), Options: defaults}}
	}

	dst, err := resolveDestination(destinationArg(cmd, log), cmd.IsSet("timers"))
	if err != nil {
		return err
	}

	ro := markup.RenderOptions{
		AssetPrefix:      env.Cfg.Output.AssetPrefix,
		OmitDependencies: !env.Cfg.Output.IncludeDependencies || cmd.Bool("no-deps"),
	}
	if cmd.IsSet("asset-prefix") {
		ro.AssetPrefix = cmd.String("asset-prefix")
	}

	log.Info("Processing starting", zap.Int("timers", len(timers)), zap.Stringer("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return multierr.Append(errs, produceWidgets(ctx, env, timers, dst, ro, log))
}

// produceWidgets builds every timer. With directory destination each timer is
// written to its own file, otherwise all of them form single fragment sharing
// asset elements. Failing timers do not stop the rest.
func produceWidgets(ctx context.Context, env *state.LocalEnv, timers []Timer, dst destination, ro markup.RenderOptions, log *zap.Logger) error {
	b := env.Builder()

	var (
		combined markup.Fragment
		errs     error
	)
	for _, t := range timers {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		w, err := b.Countdown(t.Options)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("timer %q: %w", t.Name, err))
			continue
		}

		values := Values{Kind: KindWidget, Name: t.Name, ID: w.ID, Minutes: w.Minutes, Seconds: w.Seconds}
		if values.Name == "" {
			values.Name = w.ID
		}
		env.Rpt.StoreData("trees/"+values.Name+".txt", []byte(markup.Dump(w.Root)))

		if dst.dir == "" {
			combined.Add(w.Root, w.Dependencies...)
			continue
		}

		var frag markup.Fragment
		frag.Add(w.Root, w.Dependencies...)
		path := buildOutputPath(dst.dir, values, &env.Cfg.Output, log)
		if err := writeFragment(env, path, values.Name, &frag, ro, log); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("timer %q: %w", t.Name, err))
		}
	}

	if dst.dir == "" && len(combined.Elements()) > 0 {
		errs = multierr.Append(errs, writeFragment(env, dst.file, KindWidget, &combined, ro, log))
	}
	return errs
}

// RunStyle is the action of "style" command.
func RunStyle(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("style")
	env.Overwrite = cmd.Bool("overwrite")

	selector := env.Cfg.Theme.Selector
	if cmd.IsSet("selector") {
		selector = cmd.String("selector")
	}

	var theme widget.StyleOptions
	if !cmd.Bool("bare") {
		theme = env.Cfg.Theme.Style
	}

	sheet := env.Cfg.Theme.StylesheetPath
	if cmd.IsSet("from-css") {
		sheet = cmd.String("from-css")
	}
	if sheet != "" {
		var err error
		if theme, err = importTheme(sheet, selector, theme, env.Rpt, log); err != nil {
			return err
		}
	}
	applyThemeFlags(cmd, &theme)

	dst, err := resolveDestination(destinationArg(cmd, log), false)
	if err != nil {
		return err
	}
	return produceStyle(env, theme, selector, dst, log)
}

func produceStyle(env *state.LocalEnv, theme widget.StyleOptions, selector string, dst destination, log *zap.Logger) error {
	el, ok := env.Builder().Style(theme, selector)
	if !ok {
		log.Info("No style options set, nothing to emit")
		return nil
	}

	var frag markup.Fragment
	frag.Add(el)

	path := dst.file
	if dst.dir != "" {
		path = buildOutputPath(dst.dir, Values{Kind: KindStyle, Name: KindStyle}, &env.Cfg.Output, log)
	}
	return writeFragment(env, path, KindStyle, &frag, markup.RenderOptions{}, log)
}

// writeFragment renders fragment to file at path or to stdout when path is
// empty. Rendered result is also kept in debug report.
func writeFragment(env *state.LocalEnv, path, name string, frag *markup.Fragment, ro markup.RenderOptions, log *zap.Logger) error {
	buf := new(bytes.Buffer)
	if err := frag.Render(buf, ro); err != nil {
		return err
	}
	env.Rpt.StoreData("fragments/"+name+outputExt, buf.Bytes())

	if path == "" {
		_, err := io.Copy(os.Stdout, buf)
		return err
	}

	if err := prepareOutputFile(path, env.Overwrite, log); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Info("Fragment written", zap.String("file", path))
	return nil
}

func prepareOutputFile(path string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", path)
		}
		log.Warn("Overwriting existing file", zap.String("file", path))
		return nil
	case !os.IsNotExist(err):
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
