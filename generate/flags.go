package generate

import (
	"maps"
	"strings"

	cli "github.com/urfave/cli/v3"

	"countdown/widget"
)

const themeCategory = "Theme"

// themeFlagName turns style key into flag name: "font_size" -> "font-size".
func themeFlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// ThemeFlags returns one flag per styling variable.
func ThemeFlags() []cli.Flag {
	keys := widget.StyleKeys()
	flags := make([]cli.Flag, 0, len(keys))
	for _, key := range keys {
		flags = append(flags, &cli.StringFlag{
			Name:     themeFlagName(key),
			Category: themeCategory,
			Usage:    "set " + widget.VarName(key) + " to `VALUE`",
		})
	}
	return flags
}

// applyThemeFlags overrides only variables explicitly present on command line,
// so empty value can be requested with --flag="".
func applyThemeFlags(cmd *cli.Command, o *widget.StyleOptions) {
	for _, key := range widget.StyleKeys() {
		if name := themeFlagName(key); cmd.IsSet(name) {
			// key comes from StyleKeys, Set cannot fail
			_ = o.Set(key, cmd.String(name))
		}
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite existing destination files"},
	}
}

// WidgetFlags lists flags of "widget" command.
func WidgetFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.FloatFlag{Name: "minutes", Aliases: []string{"m"}, Usage: "timer duration `MINUTES`, fractions allowed"},
		&cli.FloatFlag{Name: "seconds", Aliases: []string{"s"}, Usage: "timer duration `SECONDS`, added to minutes"},
		&cli.StringFlag{Name: "id", Usage: "`ID` of the outer element, generated when absent"},
		&cli.StringFlag{Name: "class", Usage: "additional `CLASS` for the outer element"},
		&cli.StringMapFlag{Name: "style", Usage: "additional inline `PROPERTY=VALUE`, may be repeated"},
		&cli.BoolFlag{Name: "play-sound", Usage: "play sound when timer finishes"},
		&cli.BoolFlag{Name: "blink-colon", Usage: "blink colon while timer is running"},
		&cli.BoolFlag{Name: "start-immediately", Usage: "start timer as soon as it is displayed"},
		&cli.IntFlag{Name: "warn-when", Usage: "enter warning state when `SECONDS` remain"},
		&cli.IntFlag{Name: "update-every", Usage: "refresh display every `SECONDS`"},
		&cli.StringFlag{Name: "top", Usage: "CSS `OFFSET` of the timer"},
		&cli.StringFlag{Name: "right", Usage: "CSS `OFFSET` of the timer"},
		&cli.StringFlag{Name: "bottom", Usage: "CSS `OFFSET` of the timer"},
		&cli.StringFlag{Name: "left", Usage: "CSS `OFFSET` of the timer"},
		&cli.StringFlag{Name: "name", Usage: "timer `NAME` used for output file naming, id when absent"},
		&cli.StringFlag{Name: "timers", TakesFile: true, Usage: "produce all timers described in YAML `FILE`"},
		&cli.StringFlag{Name: "asset-prefix", Usage: "`PATH` under which client assets are served"},
		&cli.BoolFlag{Name: "no-deps", Usage: "do not emit link and script elements for client assets"},
	}
	flags = append(flags, outputFlags()...)
	return append(flags, ThemeFlags()...)
}

// StyleFlags lists flags of "style" command.
func StyleFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "selector", Usage: "CSS `SELECTOR` to apply variables at"},
		&cli.StringFlag{Name: "from-css", TakesFile: true, Usage: "import --countdown-* variables from stylesheet `FILE`"},
		&cli.BoolFlag{Name: "bare", Usage: "start from empty theme instead of configured one"},
	}
	flags = append(flags, outputFlags()...)
	return append(flags, ThemeFlags()...)
}

// applyWidgetFlags overrides configured defaults with flags present on
// command line.
func applyWidgetFlags(cmd *cli.Command, o *widget.Options) {
	if cmd.IsSet("minutes") {
		o.Minutes = cmd.Float("minutes")
	}
	if cmd.IsSet("seconds") {
		o.Seconds = cmd.Float("seconds")
	}
	setString := func(name string, dst *string) {
		if cmd.IsSet(name) {
			*dst = cmd.String(name)
		}
	}
	setString("id", &o.ID)
	setString("class", &o.ClassName)
	setString("top", &o.Top)
	setString("right", &o.Right)
	setString("bottom", &o.Bottom)
	setString("left", &o.Left)

	setBool := func(name string, dst *bool) {
		if cmd.IsSet(name) {
			*dst = cmd.Bool(name)
		}
	}
	setBool("play-sound", &o.PlaySound)
	setBool("blink-colon", &o.BlinkColon)
	setBool("start-immediately", &o.StartImmediately)

	if cmd.IsSet("warn-when") {
		o.WarnWhen = cmd.Int("warn-when")
	}
	if cmd.IsSet("update-every") {
		o.UpdateEvery = cmd.Int("update-every")
	}
	if cmd.IsSet("style") {
		style := make(map[string]string, len(o.Style))
		maps.Copy(style, o.Style)
		maps.Copy(style, cmd.StringMap("style"))
		o.Style = style
	}
	applyThemeFlags(cmd, &o.Theme)
}
