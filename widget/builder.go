// Package widget translates timer parameters into countdown markup and CSS
// custom properties consumed by the countdown client script and stylesheet.
package widget

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"countdown/markup"
	"countdown/misc"
)

const (
	// BaseClass is always present on outer element.
	BaseClass = "countdown"
	// IDPrefix starts every generated identifier.
	IDPrefix = "timer_"
)

// IDSource produces unique tokens for generated identifiers.
type IDSource func() (string, error)

// RandomID returns random (version 4) UUID.
func RandomID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Dependency declares client script and stylesheet every widget needs.
func Dependency() markup.Dependency {
	return markup.Dependency{
		Name:        "countdown",
		Version:     misc.AssetVersion,
		Source:      markup.Source{Package: "countdown", Subdir: "assets"},
		Scripts:     []string{"countdown.js"},
		Stylesheets: []string{"countdown.css"},
		AllFiles:    true,
	}
}

// Widget is a built countdown timer.
type Widget struct {
	ID               string
	Minutes, Seconds int
	Root             *etree.Element
	Dependencies     []markup.Dependency
}

// Builder assembles countdown markup.
type Builder struct {
	log        *zap.Logger
	ids        IDSource
	dep        markup.Dependency
	inlineVars bool
}

type BuilderOption func(*Builder)

// WithIDSource replaces random generator used for identifiers.
func WithIDSource(src IDSource) BuilderOption {
	return func(b *Builder) {
		b.ids = src
	}
}

// WithDependency replaces asset bundle declaration attached to widgets.
func WithDependency(d markup.Dependency) BuilderOption {
	return func(b *Builder) {
		b.dep = d
	}
}

// WithoutInlineVars keeps per instance theme out of inline style, only
// positional offsets and caller style are applied.
func WithoutInlineVars() BuilderOption {
	return func(b *Builder) {
		b.inlineVars = false
	}
}

// NewBuilder creates a new widget builder.
func NewBuilder(log *zap.Logger, opts ...BuilderOption) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Builder{
		log:        log.Named("widget"),
		ids:        RandomID,
		dep:        Dependency(),
		inlineVars: true,
	}
	for _, setOpt := range opts {
		setOpt(b)
	}
	return b
}

// Countdown validates options and assembles timer markup. The only errors
// returned for bad input wrap ErrInvalidArgument.
func (b *Builder) Countdown(o Options) (*Widget, error) {
	minutes, seconds, err := Normalize(o.Minutes, o.Seconds)
	if err != nil {
		return nil, err
	}
	if o.WarnWhen < 0 {
		return nil, invalidArgument("warn_when", "must be a non-negative integer number of seconds")
	}

	id := o.ID
	if id == "" {
		token, err := b.ids()
		if err != nil {
			return nil, fmt.Errorf("unable to generate timer id: %w", err)
		}
		id = IDPrefix + token
	}

	root := etree.NewElement("div")

	controls := root.CreateElement("div")
	controls.CreateAttr("class", "countdown-controls")
	bump(controls, "countdown-bump-down", "−")
	bump(controls, "countdown-bump-up", "+")

	display := root.CreateElement("code")
	display.CreateAttr("class", "countdown-time")
	digits(display, "minutes", fmt.Sprintf("%02d", minutes))
	digits(display, "colon", ":")
	digits(display, "seconds", fmt.Sprintf("%02d", seconds))

	root.CreateAttr("class", ClassName(o.ClassName))
	root.CreateAttr("id", id)
	root.CreateAttr("data-warn-when", strconv.Itoa(o.WarnWhen))
	root.CreateAttr("data-update-every", strconv.Itoa(o.UpdateEvery))
	marker(root, "data-play-sound", o.PlaySound)
	marker(root, "data-blink-colon", o.BlinkColon)
	marker(root, "data-start-immediately", o.StartImmediately)
	root.CreateAttr("tabindex", "0")
	if style := b.inlineStyle(o); style != "" {
		root.CreateAttr("style", style)
	}

	b.log.Debug("Countdown assembled",
		zap.String("id", id),
		zap.Int("minutes", minutes),
		zap.Int("seconds", seconds),
		zap.Int("warn_when", o.WarnWhen),
	)

	return &Widget{
		ID:           id,
		Minutes:      minutes,
		Seconds:      seconds,
		Root:         root,
		Dependencies: []markup.Dependency{b.dep},
	}, nil
}

// ClassName joins base class with caller supplied one, dropping empty parts.
func ClassName(extra string) string {
	parts := slices.DeleteFunc([]string{BaseClass, strings.TrimSpace(extra)}, func(s string) bool {
		return s == ""
	})
	return strings.Join(parts, " ")
}

// inlineStyle renders positional offsets, then theme variables, then caller
// style.
func (b *Builder) inlineStyle(o Options) string {
	var sb strings.Builder
	for _, p := range [...][2]string{{"top", o.Top}, {"right", o.Right}, {"bottom", o.Bottom}, {"left", o.Left}} {
		if p[1] != "" {
			writeDeclaration(&sb, p[0], p[1])
		}
	}
	if vars, ok := DeriveCSSVars(o.Theme); ok && b.inlineVars {
		for _, name := range vars.Names() {
			writeDeclaration(&sb, name, vars[name])
		}
	}
	for _, name := range slices.Sorted(maps.Keys(o.Style)) {
		if v := o.Style[name]; v != "" {
			writeDeclaration(&sb, name, v)
		}
	}
	return sb.String()
}

func bump(parent *etree.Element, class, label string) {
	btn := parent.CreateElement("button")
	btn.CreateAttr("class", class)
	btn.SetText(label)
}

func digits(parent *etree.Element, kind, text string) {
	span := parent.CreateElement("span")
	span.CreateAttr("class", "countdown-digits "+kind)
	span.SetText(text)
}

// marker sets attribute to "true" when flag is on, otherwise attribute is not
// created at all.
func marker(el *etree.Element, name string, on bool) {
	if on {
		el.CreateAttr(name, "true")
	}
}
