package widget

import (
	"math"
)

// MaxMinutes is the first minute count the two digit display cannot show.
const MaxMinutes = 100

// Options describes a single countdown timer.
type Options struct {
	// Duration, combined into total seconds and split back for display.
	Minutes float64 `yaml:"minutes" validate:"gte=0"`
	Seconds float64 `yaml:"seconds" validate:"gte=0"`

	// ID of the outer element, "timer_<uuid>" is generated when empty.
	ID string `yaml:"id,omitempty"`
	// ClassName is appended to the "countdown" base class.
	ClassName string `yaml:"class_name,omitempty"`
	// Style holds additional inline declarations, applied last.
	Style map[string]string `yaml:"style,omitempty"`

	PlaySound        bool `yaml:"play_sound"`
	BlinkColon       bool `yaml:"blink_colon"`
	StartImmediately bool `yaml:"start_immediately"`

	// WarnWhen is number of remaining seconds at which timer enters warning state.
	WarnWhen int `yaml:"warn_when" validate:"gte=0"`
	// UpdateEvery is display refresh interval in seconds.
	UpdateEvery int `yaml:"update_every" validate:"gte=1"`

	// Positional offsets are passed to inline style as is, empty values are skipped.
	Top    string `yaml:"top,omitempty"`
	Right  string `yaml:"right,omitempty"`
	Bottom string `yaml:"bottom,omitempty"`
	Left   string `yaml:"left,omitempty"`

	// Theme carries per instance overrides of the styling variables.
	Theme StyleOptions `yaml:"theme,omitempty"`
}

// DefaultOptions returns one minute timer with blinking colon and one second
// refresh interval, everything else unset.
func DefaultOptions() Options {
	return Options{
		Minutes:     1,
		UpdateEvery: 1,
		BlinkColon:  true,
	}
}

// Normalize combines minutes and seconds into total and splits it back into
// whole minutes and seconds. Negative totals are treated as zero.
func Normalize(minutes, seconds float64) (int, int, error) {
	total := minutes*60 + seconds
	if total < 0 {
		total = 0
	}
	m := math.Floor(total / 60)
	// written this way to catch NaN and Inf as well
	if !(m < MaxMinutes) {
		return 0, 0, invalidArgument("minutes", "must be less than 100")
	}
	return int(m), int(total - m*60), nil
}

// ThemeFromVars maps "--countdown-*" custom properties back to style options.
// Names which do not correspond to any option are returned separately.
func ThemeFromVars(vars map[string]string) (StyleOptions, []string) {
	var (
		o       StyleOptions
		unknown []string
	)
	for _, name := range CSSVars(vars).Names() {
		key, ok := KeyFromVar(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		// key is known, Set cannot fail
		_ = o.Set(key, vars[name])
	}
	return o, unknown
}
