package widget

import (
	"fmt"
	"strings"
)

// VarPrefix is prepended to every custom property produced from style options.
const VarPrefix = "--countdown-"

// StyleOptions is a sparse set of styling values. A nil field is absent and
// produces no custom property, a pointer to empty string is present.
type StyleOptions struct {
	FontSize     *string `yaml:"font_size,omitempty"`
	Margin       *string `yaml:"margin,omitempty"`
	Padding      *string `yaml:"padding,omitempty"`
	BoxShadow    *string `yaml:"box_shadow,omitempty"`
	BorderWidth  *string `yaml:"border_width,omitempty"`
	BorderRadius *string `yaml:"border_radius,omitempty"`
	LineHeight   *string `yaml:"line_height,omitempty"`

	ColorBorder     *string `yaml:"color_border,omitempty"`
	ColorBackground *string `yaml:"color_background,omitempty"`
	ColorText       *string `yaml:"color_text,omitempty"`

	ColorRunningBackground *string `yaml:"color_running_background,omitempty"`
	ColorRunningBorder     *string `yaml:"color_running_border,omitempty"`
	ColorRunningText       *string `yaml:"color_running_text,omitempty"`

	ColorFinishedBackground *string `yaml:"color_finished_background,omitempty"`
	ColorFinishedBorder     *string `yaml:"color_finished_border,omitempty"`
	ColorFinishedText       *string `yaml:"color_finished_text,omitempty"`

	ColorWarningBackground *string `yaml:"color_warning_background,omitempty"`
	ColorWarningBorder     *string `yaml:"color_warning_border,omitempty"`
	ColorWarningText       *string `yaml:"color_warning_text,omitempty"`
}

type styleField struct {
	key string
	ptr **string
}

// fields lists option slots in canonical order, keys match yaml tags.
func (o *StyleOptions) fields() []styleField {
	return []styleField{
		{"font_size", &o.FontSize},
		{"margin", &o.Margin},
		{"padding", &o.Padding},
		{"box_shadow", &o.BoxShadow},
		{"border_width", &o.BorderWidth},
		{"border_radius", &o.BorderRadius},
		{"line_height", &o.LineHeight},
		{"color_border", &o.ColorBorder},
		{"color_background", &o.ColorBackground},
		{"color_text", &o.ColorText},
		{"color_running_background", &o.ColorRunningBackground},
		{"color_running_border", &o.ColorRunningBorder},
		{"color_running_text", &o.ColorRunningText},
		{"color_finished_background", &o.ColorFinishedBackground},
		{"color_finished_border", &o.ColorFinishedBorder},
		{"color_finished_text", &o.ColorFinishedText},
		{"color_warning_background", &o.ColorWarningBackground},
		{"color_warning_border", &o.ColorWarningBorder},
		{"color_warning_text", &o.ColorWarningText},
	}
}

// StyleKeys returns names of all style options in canonical order.
func StyleKeys() []string {
	var o StyleOptions
	fields := o.fields()
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.key)
	}
	return keys
}

// VarName converts option key to the custom property name, "color_running_text"
// becomes "--countdown-color-running-text".
func VarName(key string) string {
	return VarPrefix + strings.ReplaceAll(key, "_", "-")
}

// KeyFromVar is the reverse of VarName. It reports false for names outside of
// the countdown namespace or not matching any known option.
func KeyFromVar(name string) (string, bool) {
	rest, found := strings.CutPrefix(name, VarPrefix)
	if !found {
		return "", false
	}
	key := strings.ReplaceAll(rest, "-", "_")
	var o StyleOptions
	for _, f := range o.fields() {
		if f.key == key {
			return key, true
		}
	}
	return "", false
}

// Get returns value of the option and whether it is present.
func (o StyleOptions) Get(key string) (string, bool) {
	for _, f := range o.fields() {
		if f.key == key {
			if *f.ptr == nil {
				return "", false
			}
			return **f.ptr, true
		}
	}
	return "", false
}

// Set assigns value to the option named by its snake_case key.
func (o *StyleOptions) Set(key, value string) error {
	for _, f := range o.fields() {
		if f.key == key {
			*f.ptr = &value
			return nil
		}
	}
	return fmt.Errorf("unknown style option %q", key)
}

// Merge returns copy of o with every present field of over superimposed.
func (o StyleOptions) Merge(over StyleOptions) StyleOptions {
	res := o
	dst := res.fields()
	for i, f := range over.fields() {
		if *f.ptr != nil {
			v := **f.ptr
			*dst[i].ptr = &v
		}
	}
	return res
}

// IsEmpty reports whether no option is present.
func (o StyleOptions) IsEmpty() bool {
	for _, f := range o.fields() {
		if *f.ptr != nil {
			return false
		}
	}
	return true
}

// DefaultTheme returns values used by global style block when caller does not
// override them.
func DefaultTheme() StyleOptions {
	return StyleOptions{
		FontSize:                ptr("3rem"),
		Margin:                  ptr("0.6em"),
		Padding:                 ptr("10px 15px"),
		BoxShadow:               ptr("0px 4px 10px 0px rgba(50, 50, 50, 0.4)"),
		BorderWidth:             ptr("0.1875rem"),
		BorderRadius:            ptr("0.9rem"),
		LineHeight:              ptr("1"),
		ColorBorder:             ptr("#ddd"),
		ColorBackground:         ptr("inherit"),
		ColorText:               ptr("inherit"),
		ColorRunningBackground:  ptr("#43AC6A"),
		ColorRunningBorder:      ptr("#2A9B59FF"),
		ColorRunningText:        ptr("inherit"),
		ColorFinishedBackground: ptr("#F04124"),
		ColorFinishedBorder:     ptr("#DE3000FF"),
		ColorFinishedText:       ptr("inherit"),
		ColorWarningBackground:  ptr("#E6C229"),
		ColorWarningBorder:      ptr("#CEAC04FF"),
		ColorWarningText:        ptr("inherit"),
	}
}

func ptr(s string) *string {
	return &s
}
