package generate

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"
	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"countdown/widget"
)

// Timer is a named set of widget options.
type Timer struct {
	Name    string
	Options widget.Options
}

// parseTimers reads YAML mapping of timer names to options. Every timer
// starts from defaults and is processed in natural name order ("t2" before
// "t10"). Broken entries are reported together, good ones are still
// returned.
func parseTimers(data []byte, defaults widget.Options) ([]Timer, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode timers: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no timers defined")
	}

	names := slices.Collect(maps.Keys(raw))
	sort.Sort(natural.StringSlice(names))

	var (
		timers []Timer
		errs   error
	)
	for _, name := range names {
		node := raw[name]
		o, err := decodeTimer(&node, defaults)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("timer %q: %w", name, err))
			continue
		}
		timers = append(timers, Timer{Name: name, Options: o})
	}
	return timers, errs
}

func decodeTimer(node *yaml.Node, defaults widget.Options) (widget.Options, error) {
	o := defaults
	o.Style = maps.Clone(defaults.Style)
	// decoder writes into existing pointers, defaults must not see that
	o.Theme = widget.StyleOptions{}.Merge(defaults.Theme)

	// empty entry ("name:" or "name: {}") means defaults
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return o, validateOptions(&o)
	}

	// Node.Decode cannot reject unknown fields, go through decoder instead
	data, err := yaml.Marshal(node)
	if err != nil {
		return o, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		return o, err
	}
	return o, validateOptions(&o)
}

// validateOptions checks tag constraints not covered by widget builder,
// update interval in particular.
func validateOptions(o *widget.Options) error {
	return gencfg.Validate(o)
}
