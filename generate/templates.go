package generate

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

const (
	KindWidget = "widget"
	KindStyle  = "style"
)

// Values holds variables available to output name template.
type Values struct {
	// Kind is either "widget" or "style".
	Kind string
	// Name of the timer from timers file or --name flag.
	Name string
	// ID of the outer element, empty for style blocks.
	ID      string
	Minutes int
	Seconds int
}

func expandTemplate(name, field string, values Values) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return buf.String(), nil
}
