package markup

import (
	"strings"

	"github.com/beevik/etree"

	"countdown/utils/debug"
)

// Dump produces indented description of element tree for debug reports.
func Dump(el *etree.Element) string {
	tw := debug.NewTreeWriter()
	dumpElement(tw, el, 0)
	return tw.String()
}

func dumpElement(tw *debug.TreeWriter, el *etree.Element, depth int) {
	tw.Line(depth, "<%s>", el.Tag)
	for _, a := range el.Attr {
		tw.Pairs(depth+1, [2]string{a.FullKey(), a.Value})
	}
	for _, t := range el.Child {
		switch c := t.(type) {
		case *etree.Element:
			dumpElement(tw, c, depth+1)
		case *etree.CharData:
			if text := strings.TrimSpace(c.Data); text != "" {
				tw.TextBlock(depth+1, "text", text)
			}
		}
	}
}
