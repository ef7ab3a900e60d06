package markup

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a sequence of top level elements together with asset bundles
// they depend on.
type Fragment struct {
	elements []*etree.Element
	deps     []Dependency
}

// Add appends element to the fragment. Dependencies are de-duplicated by name,
// first declaration wins.
func (f *Fragment) Add(el *etree.Element, deps ...Dependency) {
	if el != nil {
		f.elements = append(f.elements, el)
	}
	for _, d := range deps {
		if !f.hasDependency(d.Name) {
			f.deps = append(f.deps, d)
		}
	}
}

func (f *Fragment) hasDependency(name string) bool {
	for _, d := range f.deps {
		if d.Name == name {
			return true
		}
	}
	return false
}

// Elements returns top level elements in order they were added.
func (f *Fragment) Elements() []*etree.Element {
	return f.elements
}

// Dependencies returns collected asset bundles.
func (f *Fragment) Dependencies() []Dependency {
	return f.deps
}

// RenderOptions controls fragment serialization.
type RenderOptions struct {
	// AssetPrefix is passed to Dependency.Elements.
	AssetPrefix string
	// OmitDependencies skips link and script elements, useful when page
	// assembly injects them elsewhere.
	OmitDependencies bool
}

// Render writes fragment as HTML5, one top level element per line.
func (f *Fragment) Render(w io.Writer, opts RenderOptions) error {
	var all []*etree.Element
	if !opts.OmitDependencies {
		for _, d := range f.deps {
			all = append(all, d.Elements(opts.AssetPrefix)...)
		}
	}
	all = append(all, f.elements...)

	for _, el := range all {
		if err := html.Render(w, ToNode(el)); err != nil {
			return fmt.Errorf("unable to render <%s>: %w", el.Tag, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// ToNode converts etree element into html node tree. Processing instructions
// and directives have no place in HTML fragment and are dropped.
func ToNode(el *etree.Element) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.Tag,
		DataAtom: atom.Lookup([]byte(el.Tag)),
	}
	for _, a := range el.Attr {
		n.Attr = append(n.Attr, html.Attribute{Namespace: a.Space, Key: a.Key, Val: a.Value})
	}
	for _, t := range el.Child {
		switch c := t.(type) {
		case *etree.Element:
			n.AppendChild(ToNode(c))
		case *etree.CharData:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: c.Data})
		case *etree.Comment:
			n.AppendChild(&html.Node{Type: html.CommentNode, Data: c.Data})
		}
	}
	return n
}
