// Package markup holds helpers to declare client side assets and to serialize
// etree element trees as HTML5 fragments.
package markup

import (
	"path"

	"github.com/beevik/etree"
)

// DefaultAssetPrefix is the directory dependency files are expected under
// when nothing else is requested.
const DefaultAssetPrefix = "lib"

// Source tells where dependency files could be found at render time.
type Source struct {
	Package string
	Subdir  string
}

// Dependency declares named and versioned bundle of scripts and stylesheets
// required by some markup.
type Dependency struct {
	Name        string
	Version     string
	Source      Source
	Scripts     []string
	Stylesheets []string
	// AllFiles requests that everything under Source.Subdir is copied, not
	// only the files referenced directly.
	AllFiles bool
}

// Dir is the versioned directory name the bundle is published under.
func (d Dependency) Dir() string {
	return d.Name + "-" + d.Version
}

// Elements returns link and script elements referencing bundle files under
// prefix. Stylesheets come first.
func (d Dependency) Elements(prefix string) []*etree.Element {
	if prefix == "" {
		prefix = DefaultAssetPrefix
	}
	base := path.Join(prefix, d.Dir())

	res := make([]*etree.Element, 0, len(d.Stylesheets)+len(d.Scripts))
	for _, href := range d.Stylesheets {
		link := etree.NewElement("link")
		link.CreateAttr("href", path.Join(base, href))
		link.CreateAttr("rel", "stylesheet")
		res = append(res, link)
	}
	for _, src := range d.Scripts {
		script := etree.NewElement("script")
		script.CreateAttr("src", path.Join(base, src))
		res = append(res, script)
	}
	return res
}
