package markup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
)

func testDependency() Dependency {
	return Dependency{
		Name:        "countdown",
		Version:     "1.2.3",
		Source:      Source{Package: "countdown", Subdir: "assets"},
		Scripts:     []string{"countdown.js"},
		Stylesheets: []string{"countdown.css"},
	}
}

func TestDependency_Elements(t *testing.T) {
	els := testDependency().Elements("")
	if len(els) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(els))
	}
	if els[0].Tag != "link" || els[0].SelectAttrValue("href", "") != "lib/countdown-1.2.3/countdown.css" {
		t.Errorf("unexpected link element: %s %v", els[0].Tag, els[0].Attr)
	}
	if els[0].SelectAttrValue("rel", "") != "stylesheet" {
		t.Error("link is not a stylesheet")
	}
	if els[1].Tag != "script" || els[1].SelectAttrValue("src", "") != "lib/countdown-1.2.3/countdown.js" {
		t.Errorf("unexpected script element: %s %v", els[1].Tag, els[1].Attr)
	}

	els = testDependency().Elements("/static/")
	if got := els[1].SelectAttrValue("src", ""); got != "/static/countdown-1.2.3/countdown.js" {
		t.Errorf("prefixed src = %q", got)
	}
}

func TestFragment_DeduplicatesDependencies(t *testing.T) {
	var f Fragment
	f.Add(etree.NewElement("div"), testDependency())
	newer := testDependency()
	newer.Version = "9.9.9"
	f.Add(etree.NewElement("div"), newer)
	f.Add(nil, testDependency())

	if len(f.Elements()) != 2 {
		t.Errorf("expected 2 elements, got %d", len(f.Elements()))
	}
	deps := f.Dependencies()
	if len(deps) != 1 || deps[0].Version != "1.2.3" {
		t.Errorf("unexpected dependencies %v", deps)
	}
}

func TestFragment_Render(t *testing.T) {
	div := etree.NewElement("div")
	div.CreateAttr("class", "countdown")
	div.CreateAttr("data-play-sound", "true")
	btn := div.CreateElement("button")
	btn.SetText("−")
	code := div.CreateElement("code")
	code.CreateElement("span").SetText("05")

	style := etree.NewElement("style")
	style.SetText(`:root { --countdown-font-family: "Fira Code"; }`)

	var f Fragment
	f.Add(style)
	f.Add(div, testDependency())

	var buf bytes.Buffer
	if err := f.Render(&buf, RenderOptions{AssetPrefix: "assets"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := strings.Join([]string{
		`<link href="assets/countdown-1.2.3/countdown.css" rel="stylesheet"/>`,
		`<script src="assets/countdown-1.2.3/countdown.js"></script>`,
		`<style>:root { --countdown-font-family: "Fira Code"; }</style>`,
		`<div class="countdown" data-play-sound="true"><button>−</button><code><span>05</span></code></div>`,
		``,
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestFragment_RenderOmitDependencies(t *testing.T) {
	var f Fragment
	f.Add(etree.NewElement("div"), testDependency())

	var buf bytes.Buffer
	if err := f.Render(&buf, RenderOptions{OmitDependencies: true}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := buf.String(); got != "<div></div>\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestDump(t *testing.T) {
	div := etree.NewElement("div")
	div.CreateAttr("id", "timer_1")
	div.CreateElement("span").SetText("00")

	want := "<div>\n  id=\"timer_1\"\n  <span>\n    text: \"00\"\n"
	if got := Dump(div); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
