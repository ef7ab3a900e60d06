package generate

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"countdown/config"
	"countdown/css"
	"countdown/widget"
)

// importTheme reads custom properties declared for selector in stylesheet at
// path and lays them over base theme. Local @import-ed sheets are followed
// first, so the importing sheet wins. Variables not belonging to the widget
// are logged and ignored.
func importTheme(path, selector string, base widget.StyleOptions, rpt *config.Report, log *zap.Logger) (widget.StyleOptions, error) {
	p := css.NewParser(log)

	sheets, err := loadSheets(p, path, nil, rpt, log)
	if err != nil {
		return base, err
	}

	imported, unknown := widget.ThemeFromVars(css.Merge(selector, sheets...))
	if len(unknown) > 0 {
		log.Warn("Ignoring unknown custom properties", zap.String("file", path), zap.String("selector", selector), zap.Strings("names", unknown))
	}
	if imported.IsEmpty() {
		var available []string
		for _, s := range sheets {
			for _, sel := range s.Selectors() {
				if !slices.Contains(available, sel) {
					available = append(available, sel)
				}
			}
		}
		log.Info("No countdown variables found in stylesheet", zap.String("file", path), zap.String("selector", selector), zap.Strings("available", available))
	}
	return base.Merge(imported), nil
}

// loadSheets parses stylesheet at path preceded by everything it imports,
// depth first. Unreadable imports are reported and skipped, only the top
// level sheet is required.
func loadSheets(p *css.Parser, path string, seen []string, rpt *config.Report, log *zap.Logger) ([]*css.Stylesheet, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if slices.Contains(seen, abs) {
		log.Warn("Circular stylesheet import skipped", zap.String("file", path))
		return nil, nil
	}
	seen = append(seen, abs)

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet from %q: %w", path, err)
	}
	rpt.Store("theme/"+filepath.Base(abs), abs)

	sheet := p.Parse(data, path)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet problem", zap.String("file", path), zap.String("warning", w))
	}

	var sheets []*css.Stylesheet
	for _, ref := range sheet.Imports {
		local, ok := localImport(filepath.Dir(abs), ref)
		if !ok {
			log.Debug("Skipping non local stylesheet import", zap.String("file", path), zap.String("import", ref))
			continue
		}
		nested, err := loadSheets(p, local, seen, rpt, log)
		if err != nil {
			log.Warn("Unable to follow stylesheet import", zap.String("file", path), zap.String("import", ref), zap.Error(err))
			continue
		}
		sheets = append(sheets, nested...)
	}
	return append(sheets, sheet), nil
}

// localImport resolves @import reference against directory of importing
// sheet. References with scheme or host are not local.
func localImport(dir, ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	if filepath.IsAbs(u.Path) {
		return filepath.FromSlash(u.Path), true
	}
	return filepath.Join(dir, filepath.FromSlash(u.Path)), true
}
