package generate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"countdown/config"
)

const outputExt = ".html"

// buildOutputPath returns file name for generated fragment under directory
// dir. Name comes from configured template, which may introduce
// subdirectories; every path segment is cleaned and, if requested,
// transliterated. When template is empty or fails default name is used.
func buildOutputPath(dir string, values Values, out *config.OutputConfig, log *zap.Logger) string {
	defaultName := values.Name
	if defaultName == "" {
		defaultName = values.Kind
	}

	name := defaultName
	if out.NameTemplate != "" {
		expanded, err := expandTemplate(config.NameTemplateFieldName, out.NameTemplate, values)
		switch {
		case err != nil:
			log.Warn("Unable to prepare output file name, using default", zap.String("name", defaultName), zap.Error(err))
		case strings.TrimSpace(expanded) == "":
			log.Warn("Output file name template expanded to nothing, using default", zap.String("name", defaultName))
		default:
			name = expanded
		}
	}

	segments := splitPath(filepath.FromSlash(name))
	if len(segments) == 0 {
		segments = []string{defaultName}
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dir)
	for _, segment := range segments {
		parts = append(parts, cleanPathSegment(segment, out.FileNameTransliterate))
	}
	parts[len(parts)-1] += outputExt
	return filepath.Join(parts...)
}

// splitPath breaks relative path into non empty segments, ".." is dropped so
// result stays under destination directory.
func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, string(os.PathSeparator)) {
		if s = strings.TrimSpace(s); s != "" && s != "." && s != ".." {
			segments = append(segments, s)
		}
	}
	return segments
}

func cleanPathSegment(segment string, transliterate bool) string {
	if transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
