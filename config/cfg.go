package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"countdown/widget"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ThemeConfig struct {
		Selector       string              `yaml:"selector" validate:"required"`
		StylesheetPath string              `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		Style          widget.StyleOptions `yaml:"style"`
	}

	OutputConfig struct {
		AssetPrefix           string `yaml:"asset_prefix"`
		IncludeDependencies   bool   `yaml:"include_dependencies"`
		SkipInlineVars        bool   `yaml:"skip_inline_vars"`
		NameTemplate          string `yaml:"name_template"`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Widget    widget.Options `yaml:"widget"`
		Theme     ThemeConfig    `yaml:"theme"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// NameTemplateFieldName must match yaml name of OutputConfig.NameTemplate,
// this field is expanded per generated file and not at load time.
const NameTemplateFieldName = "name_template"

var requiredOptions = []func(*gencfg.ProcessingOptions){
	gencfg.WithDoNotExpandField(NameTemplateFieldName),
}

// checkWidgetDefaults makes sure default timer could actually be built, tags
// alone cannot express limit on combined duration.
func checkWidgetDefaults(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	if _, _, err := widget.Normalize(cfg.Widget.Minutes, cfg.Widget.Seconds); err != nil {
		sl.ReportError(cfg.Widget.Minutes, "Widget.Minutes", "Minutes", "max_duration", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// unknown keys are errors, typo in option name should not go unnoticed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkWidgetDefaults)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration expands embedded configuration template, superimposes
// values from the file at path (if any) and validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
