package lowdown

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ParserConfig is a serializable description of a Parser's Options,
// letting a caller keep extension choices in a config file rather than
// Go source — SPEC_FULL.md §6.4's yaml.v3/go-toml wiring. Extension
// names are matched case-insensitively against extensionByName's set.
type ParserConfig struct {
	Extensions        []string          `yaml:"extensions" toml:"extensions"`
	MaxDepth          int               `yaml:"max_depth" toml:"max_depth"`
	MetadataOverrides map[string]string `yaml:"metadata_overrides" toml:"metadata_overrides"`
}

// LoadConfigYAML reads and decodes a YAML-encoded ParserConfig from path.
func LoadConfigYAML(path string) (*ParserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "lowdown: reading yaml config")
	}
	var cfg ParserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "lowdown: decoding yaml config")
	}
	return &cfg, nil
}

// LoadConfigTOML reads and decodes a TOML-encoded ParserConfig from path.
func LoadConfigTOML(path string) (*ParserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "lowdown: reading toml config")
	}
	var cfg ParserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "lowdown: decoding toml config")
	}
	return &cfg, nil
}

// Options converts cfg into the functional-options form New accepts,
// falling back to DefaultMaxDepth when MaxDepth is unset.
func (cfg *ParserConfig) Options() []Option {
	maxDepth := cfg.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	var ext Extensions
	for _, name := range cfg.Extensions {
		ext |= extensionByName(name)
	}
	opts := []Option{WithExtensions(ext), WithMaxDepth(maxDepth)}
	if len(cfg.MetadataOverrides) > 0 {
		opts = append(opts, WithMetadataOverrides(cfg.MetadataOverrides))
	}
	return opts
}

// extensionByName maps a config-file extension name to its bitmask
// constant, case-insensitively; unrecognized names contribute nothing
// rather than erroring, so a config written against a newer version of
// this module degrades gracefully against an older one.
func extensionByName(name string) Extensions {
	switch lowerASCII(name) {
	case "tables":
		return Tables
	case "fenced", "fenced_code":
		return Fenced
	case "footnotes":
		return Footnotes
	case "autolink":
		return Autolink
	case "strikethrough":
		return Strikethrough
	case "highlight":
		return Highlight
	case "superscript":
		return Superscript
	case "math":
		return Math
	case "no_intra_emphasis":
		return NoIntraEmphasis
	case "no_code_indent":
		return NoCodeIndent
	case "metadata":
		return Metadata
	case "commonmark":
		return CommonMark
	case "definition_lists":
		return DefinitionLists
	case "image_attributes":
		return ImageAttributes
	default:
		return 0
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}
