package i18n

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLParser reads translation files whose top-level keys are language codes.
//
//	en:
//	  billing:
//	    go_premium: Go Premium
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrYAMLParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no languages in YAML content", ErrInvalidStructure)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		m, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language '%s' must be a map, got %T", ErrInvalidStructure, lang, val)
		}
		result[lang] = m
	}
	return result, nil
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = trimExt(ext)
	return ext == "yaml" || ext == "yml"
}
