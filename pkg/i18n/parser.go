package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes translation file content into {lang: {key: value}}.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	// SupportsFileExtension accepts extensions with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser for the file's extension or nil.
func NewParserForFile(filename string) Parser {
	p := NewYAMLParser()
	if p.SupportsFileExtension(filepath.Ext(filename)) {
		return p
	}
	return nil
}

func trimExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
