package i18n

import "errors"

var (
	ErrNilAdapter      = errors.New("translation adapter is nil")
	ErrEmptyLanguage   = errors.New("empty language code found")
	ErrNilTranslations = errors.New("nil translations map for language")

	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrInvalidStructure     = errors.New("invalid translation structure")

	ErrFailedToReadDirectory = errors.New("failed to read translation directory")
	ErrFailedToReadFile      = errors.New("failed to read translation file")
	ErrNoTranslationFiles    = errors.New("no translation files found")
	ErrLoadingCancelled      = errors.New("loading translations cancelled")
)
