package i18n

// Printer translates into one language.
type Printer struct {
	translator *Translator
	lang       string
}

// Lang returns the printer's language.
func (p *Printer) Lang() string {
	return p.lang
}

// T translates key with name/value args.
func (p *Printer) T(key string, args ...string) string {
	return p.translator.T(p.lang, key, args...)
}
