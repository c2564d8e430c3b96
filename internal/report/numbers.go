package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Numbers formats counts for a locale, e.g. 1234 as "1,234" in English.
type Numbers struct {
	p *message.Printer
}

// NewNumbers returns a formatter for the BCP 47 tag locale.
//
// Postcondition: Returns a formatter, or an error for a malformed tag.
func NewNumbers(locale string) (Numbers, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Numbers{}, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return Numbers{p: message.NewPrinter(tag)}, nil
}

// Format renders n with locale grouping.
func (n Numbers) Format(v int) string {
	if n.p == nil {
		return fmt.Sprintf("%d", v)
	}
	return n.p.Sprintf("%d", v)
}
