package format

import (
	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

const DefaultLocale = "en-US"

// Locale ties a selectable locale tag to the number, currency and calendar
// conventions used when rendering it.
type Locale struct {
	Tag  string
	Name string

	lang     language.Tag
	calendar monday.Locale
	// symbolAfter places the currency symbol after the amount.
	symbolAfter  bool
	labelLayout  string
	pickerLayout string
}

var locales = []Locale{
	{
		Tag:          "en-US",
		Name:         "United States",
		lang:         language.AmericanEnglish,
		calendar:     monday.LocaleEnUS,
		labelLayout:  "Jan 2, 2006",
		pickerLayout: "January 2, 2006",
	},
	{
		Tag:          "es",
		Name:         "Spain",
		lang:         language.Spanish,
		calendar:     monday.LocaleEsES,
		symbolAfter:  true,
		labelLayout:  "2 Jan 2006",
		pickerLayout: "2 de January de 2006",
	},
}

// Locales lists the selectable locales, default first.
func Locales() []Locale {
	out := make([]Locale, len(locales))
	copy(out, locales)
	return out
}

func LookupLocale(tag string) (Locale, bool) {
	for _, l := range locales {
		if l.Tag == tag {
			return l, true
		}
	}
	return Locale{}, false
}

// MustLocale is LookupLocale falling back to the default locale.
func MustLocale(tag string) Locale {
	if l, ok := LookupLocale(tag); ok {
		return l
	}
	return locales[0]
}

// LocaleIndex returns the position of tag in Locales(), or -1.
func LocaleIndex(tag string) int {
	for i, l := range locales {
		if l.Tag == tag {
			return i
		}
	}
	return -1
}
