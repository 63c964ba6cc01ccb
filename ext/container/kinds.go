package container

import (
	"strings"

	"golang.org/x/text/language"
)

// Kind describes one container label.
type Kind struct {
	Name  string
	Icon  string
	Class string
	// Titles holds the default title per supported locale.
	Titles map[language.Tag]string
}

// Title returns the default title for locale, falling back to Russian.
func (k Kind) Title(locale language.Tag) string {
	if t, ok := k.Titles[locale]; ok {
		return t
	}
	return k.Titles[language.Russian]
}

var locales = []language.Tag{language.Russian, language.English}

var localeMatcher = language.NewMatcher(locales)

// MatchLocale maps a BCP 47 locale string to a supported title locale.
// Unknown or empty input yields Russian.
func MatchLocale(locale string) language.Tag {
	if strings.TrimSpace(locale) == "" {
		return language.Russian
	}
	_, idx := language.MatchStrings(localeMatcher, locale)
	return locales[idx]
}

var kinds = []Kind{
	{
		Name:  "warning",
		Icon:  "bi-exclamation-triangle-fill",
		Class: "alert-warning",
		Titles: map[language.Tag]string{
			language.Russian: "Предупреждение",
			language.English: "Warning",
		},
	},
	{
		Name:  "info",
		Icon:  "bi-info-circle-fill",
		Class: "alert-info",
		Titles: map[language.Tag]string{
			language.Russian: "Информация",
			language.English: "Information",
		},
	},
	{
		Name:  "note",
		Icon:  "bi-sticky-fill",
		Class: "alert-secondary",
		Titles: map[language.Tag]string{
			language.Russian: "Заметка",
			language.English: "Note",
		},
	},
	{
		Name:  "tip",
		Icon:  "bi-lightbulb-fill",
		Class: "alert-success",
		Titles: map[language.Tag]string{
			language.Russian: "Совет",
			language.English: "Tip",
		},
	},
	{
		Name:  "danger",
		Icon:  "bi-exclamation-octagon-fill",
		Class: "alert-danger",
		Titles: map[language.Tag]string{
			language.Russian: "Опасность",
			language.English: "Danger",
		},
	},
	{
		Name:  "success",
		Icon:  "bi-check-circle-fill",
		Class: "alert-success",
		Titles: map[language.Tag]string{
			language.Russian: "Успех",
			language.English: "Success",
		},
	},
}

// Kinds returns the supported container kinds in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Lookup returns the kind named name.
func Lookup(name string) (Kind, bool) {
	for _, k := range kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// HasContent reports whether src may contain a container fence.
func HasContent(src string) bool {
	for _, k := range kinds {
		if strings.Contains(src, ":::"+k.Name) || strings.Contains(src, "::: "+k.Name) {
			return true
		}
	}
	return false
}
