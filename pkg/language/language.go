// Package language defines the display languages and what each one needs:
// a font able to draw its script, and whether labels must be translated.
//
// Adding a language is a new table entry; callers never branch on a specific value.
package language

import (
	"fmt"
	"strings"
)

// Language is a display language for activity labels.
type Language int

const (
	English Language = iota
	Kannada
)

// Default is the language the classifier vocabulary is written in.
const Default = English

// Profile describes how labels are shown in a language.
type Profile struct {
	Code        string // BCP 47 code passed to translation backends
	Name        string // English name, used in configuration and the UI
	NativeName  string // Name in the language itself
	DefaultFont string // Font file used when configuration does not name one; empty means built-in
	Translate   bool   // Labels must be translated before display
}

var profiles = map[Language]Profile{
	English: {
		Code:       "en",
		Name:       "English",
		NativeName: "English",
		Translate:  false,
	},
	Kannada: {
		Code:        "kn",
		Name:        "Kannada",
		NativeName:  "ಕನ್ನಡ",
		DefaultFont: "fonts/Tunga.ttf",
		Translate:   true,
	},
}

// All returns every supported language in declaration order.
func All() []Language {
	return []Language{English, Kannada}
}

// Profile returns the table entry for l. Unknown values get the default language's profile.
func (l Language) Profile() Profile {
	if p, ok := profiles[l]; ok {
		return p
	}
	return profiles[Default]
}

// Code returns the BCP 47 code.
func (l Language) Code() string {
	return l.Profile().Code
}

// String returns the English name.
func (l Language) String() string {
	return l.Profile().Name
}

// NeedsTranslation reports whether labels must be translated for l.
func (l Language) NeedsTranslation() bool {
	return l.Profile().Translate
}

// Parse accepts a language name or code, case-insensitively.
func Parse(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, l := range All() {
		p := profiles[l]
		if key == p.Code || key == strings.ToLower(p.Name) || key == p.NativeName {
			return l, nil
		}
	}
	return Default, fmt.Errorf("language: unsupported language %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
