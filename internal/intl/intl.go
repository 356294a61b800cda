// Package intl holds the console's localized strings. Arabic is the default
// locale; English is the fallback for missing Arabic messages.
package intl

import (
	"embed"
	"encoding/json"
	"io/fs"
	"path"
	"sync"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Supported locale codes.
const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
)

//go:embed locales/*.json
var localeFS embed.FS

//nolint:gochecknoglobals // Bundle is built once from embedded files.
var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
)

// Bundle returns the message bundle with every embedded locale loaded.
func Bundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.Arabic)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)
		files, err := fs.Glob(localeFS, "locales/*.json")
		if err != nil {
			panic(err)
		}
		for _, file := range files {
			data, readErr := localeFS.ReadFile(file)
			if readErr != nil {
				panic(readErr)
			}
			b.MustParseMessageFileBytes(data, path.Base(file))
		}
		bundle = b
	})
	return bundle
}

// Supported reports whether code is a locale with messages.
func Supported(code string) bool {
	return code == LocaleArabic || code == LocaleEnglish
}

// Tag returns the language tag of code, Arabic when unsupported.
func Tag(code string) language.Tag {
	if code == LocaleEnglish {
		return language.English
	}
	return language.Arabic
}

// Localizer renders messages in one locale.
type Localizer struct {
	locale string
	l      *i18n.Localizer
}

// New returns a localizer for code. Unsupported codes get Arabic; messages
// missing from a catalog fall back to English.
func New(code string) *Localizer {
	if !Supported(code) {
		code = LocaleArabic
	}
	return &Localizer{
		locale: code,
		l:      i18n.NewLocalizer(Bundle(), code, LocaleEnglish),
	}
}

// Locale returns the locale code.
func (l *Localizer) Locale() string { return l.locale }

// T renders message id with optional template data. Unknown ids render as
// the id itself.
func (l *Localizer) T(id string, data ...map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	s, err := l.l.Localize(cfg)
	if err != nil || s == "" {
		return id
	}
	return s
}

// Has reports whether id has a message.
func (l *Localizer) Has(id string) bool {
	_, err := l.l.Localize(&i18n.LocalizeConfig{MessageID: id})
	return err == nil
}

// Pair renders id.Title and id.Description. A missing description renders
// as "".
func (l *Localizer) Pair(id string) (title, description string) {
	title = l.T(id + ".Title")
	if l.Has(id + ".Description") {
		description = l.T(id + ".Description")
	}
	return title, description
}
