// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the bilingual (Bulgarian/English) text resolver and
// the translation catalog for site chrome text.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Lang identifies one of the two site languages.
type Lang string

// Site languages. Bulgarian is the primary language and the fallback for
// every piece of text on the site.
const (
	LangBG Lang = "bg"
	LangEN Lang = "en"
)

// SupportedLanguages lists the site languages in switcher order.
var SupportedLanguages = []Lang{LangBG, LangEN}

// ParseLang normalizes a language code, defaulting to Bulgarian.
func ParseLang(code string) Lang {
	if strings.EqualFold(code, string(LangEN)) {
		return LangEN
	}
	return LangBG
}

// IsSupported reports whether a language code is one of the site languages.
func IsSupported(code string) bool {
	code = strings.ToLower(code)
	return code == string(LangBG) || code == string(LangEN)
}

// Resolve maps a bilingual text pair to a display string.
// The English text is returned only when the selected language is English
// AND the English text is non-empty; otherwise the Bulgarian text is
// returned. Pure function, no ambient state.
func Resolve(lang Lang, bg, en string) string {
	if lang == LangEN && en != "" {
		return en
	}
	return bg
}

// Message represents a single translatable chrome message.
type Message struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
}

// MessageFile is the structure of a locales/<lang>/messages.json file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds chrome translations for both languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[Lang]map[string]string
	matcher      language.Matcher
	logger       *slog.Logger
}

// catalog is the global catalog instance, populated by Init or lazily on
// first lookup. The catalog is embedded, so loading it has no runtime
// dependency and no required init order.
var (
	catalog     *Catalog
	catalogOnce sync.Once
)

// Init loads the embedded translation catalog.
func Init(logger *slog.Logger) error {
	c, err := load(logger)
	if err != nil {
		return err
	}
	catalog = c
	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

func load(logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		translations: make(map[Lang]map[string]string),
		logger:       logger,
	}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(string(lang)))
	}
	c.matcher = language.NewMatcher(tags)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return nil, fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	return c, nil
}

// get returns the catalog, loading the embedded files on first use so that
// lookups never depend on Init having run.
func get() *Catalog {
	if catalog != nil {
		return catalog
	}
	catalogOnce.Do(func() {
		if catalog != nil {
			return
		}
		c, err := load(nil)
		if err != nil {
			slog.Error("loading embedded translation catalog", "error", err)
			return
		}
		catalog = c
	})
	return catalog
}

func (c *Catalog) loadLanguage(lang Lang) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}
	return nil
}

// T translates a chrome message key to the given language.
// Falls back to Bulgarian, then to the key itself. Supports optional
// fmt.Sprintf arguments.
func T(lang Lang, key string, args ...any) string {
	c := get()
	if c == nil {
		return key
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	translation, ok := c.translations[lang][key]
	if !ok {
		translation, ok = c.translations[LangBG][key]
		if !ok {
			return key
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// MatchLanguage finds the best matching site language for an
// Accept-Language header value. Returns "" when nothing matches.
func MatchLanguage(acceptLang string) Lang {
	c := get()
	if c == nil {
		return ""
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return ""
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return ""
	}
	return SupportedLanguages[idx]
}

// TranslationCount returns the number of chrome messages loaded for a language.
func TranslationCount(lang Lang) int {
	c := get()
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.translations[lang])
}
