// Package localization serves the fixed UI strings of the site in English and Malayalam.
package localization

import (
	"embed"
	"fmt"

	"ormakal.in/pkg/content"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Manager translates UI message ids. Stored obituary content is resolved by pkg/content instead.
type Manager interface {
	Translate(lang content.Language, messageID string, vars map[string]any) string
	// Content returns every UI string for lang, keyed by message id, for templates.
	Content(lang content.Language) map[string]string
}

type manager struct {
	bundle     *i18n.Bundle
	messageIDs []string
}

// NewManager loads the embedded message files. English is the fallback language.
func NewManager() (Manager, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	var messageIDs []string
	for _, lang := range content.Languages {
		file, err := bundle.LoadMessageFileFS(localeFS, fmt.Sprintf("locales/messages.%s.toml", lang.Code()))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s messages: %w", lang, err)
		}
		if lang == content.English {
			for _, m := range file.Messages {
				messageIDs = append(messageIDs, m.ID)
			}
		}
	}

	return &manager{bundle: bundle, messageIDs: messageIDs}, nil
}

// MustNewManager is NewManager for program start-up.
func MustNewManager() Manager {
	m, err := NewManager()
	if err != nil {
		panic(err)
	}
	return m
}

func (m *manager) localizer(lang content.Language) *i18n.Localizer {
	return i18n.NewLocalizer(m.bundle, lang.Code(), content.English.Code())
}

// Translate returns the message for lang, falling back to English and then to the id itself.
func (m *manager) Translate(lang content.Language, messageID string, vars map[string]any) string {
	msg, err := m.localizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: vars,
	})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}

func (m *manager) Content(lang content.Language) map[string]string {
	localizer := m.localizer(lang)
	strings := make(map[string]string, len(m.messageIDs))
	for _, id := range m.messageIDs {
		msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
		if err != nil || msg == "" {
			msg = id
		}
		strings[id] = msg
	}
	return strings
}
