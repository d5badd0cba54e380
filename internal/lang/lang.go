package lang

import (
	"fmt"

	"github.com/sirupsen/logrus"

	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
)

var lang = "en"

func SetupLang(config *tmbconfig.Config) {
	if config.Lang != "" {
		lang = config.Lang
	}
}

func GetMessage(id MessageID, args ...any) string {
	if m, ok := messages[id]; ok {
		if msg, ok := m[lang]; ok {
			return fmt.Sprintf(msg, args...)
		}
		if msg, ok := m["en"]; ok {
			return fmt.Sprintf(msg, args...)
		}
	}
	logrus.Warnf("Message not found for ID: %s", id)
	return "Message not found"
}
