package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/strem2jelly/telegram-media-bridge/internal/app"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
)

const historyLimit = 20

// HandleHistory replies with the sender's most recent downloads.
func HandleHistory(a *app.App, msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	records, err := a.DB.History(ctx, msg.From.ID, historyLimit)
	if err != nil {
		logrus.WithError(err).Error("Failed to load download history")
		a.Bot.SendMessage(msg.Chat.ID, lang.GetMessage(lang.HistoryErrorMsgID), nil)
		return
	}
	if len(records) == 0 {
		a.Bot.SendMessage(msg.Chat.ID, lang.GetMessage(lang.HistoryEmptyMsgID), nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(lang.GetMessage(lang.HistoryHeaderMsgID))
	for _, record := range records {
		fmt.Fprintf(&sb, "\n%s  %s", record.CreatedAt.Format("2006-01-02 15:04"), record.FileName)
	}
	a.Bot.SendMessage(msg.Chat.ID, sb.String(), nil)
}
