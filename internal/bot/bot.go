package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
)

// Service is the narrow chat-transport surface the rest of the
// application depends on. Tests use testutils.MockBot.
type Service interface {
	SendMessage(chatID int64, text string, keyboard any)
	SendMessageReturningID(chatID int64, text string, keyboard any) (int, error)
	EditMessageText(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallbackQuery(config tgbotapi.CallbackConfig)
	ForwardMessage(toChatID, fromChatID int64, messageID int) error
}

type Bot struct {
	Api *tgbotapi.BotAPI
}

func InitBot(config *tmbconfig.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		logrus.WithError(err).Error("Error creating bot")
		return nil, fmt.Errorf("error creating bot: %w", err)
	}
	logrus.Infof("Authorized on account %s", api.Self.UserName)
	return &Bot{Api: api}, nil
}

func (b *Bot) SendMessage(chatID int64, text string, keyboard any) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if smsg, err := b.Api.Send(msg); err != nil {
		logrus.WithError(err).Errorf("Message (%s) not sent", smsg.Text)
	}
}

func (b *Bot) SendMessageReturningID(chatID int64, text string, keyboard any) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	smsg, err := b.Api.Send(msg)
	if err != nil {
		logrus.WithError(err).Errorf("Message (%s) not sent", text)
		return 0, err
	}
	return smsg.MessageID, nil
}

// EditMessageText edits a previously sent message. Telegram rejects
// edits that do not change the content; that outcome is benign here.
func (b *Bot) EditMessageText(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.Api.Request(edit); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return err
	}
	return nil
}

func (b *Bot) DeleteMessage(chatID int64, messageID int) error {
	deleteMsg := tgbotapi.NewDeleteMessage(chatID, messageID)
	if _, err := b.Api.Request(deleteMsg); err != nil {
		logrus.WithError(err).Error("Failed to delete message")
		return err
	}
	return nil
}

func (b *Bot) AnswerCallbackQuery(config tgbotapi.CallbackConfig) {
	if _, err := b.Api.Request(config); err != nil {
		logrus.WithError(err).Error("Failed to answer callback query")
	}
}

func (b *Bot) ForwardMessage(toChatID, fromChatID int64, messageID int) error {
	forward := tgbotapi.NewForward(toChatID, fromChatID, messageID)
	if _, err := b.Api.Send(forward); err != nil {
		logrus.WithError(err).Error("Failed to forward message")
		return err
	}
	return nil
}
