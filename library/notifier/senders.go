package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const (
	defaultTelegramAPIURL = "https://api.telegram.org"
	telegramSendTimeout   = 10 * time.Second
	logMsgNotification    = "notification"
	logAttrText           = "text"
)

// ErrDeliveryFailed is returned when a Sender could not hand the text to its destination.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// TelegramSender posts texts to a chat via the Telegram Bot API sendMessage method.
type TelegramSender struct {
	apiURL     string
	botToken   string
	chatID     string
	httpClient *http.Client
}

var _ Sender = (*TelegramSender)(nil)

// NewTelegramSender creates a TelegramSender. An empty apiURL means the public Bot API.
func NewTelegramSender(apiURL, botToken, chatID string) *TelegramSender {
	if apiURL == "" {
		apiURL = defaultTelegramAPIURL
	}

	return &TelegramSender{
		apiURL:     strings.TrimRight(apiURL, "/"),
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: telegramSendTimeout},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts the text to the configured chat.
func (s *TelegramSender) Send(ctx context.Context, text string) error {
	body, err := jsoniter.ConfigFastest.Marshal(sendMessageRequest{ChatID: s.chatID, Text: text})
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}

	endpoint := s.apiURL + "/bot" + s.botToken + "/sendMessage"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// the url error would carry the bot token
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, redact(err.Error(), s.botToken))
	}
	defer resp.Body.Close() //nolint:errcheck

	var answer sendMessageResponse
	decodeErr := jsoniter.ConfigFastest.NewDecoder(resp.Body).Decode(&answer)

	if resp.StatusCode != http.StatusOK || decodeErr != nil || !answer.OK {
		return fmt.Errorf("%w: telegram answered %s: %s", ErrDeliveryFailed, resp.Status, answer.Description)
	}

	return nil
}

func redact(text, secret string) string {
	if secret == "" {
		return text
	}

	return strings.ReplaceAll(text, secret, "***")
}

// LogSender writes texts to the log at info level.
type LogSender struct {
	logger shell.Logger
}

var _ Sender = (*LogSender)(nil)

// NewLogSender creates a LogSender.
func NewLogSender(logger shell.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the text.
func (s *LogSender) Send(_ context.Context, text string) error {
	s.logger.Info(logMsgNotification, logAttrText, text)

	return nil
}
