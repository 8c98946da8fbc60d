package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"
)

// CommandHandler is called when a user command is received and returns the
// reply text.
type CommandHandler func(ctx context.Context, command string) string

// Commands handled by the bot.
var Commands = []string{"/analysis", "/latest", "/help"}

type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramNotifier sends messages to one chat and answers bot commands.
type TelegramNotifier struct {
	bot     *tele.Bot
	sender  sender
	chat    *tele.Chat
	backoff time.Duration
	log     *logrus.Entry
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken string, chatID int64, proxyURL string, log *logrus.Entry) (*TelegramNotifier, error) {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  botToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		OnError: func(err error, c tele.Context) {
			log.WithError(err).Warn("telegram handler error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:     b,
		sender:  b,
		chat:    &tele.Chat{ID: chatID},
		backoff: time.Second,
		log:     log,
	}, nil
}

// Send sends an HTML message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	if _, err := t.sender.Send(t.chat, text, tele.ModeHTML, tele.NoPreview); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(text)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := t.backoff * time.Duration(1<<uint(i))
		t.log.WithError(err).Warnf("telegram send failed (attempt %d/%d), retrying in %v", i+1, maxRetries+1, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// authorized reports whether a command came from the configured chat.
func (t *TelegramNotifier) authorized(chat *tele.Chat) bool {
	return chat != nil && chat.ID == t.chat.ID
}

// StartPolling registers command handlers and long-polls for updates. Blocks
// until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	for _, cmd := range Commands {
		cmd := cmd
		t.bot.Handle(cmd, func(c tele.Context) error {
			if chat := c.Chat(); !t.authorized(chat) {
				t.log.WithField("chat", chat).Warn("ignoring command from unknown chat")
				return nil
			}
			t.log.WithField("command", cmd).Info("received command")
			reply := handler(ctx, cmd)
			if reply == "" {
				return nil
			}
			return c.Send(reply, tele.ModeHTML, tele.NoPreview)
		})
	}

	go t.bot.Start()
	<-ctx.Done()
	t.bot.Stop()
	t.log.Info("telegram polling stopped")
}
