package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"HoyoSentinel/internal/model"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	Client   *http.Client
	APIBase  string

	kinds map[model.EventKind]bool

	mu           sync.Mutex
	fullNotified map[string]bool
}

// NewTelegramNotifier creates a notifier with optional proxy support. kinds
// selects which events are pushed; empty means full events only.
func NewTelegramNotifier(botToken, chatID, proxyURL string, kinds []model.EventKind) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if len(kinds) == 0 {
		kinds = []model.EventKind{model.EventFull}
	}
	set := make(map[model.EventKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  defaultTelegramAPI,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		kinds:        set,
		fullNotified: make(map[string]bool),
	}
}

func (t *TelegramNotifier) apiURL(method string) string {
	base := t.APIBase
	if base == "" {
		base = defaultTelegramAPI
	}
	return fmt.Sprintf("%s/bot%s/%s", base, t.BotToken, method)
}

// Send sends a message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := t.Client.Post(t.apiURL("sendMessage"), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := t.Send(text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] Telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// HandleEvent pushes selected events to the chat. A full event is pushed once
// per account until a later snapshot drops below max; a failed push is retried
// on the next full event.
func (t *TelegramNotifier) HandleEvent(account string, ev model.Event) error {
	if c, ok := ev.(model.ChangedEvent); ok && c.CurrentAmount < c.MaxAmount {
		t.mu.Lock()
		delete(t.fullNotified, account)
		t.mu.Unlock()
	}
	if !t.kinds[ev.Kind()] {
		return nil
	}
	if ev.Kind() != model.EventFull {
		return t.Send(FormatEvent(account, ev))
	}

	t.mu.Lock()
	seen := t.fullNotified[account]
	t.mu.Unlock()
	if seen {
		return nil
	}
	if err := t.Send(FormatEvent(account, ev)); err != nil {
		return err
	}
	t.mu.Lock()
	t.fullNotified[account] = true
	t.mu.Unlock()
	return nil
}
