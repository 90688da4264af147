package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"exifstudio/internal/config"
)

const userAgent = "ExifStudio/0.1.0"

// Level classifies a workflow outcome notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Service defines the notification surface exposed to workflow components.
type Service interface {
	Success(ctx context.Context, message string) error
	Error(ctx context.Context, message string) error
	Warning(ctx context.Context, message string) error
	Info(ctx context.Context, message string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Success(ctx context.Context, message string) error {
	data := payload{
		title:   "ExifStudio - Success",
		message: strings.TrimSpace(message),
		tags:    []string{"exifstudio", "success"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) Error(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "unknown error"
	}
	data := payload{
		title:    "ExifStudio - Error",
		message:  message,
		tags:     []string{"exifstudio", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) Warning(ctx context.Context, message string) error {
	data := payload{
		title:   "ExifStudio - Warning",
		message: strings.TrimSpace(message),
		tags:    []string{"exifstudio", "warning"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) Info(ctx context.Context, message string) error {
	data := payload{
		title:    "ExifStudio - Info",
		message:  strings.TrimSpace(message),
		tags:     []string{"exifstudio", "info"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "ExifStudio - Test",
		message:  "Notification system test",
		tags:     []string{"exifstudio", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Success(context.Context, string) error  { return nil }
func (noopService) Error(context.Context, string) error    { return nil }
func (noopService) Warning(context.Context, string) error  { return nil }
func (noopService) Info(context.Context, string) error     { return nil }
func (noopService) TestNotification(context.Context) error { return nil }
