// Package notify stands in for an email gateway: outbound events are written to the log
// as the confirmation and support messages that would have been sent.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/anikett35/MediMage/internal/submission"
)

// Recipient is implemented by events that address a person directly.
type Recipient interface {
	ContactEmail() string
}

type Notifier struct {
	logger       *slog.Logger
	supportEmail string
}

func NewNotifier(supportEmail string, logger *slog.Logger) *Notifier {
	return &Notifier{
		logger:       logger,
		supportEmail: supportEmail,
	}
}

func (n *Notifier) SendMessage(ctx context.Context, key string, value interface{}) error {
	if r, ok := value.(Recipient); ok && r.ContactEmail() != "" {
		n.logger.InfoContext(ctx, "confirmation email queued", "to", r.ContactEmail(), "key", key)
	}
	if n.supportEmail != "" {
		n.logger.InfoContext(ctx, "support notification queued", "to", n.supportEmail, "key", key)
	}
	n.logger.DebugContext(ctx, "event payload", "key", key, "payload", value)
	return nil
}

func (n *Notifier) Close() error {
	return nil
}

// HandleSubmissionCreated decodes a submission.created payload from the event stream
// and sends its notifications.
func (n *Notifier) HandleSubmissionCreated(ctx context.Context, key string, data []byte) error {
	var event submission.CreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode submission event: %w", err)
	}
	if key == "" {
		key = event.ID
	}
	return n.SendMessage(ctx, key, event)
}
