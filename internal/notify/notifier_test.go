package notify_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/anikett35/MediMage/internal/logger"
	"github.com/anikett35/MediMage/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactEvent struct {
	email string
}

func (e contactEvent) ContactEmail() string { return e.email }

func TestNotifier_SendMessage(t *testing.T) {
	t.Setenv("ENV", "unittest")

	t.Run("ContactAndSupport", func(t *testing.T) {
		var buf bytes.Buffer
		n := notify.NewNotifier("support@medimaga.com", logger.NewWithWriter(&buf))

		err := n.SendMessage(context.Background(), "sub-1", contactEvent{email: "asha@example.com"})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "confirmation email queued")
		assert.Contains(t, out, "asha@example.com")
		assert.Contains(t, out, "support notification queued")
		assert.Contains(t, out, "support@medimaga.com")
	})

	t.Run("PlainPayload", func(t *testing.T) {
		var buf bytes.Buffer
		n := notify.NewNotifier("", logger.NewWithWriter(&buf))

		require.NoError(t, n.SendMessage(context.Background(), "k", map[string]string{"a": "b"}))
		assert.False(t, strings.Contains(buf.String(), "queued"))
		assert.NoError(t, n.Close())
	})
}

func TestNotifier_HandleSubmissionCreated(t *testing.T) {
	t.Setenv("ENV", "unittest")

	t.Run("DecodesEvent", func(t *testing.T) {
		var buf bytes.Buffer
		n := notify.NewNotifier("support@medimaga.com", logger.NewWithWriter(&buf))

		payload := []byte(`{"id":"3f1c","name":"Asha Rao","email":"asha@example.com","subject":"Reschedule","department":"appointments","priority":"high","createdAt":"2026-03-01T10:00:00Z"}`)
		require.NoError(t, n.HandleSubmissionCreated(context.Background(), "", payload))

		out := buf.String()
		assert.Contains(t, out, "confirmation email queued")
		assert.Contains(t, out, "asha@example.com")
		assert.Contains(t, out, "3f1c")
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		n := notify.NewNotifier("support@medimaga.com", logger.Discard())

		err := n.HandleSubmissionCreated(context.Background(), "k", []byte("not json"))
		assert.ErrorContains(t, err, "decode submission event")
	})
}
