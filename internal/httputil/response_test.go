package httputil_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anikett35/MediMage/internal/httputil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	httputil.RespondWithError(w, http.StatusNotFound, "submission not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "submission not found", body["error"])
}

func TestDecodeJSON(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"resolved"}`))
		var dst struct {
			Status string `json:"status"`
		}
		require.NoError(t, httputil.DecodeJSON(req, &dst))
		assert.Equal(t, "resolved", dst.Status)
	})

	t.Run("Empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var dst map[string]any
		err := httputil.DecodeJSON(req, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("Malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":`))
		var dst map[string]any
		err := httputil.DecodeJSON(req, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON body")
	})
}
