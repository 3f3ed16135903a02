package telegram

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBotServer mimics the two Telegram API methods the notifier touches:
// the getMe identity probe and sendMessage.
func fakeBotServer(t *testing.T, onSend func(r *http.Request)) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/bottest-token/getMe", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"sentry","username":"sentry_bot"}}`))
	})
	mux.HandleFunc("/bottest-token/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		if onSend != nil {
			onSend(r)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNewNotifier(t *testing.T) {
	t.Run("bounds every api call with a timeout", func(t *testing.T) {
		server := fakeBotServer(t, nil)

		n := NewNotifier(t.Context(), "test-token", "123", WithAPIEndpoint(server.URL+"/bot%s/%s"))

		require.NotNil(t, n.bot)
		httpClient, ok := n.bot.Client.(*http.Client)
		require.True(t, ok)
		assert.Equal(t, defaultSendTimeout, httpClient.Timeout)
	})

	t.Run("honors a configured send timeout", func(t *testing.T) {
		server := fakeBotServer(t, nil)

		n := NewNotifier(t.Context(), "test-token", "123",
			WithAPIEndpoint(server.URL+"/bot%s/%s"),
			WithSendTimeout(3*time.Second),
		)

		require.NotNil(t, n.bot)
		httpClient, ok := n.bot.Client.(*http.Client)
		require.True(t, ok)
		assert.Equal(t, 3*time.Second, httpClient.Timeout)
	})

	t.Run("an unreachable api yields a disabled notifier", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}))
		defer server.Close()

		n := NewNotifier(t.Context(), "test-token", "123", WithAPIEndpoint(server.URL+"/bot%s/%s"))

		assert.Nil(t, n.bot)
		assert.NoError(t, n.NotifyAlert(t.Context(), sampleAlert()))
	})
}

func TestNotifierDelivery(t *testing.T) {
	t.Run("sends an html alert to the configured chat", func(t *testing.T) {
		var sent *http.Request
		server := fakeBotServer(t, func(r *http.Request) {
			require.NoError(t, r.ParseForm())
			sent = r
		})

		n := NewNotifier(t.Context(), "test-token", "123", WithAPIEndpoint(server.URL+"/bot%s/%s"))
		require.NotNil(t, n.bot)

		err := n.NotifyAlert(t.Context(), sampleAlert())

		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, "123", sent.FormValue("chat_id"))
		assert.Equal(t, "HTML", sent.FormValue("parse_mode"))
		assert.Contains(t, sent.FormValue("text"), sampleAlert().Transaction.Hash)
	})

	t.Run("sends a plain status line", func(t *testing.T) {
		var sent *http.Request
		server := fakeBotServer(t, func(r *http.Request) {
			require.NoError(t, r.ParseForm())
			sent = r
		})

		n := NewNotifier(t.Context(), "test-token", "123", WithAPIEndpoint(server.URL+"/bot%s/%s"))
		require.NotNil(t, n.bot)

		err := n.NotifyStatus(t.Context(), "monitor started")

		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, "monitor started", sent.FormValue("text"))
		assert.Empty(t, sent.FormValue("parse_mode"))
	})
}
