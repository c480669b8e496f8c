package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/config"
)

func newTestMailer(url string) *BrevoMailer {
	return NewBrevoMailer(&config.MailConfig{
		BaseURL:     url,
		APIKey:      "test-key",
		SenderEmail: "noreply@example.com",
		SenderName:  "HR",
	})
}

func TestSendPostsBrevoPayload(t *testing.T) {
	var got brevoRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/smtp/email", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := newTestMailer(srv.URL)
	err := m.Send(context.Background(), Message{
		To:      []string{"user@example.com"},
		Subject: "Access credentials",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "user@example.com", got.To[0].Email)
	assert.Equal(t, "Access credentials", got.Subject)
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestMailer(srv.URL).Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "s"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestMailer(srv.URL).Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "s"})
	require.Error(t, err)
	assert.True(t, apperror.IsUnavailable(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendRequiresRecipients(t *testing.T) {
	err := newTestMailer("http://unused").Send(context.Background(), Message{Subject: "s"})
	assert.True(t, apperror.IsValidation(err))
}
