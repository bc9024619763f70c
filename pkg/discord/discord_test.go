package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidatesWebhookURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "empty", url: "", wantErr: true},
		{name: "not a url", url: "::::", wantErr: true},
		{name: "missing token", url: "https://discord.com/api/webhooks/123", wantErr: true},
		{name: "valid", url: "https://discord.com/api/webhooks/123/abc", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil, tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSendEmbed_PostsPayload(t *testing.T) {
	var got WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d, err := New(nil, srv.URL+"/api/webhooks/1/token")
	require.NoError(t, err)

	err = d.SendEmbed(context.Background(), MessageOptions{
		Type:  MessageTypeWarning,
		Title: "Escalation",
		Fields: []EmbedField{
			{Name: "Level", Value: "2", Inline: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Escalation", got.Embeds[0].Title)
	assert.Equal(t, ColorWarning, got.Embeds[0].Color)
	assert.Equal(t, DefaultUsername, got.Username)
}

func TestSendEmbed_RetriesThenFails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	d, err := NewWithConfig(nil, srv.URL+"/api/webhooks/1/token", cfg)
	require.NoError(t, err)

	err = d.SendError(context.Background(), "scan failed", "boom", nil)
	assert.Error(t, err)
	assert.Equal(t, int32(cfg.RetryCount+1), atomic.LoadInt32(&calls))
}

func TestSendEmbed_RetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	d, err := NewWithConfig(nil, srv.URL+"/api/webhooks/1/token", cfg)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.ReportBug(context.Background(), "panic in handler"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSendEmbed_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	d, err := NewWithConfig(nil, srv.URL+"/api/webhooks/1/token", cfg)
	require.NoError(t, err)

	err = d.SendEmbed(context.Background(), MessageOptions{Title: "x"})
	assert.ErrorIs(t, err, errWebhookRejected)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
