package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishDeliversEvent(t *testing.T) {
	var gotBody []byte
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewWebhookPublisher(Config{URL: srv.URL, Token: "secret"}, nil)
	err := p.Publish(context.Background(), Event{
		Type:        "board.refreshed",
		DraftID:     "12345",
		PickCount:   7,
		LastPick:    "Justin Jefferson",
		RefreshedAt: time.Unix(1700000000, 0).UTC(),
	})
	require.NoError(t, err)
	require.Equal(t, "Bearer secret", gotAuth)

	var event Event
	require.NoError(t, json.Unmarshal(gotBody, &event))
	require.Equal(t, "board.refreshed", event.Type)
	require.Equal(t, 7, event.PickCount)
	require.Equal(t, "Justin Jefferson", event.LastPick)
}

func TestPublishReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewWebhookPublisher(Config{URL: srv.URL}, nil)
	err := p.Publish(context.Background(), Event{Type: "board.refreshed"})
	require.Error(t, err)
}

func TestNilPublisherIsNoop(t *testing.T) {
	p := NewWebhookPublisher(Config{}, nil)
	require.Nil(t, p)
	require.NoError(t, p.Publish(context.Background(), Event{}))
}
