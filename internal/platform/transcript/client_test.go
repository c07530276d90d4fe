package transcript

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ankify/ankify-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longSpeech = "Welcome to this lecture on cellular biology where we discuss mitochondria."

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(config.TranscriptConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL + "/",
		TimeoutSeconds: 5,
	}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return c
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(config.TranscriptConfig{BaseURL: "https://transcriptapi.com"})
	assert.ErrorIs(t, err, errMissingAPIKey)

	_, err = New(config.TranscriptConfig{APIKey: "k"})
	assert.ErrorIs(t, err, errMissingBaseURL)
}

func TestFetchRequest(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("video_url")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"video_id":"abc","transcript":[{"text":"`+longSpeech+`","start":0}]}`)
	})

	got, err := c.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc&t=10")

	require.NoError(t, err)
	assert.Equal(t, longSpeech, got)
	assert.Equal(t, "/api/v2/youtube/transcript", gotPath)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc&t=10", gotQuery)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestFetchResponseShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "transcript segments",
			body: `{"transcript":[{"text":"  first part of the lecture  "},{"text":"   "},{"text":"second part of the lecture covering mitochondria"}]}`,
			want: "first part of the lecture second part of the lecture covering mitochondria",
		},
		{
			name: "text field",
			body: `{"text":"` + longSpeech + `"}`,
			want: longSpeech,
		},
		{
			name: "bare segment array",
			body: `[{"text":"first part of the lecture"},{"transcript":"second part of the lecture covering mitochondria"}]`,
			want: "first part of the lecture second part of the lecture covering mitochondria",
		},
		{
			name: "json string",
			body: `"` + longSpeech + `"`,
			want: longSpeech,
		},
		{
			name: "plain text",
			body: longSpeech,
			want: longSpeech,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tc.body)
			})
			got, err := c.Fetch(context.Background(), "https://youtu.be/abc")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
		{
			name:    "upstream message",
			status:  http.StatusBadGateway,
			body:    `{"message":"video is private"}`,
			wantErr: ErrUpstream,
			wantMsg: "video is private",
		},
		{
			name:    "upstream error field",
			status:  http.StatusInternalServerError,
			body:    `{"error":"backend down"}`,
			wantErr: ErrUpstream,
			wantMsg: "backend down",
		},
		{
			name:    "upstream bare status",
			status:  http.StatusServiceUnavailable,
			wantErr: ErrUpstream,
			wantMsg: "API error (503)",
		},
		{name: "empty transcript", status: http.StatusOK, body: `{"transcript":[]}`, wantErr: ErrNoSpeech},
		{name: "blank text", status: http.StatusOK, body: `{"text":"   "}`, wantErr: ErrNoSpeech},
		{name: "too short", status: http.StatusOK, body: `{"text":"la la la"}`, wantErr: ErrTooLittleSpeech},
		{name: "unknown shape", status: http.StatusOK, body: `{"foo":"bar"}`, wantErr: ErrUnexpectedFormat},
		{name: "number", status: http.StatusOK, body: `42`, wantErr: ErrUnexpectedFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := c.Fetch(context.Background(), "https://youtu.be/abc")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestFetchTooLittleSpeechCountsTrimmedCharacters(t *testing.T) {
	t.Parallel()

	exact := strings.Repeat("a", MinTranscriptLength)
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"text":"   `+exact+`   "}`)
	})

	got, err := c.Fetch(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, "   "+exact+"   ", got)
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Fetch(ctx, "https://youtu.be/abc")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestFetchEmptyURL(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Fetch(context.Background(), "  ")
	assert.ErrorIs(t, err, errMissingVideoURL)
}
