package api

import (
	"context"
	"encoding/json"
	"faqbot/app/config"
	"faqbot/app/service/chat"
	"faqbot/app/service/interaction"
	"faqbot/app/service/knowledge"
	"faqbot/app/service/queue"
	"faqbot/app/service/recorder"
	"faqbot/app/service/resolver"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	log    *interaction.FileLog
	cookie *http.Cookie
}

// newTestServer wires the chat service to a running recorder when analytics are enabled.
func newTestServer(t *testing.T, withAnalytics bool) *testServer {
	t.Helper()

	cfg := config.Default()
	kb := knowledge.Default()
	r := resolver.NewResolver(kb, resolver.Options{FuzzyCutoff: 0.5})

	ts := &testServer{}
	var log interaction.Log
	var q *queue.Service
	if withAnalytics {
		fileLog, err := interaction.NewFileLog(filepath.Join(t.TempDir(), "analytics.csv"))
		require.NoError(t, err)
		ts.log = fileLog
		log = fileLog

		q = queue.NewQueue(cfg.Analytics.QueueSize)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			recorder.NewRecorder(q, fileLog).Run(ctx)
		}()
		t.Cleanup(func() {
			cancel()
			<-done
		})
	}

	ts.Server = NewServer(cfg, kb, chat.NewService(r, q, time.Hour), log)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == ts.cfg.Chat.CookieName {
			ts.cookie = c
		}
	}

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := ts.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "Smart FAQ Chatbot")
}

func TestQuestions(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := ts.do(t, http.MethodGet, "/api/questions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got questionsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, ts.kb.SampleQuestions(), got.Questions)
	assert.Contains(t, got.Questions, "What is your return policy?")
}

func TestChatFlow(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := ts.do(t, http.MethodGet, "/api/chat", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, ts.cookie)

	var history historyResponse
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history.Messages, 1)

	resp, body = ts.do(t, http.MethodPost, "/api/chat", `{"question":"track order"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply chat.Reply
	require.NoError(t, json.Unmarshal(body, &reply))
	assert.Equal(t, resolver.CategoryPartial, reply.Category)
	assert.Equal(t, "🔵 Partial Match", reply.Badge)
	assert.Contains(t, reply.Answer, "track your order")

	_, body = ts.do(t, http.MethodGet, "/api/chat", "")
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history.Messages, 3)
	assert.Equal(t, chat.RoleUser, history.Messages[1].Role)
	assert.Equal(t, "track order", history.Messages[1].Content)
	assert.Equal(t, resolver.CategoryPartial, history.Messages[2].Category)

	resp, _ = ts.do(t, http.MethodDelete, "/api/chat", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body = ts.do(t, http.MethodGet, "/api/chat", "")
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Len(t, history.Messages, 1)
}

func TestChatWithoutCookieStartsNewSession(t *testing.T) {
	ts := newTestServer(t, true)

	ts.do(t, http.MethodPost, "/api/chat", `{"question":"hi"}`)
	ts.cookie = &http.Cookie{Name: ts.cfg.Chat.CookieName, Value: "not-a-uuid"}

	_, body := ts.do(t, http.MethodGet, "/api/chat", "")

	var history historyResponse
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Len(t, history.Messages, 1)
	assert.NotEqual(t, "not-a-uuid", ts.cookie.Value)
}

func TestAskValidation(t *testing.T) {
	ts := newTestServer(t, true)

	tests := []struct {
		name string
		body string
	}{
		{"empty question", `{"question":""}`},
		{"missing question", `{}`},
		{"broken json", `{"question":`},
		{"too long", `{"question":"` + strings.Repeat("a", 2001) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := ts.do(t, http.MethodPost, "/api/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errBody map[string]string
			require.NoError(t, json.Unmarshal(body, &errBody))
			assert.NotEmpty(t, errBody["error"])
		})
	}
}

func TestAnalytics(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := ts.do(t, http.MethodGet, "/api/analytics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got analyticsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Zero(t, got.Total)
	assert.Empty(t, got.Records)

	day1 := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	require.NoError(t, ts.log.Append(interaction.NewRecord(day1, "hi", resolver.CategoryGreeting)))
	require.NoError(t, ts.log.Append(interaction.NewRecord(day1, "yo", resolver.CategoryFallback)))
	require.NoError(t, ts.log.Append(interaction.NewRecord(day2, "track order", resolver.CategoryPartial)))

	_, body = ts.do(t, http.MethodGet, "/api/analytics", "")
	got = analyticsResponse{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Answered)
	assert.Equal(t, 1, got.Greetings)
	assert.Equal(t, 1, got.NotAnswered)
	assert.Equal(t, []string{"2025-04-02", "2025-04-01"}, got.Dates)
	assert.Equal(t, interaction.AllDates, got.Date)
	assert.Len(t, got.Records, 3)

	_, body = ts.do(t, http.MethodGet, "/api/analytics?date=2025-04-01", "")
	got = analyticsResponse{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 3, got.Total)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "hi", got.Records[0].Question)
	assert.Equal(t, "yo", got.Records[1].Question)

	resp, _ = ts.do(t, http.MethodDelete, "/api/analytics", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body = ts.do(t, http.MethodGet, "/api/analytics", "")
	got = analyticsResponse{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Zero(t, got.Total)
}

func TestChatTurnsAreLogged(t *testing.T) {
	ts := newTestServer(t, true)

	resp, _ := ts.do(t, http.MethodPost, "/api/chat", `{"question":"track order"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := ts.do(t, http.MethodGet, "/api/analytics", "")
	var got analyticsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 1, got.Answered)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "track order", got.Records[0].Question)
	assert.Equal(t, resolver.CategoryPartial, got.Records[0].MatchType)

	resp, _ = ts.do(t, http.MethodDelete, "/api/analytics", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	records, err := ts.log.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)

	ts.do(t, http.MethodPost, "/api/chat", `{"question":"hi"}`)

	records, err = ts.log.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, resolver.CategoryGreeting, records[0].MatchType)
}

func TestAnalyticsDisabled(t *testing.T) {
	ts := newTestServer(t, false)

	resp, _ := ts.do(t, http.MethodGet, "/api/analytics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodDelete, "/api/analytics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/chat", `{"question":"hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
