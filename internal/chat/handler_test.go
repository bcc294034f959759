package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMessage(t *testing.T, h *Handler, body map[string]string) (*httptest.ResponseRecorder, OutboundMessage) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat/message", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)

	var out OutboundMessage
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHandleMessageRepliesAndAssignsSession(t *testing.T) {
	h := NewHandler("", nil, nil)

	rec, out := postMessage(t, h, map[string]string{"text": "quanto custa?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "message", out.Type)
	assert.Equal(t, "assistant", out.Role)
	assert.Contains(t, out.Text, "Nossos preços variam")
	assert.NotEmpty(t, out.SessionID)
}

func TestHandleMessageUsesConfiguredPhone(t *testing.T) {
	h := NewHandler("(21) 3333-4444", nil, nil)

	rec, out := postMessage(t, h, map[string]string{"text": "quero agendar"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out.Text, "(21) 3333-4444")
}

func TestHandleMessageKeepsSessionTranscript(t *testing.T) {
	h := NewHandler("", nil, nil)

	_, first := postMessage(t, h, map[string]string{"text": "quero agendar"})
	rec, second := postMessage(t, h, map[string]string{"text": "onde fica?", "session_id": first.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.SessionID, second.SessionID)

	req := httptest.NewRequest(http.MethodGet, "/chat/history?session="+first.SessionID, nil)
	histRec := httptest.NewRecorder()
	h.HandleHistory(histRec, req)
	require.Equal(t, http.StatusOK, histRec.Code)

	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &resp))
	// Two exchanges, user + assistant each.
	require.Len(t, resp.Messages, 4)
	assert.Equal(t, "user", resp.Messages[0].Role)
	assert.Equal(t, "quero agendar", resp.Messages[0].Text)
	assert.Equal(t, "assistant", resp.Messages[1].Role)
	assert.Equal(t, "user", resp.Messages[2].Role)
	assert.Equal(t, "onde fica?", resp.Messages[2].Text)
}

func TestHandleMessageRejectsEmptyText(t *testing.T) {
	h := NewHandler("", nil, nil)

	rec, _ := postMessage(t, h, map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMessageRejectsBadJSON(t *testing.T) {
	h := NewHandler("", nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat/message", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHistoryRequiresSession(t *testing.T) {
	h := NewHandler("", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	rec := httptest.NewRecorder()
	h.HandleHistory(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHistoryUnknownSessionIsEmpty(t *testing.T) {
	h := NewHandler("", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/chat/history?session=missing", nil)
	rec := httptest.NewRecorder()
	h.HandleHistory(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Messages)
}

func TestTranscriptCap(t *testing.T) {
	h := NewHandler("", nil, nil)
	for i := 0; i < historyLimit; i++ {
		h.record("s1", HistoryMessage{Role: "user", Text: "oi"})
	}
	h.record("s1", HistoryMessage{Role: "user", Text: "última"})

	h.mu.RLock()
	history := h.sessions["s1"].messages
	h.mu.RUnlock()
	require.Len(t, history, historyLimit)
	assert.Equal(t, "última", history[len(history)-1].Text)
}

func TestSessionTableIsBounded(t *testing.T) {
	h := NewHandler("", nil, nil)

	// A flood of one-shot messages with distinct client-picked session ids
	// must not grow the table past the cap.
	for i := 0; i < maxSessions+500; i++ {
		rec, _ := postMessage(t, h, map[string]string{
			"session_id": fmt.Sprintf("flood-%d", i),
			"text":       "oi",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	h.mu.RLock()
	size := len(h.sessions)
	h.mu.RUnlock()
	assert.LessOrEqual(t, size, maxSessions)
}

func TestIdleSessionsExpire(t *testing.T) {
	h := NewHandler("", nil, nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return base }

	h.record("old", HistoryMessage{Role: "user", Text: "oi"})

	// Past the TTL, the next new session sweeps the idle one out.
	h.now = func() time.Time { return base.Add(sessionTTL + time.Minute) }
	h.record("fresh", HistoryMessage{Role: "user", Text: "oi"})

	h.mu.RLock()
	_, oldKept := h.sessions["old"]
	_, freshKept := h.sessions["fresh"]
	h.mu.RUnlock()
	assert.False(t, oldKept, "idle session past the TTL must be dropped")
	assert.True(t, freshKept)
}
