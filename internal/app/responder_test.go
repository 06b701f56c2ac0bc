package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"syncpad/internal/ai"
	"syncpad/internal/model"
)

type fakeMessageStore struct {
	mu      sync.Mutex
	rows    map[uint]*model.Message
	patches []string
	nextID  uint

	createErr error
	updateErr error
}

func newFakeMessageStore(rows ...*model.Message) *fakeMessageStore {
	s := &fakeMessageStore{rows: make(map[uint]*model.Message)}
	for _, row := range rows {
		s.rows[row.ID] = row
		if row.ID > s.nextID {
			s.nextID = row.ID
		}
	}
	return s
}

func (s *fakeMessageStore) Create(message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	message.ID = s.nextID
	copied := *message
	s.rows[message.ID] = &copied
	return nil
}

func (s *fakeMessageStore) GetByID(id uint) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (s *fakeMessageStore) ListByPageID(pageID uint) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Message
	for _, row := range s.rows {
		if row.PageID == pageID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) ListRecentByPageID(pageID uint, limit int) ([]model.Message, error) {
	return s.ListByPageID(pageID)
}

func (s *fakeMessageStore) UpdateText(id uint, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	if row, ok := s.rows[id]; ok {
		row.Text = text
		s.patches = append(s.patches, text)
	}
	return nil
}

func (s *fakeMessageStore) MarkComplete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[id]; ok {
		row.IsComplete = true
	}
	return nil
}

func (s *fakeMessageStore) UpdateLikes(id uint, likes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[id]; ok {
		row.Likes = likes
	}
	return nil
}

func (s *fakeMessageStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *fakeMessageStore) DeleteByPageID(pageID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if row.PageID == pageID {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *fakeMessageStore) row(t *testing.T, id uint) model.Message {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		t.Fatalf("row %d not found", id)
	}
	return *row
}

func (s *fakeMessageStore) recordedPatches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.patches...)
}

func streamServer(t *testing.T, status int, lines ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "provider error", status)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n\n", line)
		}
	}))
}

func contentFrame(content string) string {
	return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q}}]}`, content)
}

func newTestResponder(store *fakeMessageStore, baseURL string) *Responder {
	return NewResponder(
		store,
		nil,
		ai.NewOpenAICompatibleClient(nil),
		ai.ChatConfig{BaseURL: baseURL, Model: "test-model"},
		10,
		time.Minute,
		nil,
	)
}

func pendingRow(id, pageID uint) *model.Message {
	return &model.Message{ID: id, PageID: pageID, Sender: "ai", IsComplete: false}
}

func TestRespondStreamsAndCompletes(t *testing.T) {
	srv := streamServer(t, http.StatusOK,
		contentFrame("po"),
		contentFrame("ng"),
		"data: [DONE]",
	)
	defer srv.Close()

	store := newFakeMessageStore(pendingRow(1, 7))
	responder := newTestResponder(store, srv.URL)

	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 1, PageID: 7, Prompt: "ping"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	patches := store.recordedPatches()
	want := []string{"po", "pong"}
	if len(patches) != len(want) {
		t.Fatalf("patches = %v, want %v", patches, want)
	}
	for i := range want {
		if patches[i] != want[i] {
			t.Fatalf("patch %d = %q, want %q", i, patches[i], want[i])
		}
	}

	row := store.row(t, 1)
	if row.Text != "pong" {
		t.Errorf("text = %q, want %q", row.Text, "pong")
	}
	if !row.IsComplete {
		t.Error("row not marked complete")
	}
}

func TestRespondPatchesGrowMonotonically(t *testing.T) {
	srv := streamServer(t, http.StatusOK,
		contentFrame("a"),
		contentFrame("b"),
		contentFrame("c"),
		"data: [DONE]",
	)
	defer srv.Close()

	store := newFakeMessageStore(pendingRow(1, 1))
	responder := newTestResponder(store, srv.URL)
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 1, PageID: 1, Prompt: "x"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	patches := store.recordedPatches()
	for i := 1; i < len(patches); i++ {
		if !strings.HasPrefix(patches[i], patches[i-1]) {
			t.Fatalf("patch %d %q is not an extension of %q", i, patches[i], patches[i-1])
		}
	}
}

func TestRespondAuthFailure(t *testing.T) {
	srv := streamServer(t, http.StatusUnauthorized)
	defer srv.Close()

	store := newFakeMessageStore(pendingRow(1, 1))
	responder := newTestResponder(store, srv.URL)
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 1, PageID: 1, Prompt: "x"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	row := store.row(t, 1)
	if row.Text != errTextAuth {
		t.Errorf("text = %q, want %q", row.Text, errTextAuth)
	}
	if !row.IsComplete {
		t.Error("failed row must still end complete")
	}
}

func TestRespondRateLimitFailure(t *testing.T) {
	srv := streamServer(t, http.StatusTooManyRequests)
	defer srv.Close()

	store := newFakeMessageStore(pendingRow(1, 1))
	responder := newTestResponder(store, srv.URL)
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 1, PageID: 1, Prompt: "x"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	row := store.row(t, 1)
	if row.Text != errTextRateLimit {
		t.Errorf("text = %q, want %q", row.Text, errTextRateLimit)
	}
	if !row.IsComplete {
		t.Error("failed row must still end complete")
	}
}

func TestRespondGenericFailure(t *testing.T) {
	srv := streamServer(t, http.StatusInternalServerError)
	defer srv.Close()

	store := newFakeMessageStore(pendingRow(1, 1))
	responder := newTestResponder(store, srv.URL)
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 1, PageID: 1, Prompt: "x"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	row := store.row(t, 1)
	if row.Text != errTextGeneric {
		t.Errorf("text = %q, want %q", row.Text, errTextGeneric)
	}
}

func TestRespondEmptyStream(t *testing.T) {
	srv := streamServer(t, http.StatusOK, "data: [DONE]")
	defer srv.Close()

	store := newFakeMessageStore(pendingRow(1, 1))
	responder := newTestResponder(store, srv.URL)
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 1, PageID: 1, Prompt: "x"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	row := store.row(t, 1)
	if row.Text != errTextEmpty {
		t.Errorf("text = %q, want %q", row.Text, errTextEmpty)
	}
	if !row.IsComplete {
		t.Error("empty response row must still end complete")
	}
}

func TestRespondMissingRowIsNoOp(t *testing.T) {
	store := newFakeMessageStore()
	responder := newTestResponder(store, "http://127.0.0.1:1")
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 42, PageID: 1, Prompt: "x"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if patches := store.recordedPatches(); len(patches) != 0 {
		t.Errorf("patches = %v, want none", patches)
	}
}

func TestRespondSkipsCompletedRow(t *testing.T) {
	row := &model.Message{ID: 1, PageID: 1, Sender: "ai", Text: "done earlier", IsComplete: true}
	store := newFakeMessageStore(row)
	responder := newTestResponder(store, "http://127.0.0.1:1")
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 1, PageID: 1, Prompt: "x"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	got := store.row(t, 1)
	if got.Text != "done earlier" {
		t.Errorf("text = %q, completed row must not change", got.Text)
	}
	if patches := store.recordedPatches(); len(patches) != 0 {
		t.Errorf("patches = %v, want none", patches)
	}
}

func TestFailSealsPendingRow(t *testing.T) {
	store := newFakeMessageStore(pendingRow(1, 1))
	responder := newTestResponder(store, "http://127.0.0.1:1")

	responder.Fail(context.Background(), model.AskTask{MessageID: 1, PageID: 1})

	row := store.row(t, 1)
	if row.Text != errTextGeneric {
		t.Errorf("text = %q, want %q", row.Text, errTextGeneric)
	}
	if !row.IsComplete {
		t.Error("abandoned row must end complete")
	}
}

func TestFailLeavesCompletedRowAlone(t *testing.T) {
	store := newFakeMessageStore(&model.Message{ID: 1, PageID: 1, Sender: "ai", Text: "answer", IsComplete: true})
	responder := newTestResponder(store, "http://127.0.0.1:1")

	responder.Fail(context.Background(), model.AskTask{MessageID: 1, PageID: 1})

	row := store.row(t, 1)
	if row.Text != "answer" {
		t.Errorf("text = %q, completed row must not change", row.Text)
	}
	if patches := store.recordedPatches(); len(patches) != 0 {
		t.Errorf("patches = %v, want none", patches)
	}
}

func TestFailMissingRowIsNoOp(t *testing.T) {
	store := newFakeMessageStore()
	responder := newTestResponder(store, "http://127.0.0.1:1")

	responder.Fail(context.Background(), model.AskTask{MessageID: 9, PageID: 1})

	if patches := store.recordedPatches(); len(patches) != 0 {
		t.Errorf("patches = %v, want none", patches)
	}
}

func TestRespondPromptIncludesHistoryExcludesPlaceholder(t *testing.T) {
	var captured struct {
		mu   sync.Mutex
		body string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured.mu.Lock()
		captured.body = string(raw)
		captured.mu.Unlock()
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "%s\n\n", contentFrame("hi"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	store := newFakeMessageStore(
		&model.Message{ID: 1, PageID: 1, Sender: "alice", Text: "earlier question", IsComplete: true},
		&model.Message{ID: 2, PageID: 1, Sender: "ai", Text: "earlier answer", IsComplete: true},
		pendingRow(3, 1),
	)
	responder := newTestResponder(store, srv.URL)
	if err := responder.Respond(context.Background(), model.AskTask{MessageID: 3, PageID: 1, Prompt: "new question"}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	captured.mu.Lock()
	body := captured.body
	captured.mu.Unlock()

	if !strings.Contains(body, "earlier question") {
		t.Error("prompt is missing the page history")
	}
	if !strings.Contains(body, `"assistant"`) {
		t.Error("ai history must be sent with the assistant role")
	}
	if !strings.Contains(body, "new question") {
		t.Error("prompt is missing the asking user's question")
	}
}
