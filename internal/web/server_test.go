package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/selector"
	"github.com/conorfennell/namepick/internal/session"
)

type memoryStore struct {
	history domain.History
	saves   int
}

func (m *memoryStore) LoadHistory(ctx context.Context) (domain.History, error) {
	return m.history, nil
}

func (m *memoryStore) SaveHistory(ctx context.Context, h domain.History) error {
	m.history = h
	m.saves++
	return nil
}

func newTestServer(t *testing.T, store *memoryStore) *Server {
	t.Helper()
	sess, err := session.Open(context.Background(), selector.CrossProduct{"安", "心"}, store, nil)
	if err != nil {
		t.Fatalf("session.Open() returned an unexpected error: %v", err)
	}
	srv, err := NewServer(sess)
	if err != nil {
		t.Fatalf("NewServer() returned an unexpected error: %v", err)
	}
	return srv
}

func postForm(srv http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t, &memoryStore{})

	rec := get(srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "安心") {
		t.Errorf("Expected the first candidate on the page, got %q", body)
	}
	if !strings.Contains(body, "none yet") {
		t.Errorf("Expected an empty accepted list, got %q", body)
	}

	if rec := get(srv, "/static/style.css"); rec.Code != http.StatusOK {
		t.Errorf("Expected the stylesheet to be served, got %d", rec.Code)
	}
	if rec := get(srv, "/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown path, got %d", rec.Code)
	}
}

func TestDecide(t *testing.T) {
	store := &memoryStore{}
	srv := newTestServer(t, store)

	t.Run("accept the offered pair", func(t *testing.T) {
		rec := postForm(srv, "/decide", url.Values{"outcome": {"accept"}, "pair": {"安心"}})
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := rec.Body.String()
		if !strings.Contains(body, `hx-swap-oob="true"`) || !strings.Contains(body, "<li>安心</li>") {
			t.Errorf("Expected the accepted list to be refreshed, got %q", body)
		}
	})

	t.Run("stale pair is rejected", func(t *testing.T) {
		rec := postForm(srv, "/decide", url.Values{"outcome": {"refuse"}, "pair": {"安心"}})
		if rec.Code != http.StatusConflict {
			t.Errorf("Expected 409 for a stale pair, got %d", rec.Code)
		}
		if stats := get(srv, "/stats").Body.String(); !strings.Contains(stats, `"accepted":1,"refused":0`) {
			t.Errorf("Expected the stale refusal to leave the counts alone, got %s", stats)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		if rec := postForm(srv, "/decide", url.Values{"outcome": {"maybe"}}); rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for an invalid outcome, got %d", rec.Code)
		}
		if rec := postForm(srv, "/decide", url.Values{"outcome": {"accept"}, "pair": {"安"}}); rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for an invalid pair, got %d", rec.Code)
		}
		if rec := get(srv, "/decide"); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for GET /decide, got %d", rec.Code)
		}
	})

	t.Run("save writes the history", func(t *testing.T) {
		rec := postForm(srv, "/save", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if store.saves != 1 || len(store.history.Accepted) != 1 {
			t.Errorf("Expected one save with one accepted pair, got %d saves and %+v", store.saves, store.history)
		}
	})

	t.Run("stats", func(t *testing.T) {
		rec := get(srv, "/stats")
		var stats session.Stats
		if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
			t.Fatalf("Expected JSON stats: %v", err)
		}
		if stats.Accepted != 1 || stats.Remaining != 3 || stats.Unsaved != 0 {
			t.Errorf("Unexpected stats %+v", stats)
		}
	})
}

func TestDecideUntilEmpty(t *testing.T) {
	srv := newTestServer(t, &memoryStore{})

	for i := 0; i < 4; i++ {
		if rec := postForm(srv, "/decide", url.Values{"outcome": {"refuse"}}); rec.Code != http.StatusOK {
			t.Fatalf("Step %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec := get(srv, "/candidate")
	if !strings.Contains(rec.Body.String(), "nothing left to review") {
		t.Errorf("Expected the empty message, got %q", rec.Body.String())
	}
	if rec := postForm(srv, "/decide", url.Values{"outcome": {"refuse"}}); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 when nothing is offered, got %d", rec.Code)
	}
	rec = postForm(srv, "/decide", url.Values{"outcome": {"accept"}, "pair": {"心心"}})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for a guarded decision when nothing is offered, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "nothing left to review") {
		t.Error("Expected an error response instead of the rendered candidate")
	}
}
