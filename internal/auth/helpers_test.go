package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"golang.org/x/oauth2"
)

// memStore is an in-memory Store that counts reads and writes
type memStore struct {
	files    map[string][]byte
	reads    int
	writes   int
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (s *memStore) Read(path string) ([]byte, error) {
	s.reads++
	if b, ok := s.files[path]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
}

func (s *memStore) Write(path string, data []byte) error {
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.files[path] = data
	return nil
}

// countingPrompter returns a fixed code and records how often it was asked
type countingPrompter struct {
	code  string
	err   error
	calls int
	url   string
}

func (p *countingPrompter) Prompt(ctx context.Context, authURL string) (string, error) {
	p.calls++
	p.url = authURL
	return p.code, p.err
}

// tokenServer is a fake OAuth2 token endpoint that accepts a single code
type tokenServer struct {
	*httptest.Server
	calls int32
}

func newTokenServer(t *testing.T, validCode string) *tokenServer {
	t.Helper()

	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ts.calls, 1)

		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if r.PostForm.Get("code") != validCode {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error": "invalid_grant"}`)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "fresh-access",
			"refresh_token": "fresh-refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(ts.Close)

	return ts
}

// endpoint returns an OAuth2 endpoint pointing at the fake server. The auth
// style is fixed so a rejected code is posted exactly once.
func (ts *tokenServer) endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   "https://accounts.example.com/auth",
		TokenURL:  ts.URL,
		AuthStyle: oauth2.AuthStyleInParams,
	}
}
