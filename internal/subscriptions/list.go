package subscriptions

import (
	"context"
	"sync"

	pkgerrors "github.com/subtrackhq/subtrack-backend/pkg/errors"
	"github.com/subtrackhq/subtrack-backend/pkg/notion"
)

// ListState tracks where a list session is in its load lifecycle.
type ListState string

const (
	ListLoading ListState = "loading"
	ListLoaded  ListState = "loaded"
	ListError   ListState = "error"
)

// ErrLoadInFlight rejects a re-load while one query is outstanding.
var ErrLoadInFlight = pkgerrors.New(pkgerrors.CodeValidation, "a load is already in progress")

// ListSession owns the in-memory copy of the collection for the lifetime
// of one list screen. Rows stay in arrival order. Row edits and removals
// patch the copy locally; the session never re-queries on their behalf.
type ListSession struct {
	mu       sync.Mutex
	state    ListState
	loading  bool
	rows     []Subscription
	diags    []string
	store    Store
	pageSize int
}

// NewListSession builds a session that fetches at most pageSize records
// per load. Zero means the remote default.
func NewListSession(store Store, pageSize int) *ListSession {
	return &ListSession{
		state:    ListLoading,
		store:    store,
		pageSize: pageSize,
	}
}

// Load issues a single query and decodes every returned record. At most
// one load is in flight per session; a concurrent call is rejected, not
// queued.
func (s *ListSession) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrLoadInFlight
	}
	s.loading = true
	s.state = ListLoading
	s.mu.Unlock()

	resp, err := s.store.QueryDatabase(ctx, notion.QueryRequest{PageSize: s.pageSize})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.state = ListError
		return err
	}

	rows := make([]Subscription, 0, len(resp.Results))
	var diags []string
	for _, page := range resp.Results {
		sub, pageDiags := DecodePage(page)
		rows = append(rows, sub)
		diags = append(diags, pageDiags...)
	}
	s.rows = rows
	s.diags = diags
	s.state = ListLoaded
	return nil
}

// State returns the current session state.
func (s *ListSession) State() ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rows returns a copy of the in-memory collection in arrival order.
func (s *ListSession) Rows() []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Subscription, len(s.rows))
	copy(out, s.rows)
	return out
}

// Diagnostics returns the decode diagnostics from the last load.
func (s *ListSession) Diagnostics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.diags))
	copy(out, s.diags)
	return out
}

// Replace patches the row with the matching id after a successful edit.
// Returns false when no row matches.
func (s *ListSession) Replace(id string, sub Subscription) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i] = sub
			return true
		}
	}
	return false
}

// Remove drops the row with the matching id after a confirmed archive.
// Returns false when no row matches.
func (s *ListSession) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true
		}
	}
	return false
}
