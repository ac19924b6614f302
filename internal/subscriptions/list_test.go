package subscriptions

import (
	"context"
	"encoding/json"
	"testing"

	pkgerrors "github.com/subtrackhq/subtrack-backend/pkg/errors"
	"github.com/subtrackhq/subtrack-backend/pkg/notion"
)

func queryResponse(names ...string) *notion.QueryResponse {
	resp := &notion.QueryResponse{}
	for i, name := range names {
		resp.Results = append(resp.Results, notion.Page{
			ID: "page-" + string(rune('a'+i)),
			Properties: notion.Properties{
				Subscription: notion.NewTitle(name),
				Price:        notion.NewNumber(9.99),
				Status:       notion.NewSelect("Active"),
			},
		})
	}
	return resp
}

func TestLoadKeepsArrivalOrder(t *testing.T) {
	store := &stubStore{queryResp: queryResponse("Netflix", "Spotify", "iCloud")}
	session := NewListSession(store, 100)

	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if session.State() != ListLoaded {
		t.Fatalf("expected loaded state, got %s", session.State())
	}

	rows := session.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"Netflix", "Spotify", "iCloud"} {
		if rows[i].Name != want {
			t.Fatalf("row %d: expected %q, got %q", i, want, rows[i].Name)
		}
	}
}

func TestLoadErrorState(t *testing.T) {
	store := &stubStore{queryErr: pkgerrors.New(pkgerrors.CodeDependency, "query failed")}
	session := NewListSession(store, 0)

	if err := session.Load(context.Background()); err == nil {
		t.Fatal("expected a load error")
	}
	if session.State() != ListError {
		t.Fatalf("expected error state, got %s", session.State())
	}

	// A later load can recover.
	store.queryErr = nil
	store.queryResp = queryResponse("Netflix")
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if session.State() != ListLoaded || len(session.Rows()) != 1 {
		t.Fatal("expected the session to recover from an error")
	}
}

func TestLoadWhileInFlightIsRejected(t *testing.T) {
	block := make(chan struct{})
	release := make(chan struct{})
	store := &blockingQueryStore{stub: &stubStore{queryResp: queryResponse("Netflix")}, entered: block, release: release}
	session := NewListSession(store, 0)

	done := make(chan error, 1)
	go func() { done <- session.Load(context.Background()) }()

	<-block
	if err := session.Load(context.Background()); err != ErrLoadInFlight {
		t.Fatalf("expected ErrLoadInFlight, got %v", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("first load should succeed: %v", err)
	}
}

func TestReplacePatchesWithoutRequery(t *testing.T) {
	store := &stubStore{queryResp: queryResponse("Netflix", "Spotify")}
	session := NewListSession(store, 0)
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	edited := session.Rows()[1]
	edited.Name = "Spotify Family"
	if !session.Replace(edited.ID, edited) {
		t.Fatal("expected the row to be replaced")
	}
	if session.Replace("no-such-id", edited) {
		t.Fatal("replacing an unknown id must report false")
	}

	rows := session.Rows()
	if rows[1].Name != "Spotify Family" {
		t.Fatalf("expected patched row, got %q", rows[1].Name)
	}
	if store.queryCalls != 1 {
		t.Fatalf("Replace must not re-query, saw %d queries", store.queryCalls)
	}
}

func TestRemoveDropsRowWithoutRequery(t *testing.T) {
	store := &stubStore{queryResp: queryResponse("Netflix", "Spotify", "iCloud")}
	session := NewListSession(store, 0)
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	target := session.Rows()[1].ID
	if !session.Remove(target) {
		t.Fatal("expected the row to be removed")
	}
	if session.Remove(target) {
		t.Fatal("removing an already-removed id must report false")
	}

	rows := session.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after removal, got %d", len(rows))
	}
	if rows[0].Name != "Netflix" || rows[1].Name != "iCloud" {
		t.Fatalf("remaining rows out of order: %q, %q", rows[0].Name, rows[1].Name)
	}
	if store.queryCalls != 1 {
		t.Fatalf("Remove must not re-query, saw %d queries", store.queryCalls)
	}
}

func TestLoadCollectsDecodeDiagnostics(t *testing.T) {
	raw := []byte(`{
		"id": "page-x",
		"properties": {
			"Subscription": "Netflix",
			"Price": 15.49
		}
	}`)
	var page notion.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}

	store := &stubStore{queryResp: &notion.QueryResponse{Results: []notion.Page{page}}}
	session := NewListSession(store, 0)
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(session.Rows()) != 1 {
		t.Fatal("degraded records must still produce a row")
	}
	if len(session.Diagnostics()) == 0 {
		t.Fatal("expected diagnostics for degraded property shapes")
	}
}

type blockingQueryStore struct {
	stub    *stubStore
	entered chan struct{}
	release chan struct{}
}

func (b *blockingQueryStore) CreatePage(ctx context.Context, properties notion.Properties) (*notion.Page, error) {
	return b.stub.CreatePage(ctx, properties)
}

func (b *blockingQueryStore) UpdatePage(ctx context.Context, pageID string, properties notion.Properties) (*notion.Page, error) {
	return b.stub.UpdatePage(ctx, pageID, properties)
}

func (b *blockingQueryStore) QueryDatabase(ctx context.Context, query notion.QueryRequest) (*notion.QueryResponse, error) {
	close(b.entered)
	<-b.release
	return b.stub.QueryDatabase(ctx, query)
}

func (b *blockingQueryStore) ArchivePage(ctx context.Context, pageID string) (*notion.Page, error) {
	return b.stub.ArchivePage(ctx, pageID)
}
