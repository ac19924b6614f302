package subscriptions

import (
	"context"

	"github.com/subtrackhq/subtrack-backend/pkg/notion"
)

// Store is the remote collection surface the domain depends on. The
// concrete implementation is pkg/notion.Client; tests substitute a stub.
type Store interface {
	CreatePage(ctx context.Context, properties notion.Properties) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, properties notion.Properties) (*notion.Page, error)
	QueryDatabase(ctx context.Context, query notion.QueryRequest) (*notion.QueryResponse, error)
	ArchivePage(ctx context.Context, pageID string) (*notion.Page, error)
}
