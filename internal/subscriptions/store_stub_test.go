package subscriptions

import (
	"context"

	"github.com/subtrackhq/subtrack-backend/pkg/notion"
)

// stubStore implements Store for tests and records every call.
type stubStore struct {
	createCalls  int
	updateCalls  int
	queryCalls   int
	archiveCalls int

	lastProperties notion.Properties
	lastPageID     string

	createPage  *notion.Page
	updatePage  *notion.Page
	archivePage *notion.Page
	queryResp   *notion.QueryResponse

	createErr  error
	updateErr  error
	archiveErr error
	queryErr   error
}

func (s *stubStore) CreatePage(ctx context.Context, properties notion.Properties) (*notion.Page, error) {
	s.createCalls++
	s.lastProperties = properties
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createPage != nil {
		return s.createPage, nil
	}
	return &notion.Page{ID: "page-created", Properties: properties}, nil
}

func (s *stubStore) UpdatePage(ctx context.Context, pageID string, properties notion.Properties) (*notion.Page, error) {
	s.updateCalls++
	s.lastPageID = pageID
	s.lastProperties = properties
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updatePage != nil {
		return s.updatePage, nil
	}
	return &notion.Page{ID: pageID, Properties: properties}, nil
}

func (s *stubStore) QueryDatabase(ctx context.Context, query notion.QueryRequest) (*notion.QueryResponse, error) {
	s.queryCalls++
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if s.queryResp != nil {
		return s.queryResp, nil
	}
	return &notion.QueryResponse{}, nil
}

func (s *stubStore) ArchivePage(ctx context.Context, pageID string) (*notion.Page, error) {
	s.archiveCalls++
	s.lastPageID = pageID
	if s.archiveErr != nil {
		return nil, s.archiveErr
	}
	if s.archivePage != nil {
		return s.archivePage, nil
	}
	return &notion.Page{ID: pageID, Archived: true}, nil
}
