package subscriptions

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/subtrackhq/subtrack-backend/pkg/errors"
	"github.com/subtrackhq/subtrack-backend/pkg/logger"
)

// Service exposes the subscription lifecycle to the HTTP surface.
type Service interface {
	List(ctx context.Context, pageSize int) ([]Subscription, error)
	Create(ctx context.Context, in Input) (Subscription, error)
	Update(ctx context.Context, id string, in Input) (Subscription, error)
	Archive(ctx context.Context, id string) error
}

// ServiceParams groups dependencies for the subscription service.
type ServiceParams struct {
	Store           Store
	Logger          *logger.Logger
	DefaultPageSize int
}

type service struct {
	store    Store
	logg     *logger.Logger
	pageSize int
}

// NewService builds a subscription service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	pageSize := params.DefaultPageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &service{
		store:    params.Store,
		logg:     params.Logger,
		pageSize: pageSize,
	}, nil
}

// List fetches one page of records and decodes them in arrival order.
// Decode diagnostics are logged, never surfaced as errors.
func (s *service) List(ctx context.Context, pageSize int) ([]Subscription, error) {
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	session := NewListSession(s.store, pageSize)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}
	for _, diag := range session.Diagnostics() {
		s.logg.Warn(s.logg.WithField(ctx, "diagnostic", diag), "degraded property shape")
	}
	return session.Rows(), nil
}

// Create validates and stores a new record. An omitted start date gets
// the trial default before validation runs.
func (s *service) Create(ctx context.Context, in Input) (Subscription, error) {
	if in.StartDate == nil {
		start := DefaultStartDate(time.Now())
		in.StartDate = &start
	}
	form := NewForm(s.store)
	if err := form.SetValues(in); err != nil {
		return Subscription{}, err
	}
	return form.Submit(ctx)
}

// Update validates and patches an existing record. The returned value is
// the patched in-memory record, not a re-fetch.
func (s *service) Update(ctx context.Context, id string, in Input) (Subscription, error) {
	if strings.TrimSpace(id) == "" {
		return Subscription{}, pkgerrors.New(pkgerrors.CodeValidation, "subscription id is required")
	}
	form := NewEditForm(s.store, Subscription{ID: id})
	if err := form.SetValues(in); err != nil {
		return Subscription{}, err
	}
	return form.Submit(ctx)
}

// Archive flags the record as archived on the remote store. The caller
// removes the row from its own in-memory copy.
func (s *service) Archive(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "subscription id is required")
	}
	_, err := s.store.ArchivePage(ctx, id)
	return err
}
