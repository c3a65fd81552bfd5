package tui

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc  func(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.RankedResult, error)
	SuggestFunc func(ctx context.Context, partial string) ([]domain.Suggestion, error)
}

func (m *MockSearchService) Search(
	ctx context.Context,
	query string,
	filters domain.SearchFilters,
) ([]domain.RankedResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, filters)
	}
	return []domain.RankedResult{}, nil
}

func (m *MockSearchService) RebuildAll(_ context.Context) error {
	return nil
}

func (m *MockSearchService) Upsert(_ context.Context, _ domain.ContentRecord) error {
	return nil
}

func (m *MockSearchService) Remove(_ context.Context, _ string) error {
	return nil
}

func (m *MockSearchService) Suggest(ctx context.Context, partial string) ([]domain.Suggestion, error) {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, partial)
	}
	return nil, nil
}

// MockContentStore implements driven.ContentStore for testing.
type MockContentStore struct {
	GetFunc func(ctx context.Context, id string) (*domain.ContentRecord, error)
}

func (m *MockContentStore) Save(_ context.Context, _ *domain.ContentRecord) error {
	return nil
}

func (m *MockContentStore) Get(ctx context.Context, id string) (*domain.ContentRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.ContentRecord{ID: id}, nil
}

func (m *MockContentStore) List(_ context.Context) ([]domain.ContentRecord, error) {
	return nil, nil
}

func (m *MockContentStore) Delete(_ context.Context, _ string) error {
	return nil
}
