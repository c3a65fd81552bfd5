package mcp

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// mockAnalyzerService is a mock implementation of driving.AnalyzerService.
type mockAnalyzerService struct {
	analysis *domain.AnalysisResult
	err      error
}

func (m *mockAnalyzerService) Analyze(_ context.Context, _ domain.ContentRecord) (*domain.AnalysisResult, error) {
	return m.analysis, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results     []domain.RankedResult
	suggestions []domain.Suggestion
	err         error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ domain.SearchFilters) ([]domain.RankedResult, error) {
	return m.results, m.err
}

func (m *mockSearchService) RebuildAll(_ context.Context) error {
	return m.err
}

func (m *mockSearchService) Upsert(_ context.Context, _ domain.ContentRecord) error {
	return m.err
}

func (m *mockSearchService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSearchService) Suggest(_ context.Context, _ string) ([]domain.Suggestion, error) {
	return m.suggestions, m.err
}

// mockTaskService is a mock implementation of driving.TaskService.
type mockTaskService struct {
	tasks []domain.GeneratedTask
	err   error
}

func (m *mockTaskService) Generate(_ context.Context, _ domain.ContentRecord, _ *domain.AnalysisResult) ([]domain.GeneratedTask, error) {
	return m.tasks, m.err
}

// mockGraphService is a mock implementation of driving.GraphService.
type mockGraphService struct {
	structure *domain.GraphStructure
	clusters  []domain.Cluster
	related   []string
	err       error
}

func (m *mockGraphService) InsertBatch(_ context.Context, _ []domain.ContentRecord) (*domain.GraphStructure, error) {
	return m.structure, m.err
}

func (m *mockGraphService) Centrality(_ context.Context, _ string) (float64, error) {
	return 0, m.err
}

func (m *mockGraphService) Clusters(_ context.Context) ([]domain.Cluster, error) {
	return m.clusters, m.err
}

func (m *mockGraphService) RelatedNodes(_ context.Context, _ string, _ int) ([]string, error) {
	return m.related, m.err
}

func (m *mockGraphService) Structure(_ context.Context) (*domain.GraphStructure, error) {
	return m.structure, m.err
}

// mockContentStore is a mock implementation of driven.ContentStore.
type mockContentStore struct {
	records []domain.ContentRecord
	record  *domain.ContentRecord
	err     error
}

func (m *mockContentStore) Save(_ context.Context, _ *domain.ContentRecord) error {
	return m.err
}

func (m *mockContentStore) Get(_ context.Context, _ string) (*domain.ContentRecord, error) {
	return m.record, m.err
}

func (m *mockContentStore) List(_ context.Context) ([]domain.ContentRecord, error) {
	return m.records, m.err
}

func (m *mockContentStore) Delete(_ context.Context, _ string) error {
	return m.err
}
