package contract

import (
	"context"

	"github.com/huangsam/repograde/schema"
	"github.com/stretchr/testify/mock"
)

// MockRepoFetcher is a mock implementation of RepoFetcher for testing.
type MockRepoFetcher struct {
	mock.Mock
}

var _ RepoFetcher = &MockRepoFetcher{} // Compile-time check

// FetchRepository implements the RepoFetcher interface.
func (m *MockRepoFetcher) FetchRepository(ctx context.Context, ref schema.RepoRef, commitLimit int) (*schema.RawRepositoryData, error) {
	args := m.Called(ctx, ref, commitLimit)
	raw, _ := args.Get(0).(*schema.RawRepositoryData)
	return raw, args.Error(1)
}
