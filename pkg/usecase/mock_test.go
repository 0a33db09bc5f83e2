package usecase_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/relpin/pkg/domain/model"
)

type commitCall struct {
	Owner string
	Repo  string
	Ref   string
}

type mockGitHubClient struct {
	ListIssueCommentsFunc func(ctx context.Context, owner, repo string, number int) ([]string, error)
	GetCommitSHAFunc      func(ctx context.Context, owner, repo, ref string) (string, error)

	commitCalls []commitCall
}

func (m *mockGitHubClient) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]string, error) {
	if m.ListIssueCommentsFunc != nil {
		return m.ListIssueCommentsFunc(ctx, owner, repo, number)
	}
	return nil, nil
}

func (m *mockGitHubClient) GetCommitSHA(ctx context.Context, owner, repo, ref string) (string, error) {
	m.commitCalls = append(m.commitCalls, commitCall{Owner: owner, Repo: repo, Ref: ref})
	if m.GetCommitSHAFunc != nil {
		return m.GetCommitSHAFunc(ctx, owner, repo, ref)
	}
	return "", nil
}

type mockTracker struct {
	CollectFunc func(ctx context.Context, trackerURL string) (*model.Release, error)
}

func (m *mockTracker) Collect(ctx context.Context, trackerURL string) (*model.Release, error) {
	return m.CollectFunc(ctx, trackerURL)
}

type mockManifest struct {
	ApplyFunc func(ctx context.Context, path string, exports model.Exports) (*model.SyncResult, error)

	exports []model.Exports
}

func (m *mockManifest) Apply(ctx context.Context, path string, exports model.Exports) (*model.SyncResult, error) {
	m.exports = append(m.exports, exports)
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, path, exports)
	}
	return &model.SyncResult{}, nil
}

type syncCall struct {
	TrackerURL   string
	ManifestPath string
}

type mockSync struct {
	SyncFunc func(ctx context.Context, trackerURL, manifestPath string) (*model.SyncResult, error)

	mu    sync.Mutex
	calls []syncCall
}

func (m *mockSync) Sync(ctx context.Context, trackerURL, manifestPath string) (*model.SyncResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, syncCall{TrackerURL: trackerURL, ManifestPath: manifestPath})
	m.mu.Unlock()
	if m.SyncFunc != nil {
		return m.SyncFunc(ctx, trackerURL, manifestPath)
	}
	return &model.SyncResult{}, nil
}

type mockNotifier struct {
	NotifyFunc func(ctx context.Context, result *model.SyncResult) error

	results []*model.SyncResult
}

func (m *mockNotifier) Notify(ctx context.Context, result *model.SyncResult) error {
	m.results = append(m.results, result)
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, result)
	}
	return nil
}
