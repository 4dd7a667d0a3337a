package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var widget = schema.RepoRef{Owner: "octo", Name: "widget"}

const readmeText = "# Widget\n\n## Install\n\nRun `make build`.\n"

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

// fakeGitHub serves a small repository. Handlers registered later override the defaults.
func fakeGitHub(t *testing.T, overrides map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	handlers := map[string]http.HandlerFunc{
		"/repos/octo/widget": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"name":              "widget",
				"owner":             map[string]any{"login": "octo"},
				"description":       "A small widget",
				"default_branch":    "main",
				"size":              42,
				"stargazers_count":  7,
				"forks_count":       2,
				"open_issues_count": 1,
			})
		},
		"/repos/octo/widget/languages": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]int64{"Go": 9000, "Shell": 1000})
		},
		"/repos/octo/widget/commits": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, []map[string]any{
				{"sha": "b", "commit": map[string]any{"author": map[string]any{"date": "2024-03-15T10:00:00Z"}}},
				{"sha": "a", "commit": map[string]any{"author": map[string]any{"date": "2024-03-01T10:00:00Z"}}},
			})
		},
		"/repos/octo/widget/git/trees/main": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"sha": "abc",
				"tree": []map[string]any{
					{"path": "cmd", "type": "tree"},
					{"path": "cmd/main.go", "type": "blob"},
					{"path": "vendor/lib", "type": "commit"},
				},
				"truncated": false,
			})
		},
		"/repos/octo/widget/readme": func(w http.ResponseWriter, _ *http.Request) {
			encoded := base64.StdEncoding.EncodeToString([]byte(readmeText))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"content":  encoded[:10] + "\n" + encoded[10:],
				"encoding": "base64",
			})
		},
	}
	for path, h := range overrides {
		handlers[path] = h
	}

	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(server *httptest.Server) *Client {
	return NewClient(server.URL+"/", "secret", WithHTTPClient(server.Client()), WithRetry(3, time.Millisecond))
}

func TestFetchRepository(t *testing.T) {
	var perPage, auth, accept atomic.Value
	server := fakeGitHub(t, map[string]http.HandlerFunc{
		"/repos/octo/widget/commits": func(w http.ResponseWriter, r *http.Request) {
			perPage.Store(r.URL.Query().Get("per_page"))
			auth.Store(r.Header.Get("Authorization"))
			accept.Store(r.Header.Get("Accept"))
			writeJSON(t, w, http.StatusOK, []map[string]any{
				{"sha": "b", "commit": map[string]any{"author": map[string]any{"date": "2024-03-15T10:00:00Z"}}},
			})
		},
	})

	raw, err := newTestClient(server).FetchRepository(context.Background(), widget, 30)
	require.NoError(t, err)

	assert.Equal(t, "30", perPage.Load())
	assert.Equal(t, "token secret", auth.Load())
	assert.Equal(t, "application/vnd.github.v3+json", accept.Load())

	assert.Equal(t, schema.RepoMetadata{
		Name:          "widget",
		Owner:         "octo",
		Description:   "A small widget",
		DefaultBranch: "main",
		Size:          42,
		Stars:         7,
		Forks:         2,
		OpenIssues:    1,
	}, raw.Metadata)
	assert.Equal(t, map[string]int64{"Go": 9000, "Shell": 1000}, raw.Languages)
	require.Len(t, raw.Commits, 1)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), raw.Commits[0].AuthorDate.UTC())
	assert.Equal(t, []schema.TreeEntry{
		{Path: "cmd", Kind: schema.DirectoryEntry},
		{Path: "cmd/main.go", Kind: schema.FileEntry},
	}, raw.FileTree)
	assert.Equal(t, readmeText, raw.Readme)
}

func TestFetchRepositoryClampsCommitLimit(t *testing.T) {
	var perPage atomic.Value
	server := fakeGitHub(t, map[string]http.HandlerFunc{
		"/repos/octo/widget/commits": func(w http.ResponseWriter, r *http.Request) {
			perPage.Store(r.URL.Query().Get("per_page"))
			writeJSON(t, w, http.StatusOK, []any{})
		},
	})

	_, err := newTestClient(server).FetchRepository(context.Background(), widget, 500)
	require.NoError(t, err)
	assert.Equal(t, "100", perPage.Load())
}

func TestFetchRepositoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		handler  http.HandlerFunc
		expected error
		attempts int32
	}{
		{
			name: "not found",
			path: "/repos/octo/widget",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expected: contract.ErrRepositoryNotFound,
			attempts: 1,
		},
		{
			name: "primary rate limit",
			path: "/repos/octo/widget/languages",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.WriteHeader(http.StatusForbidden)
			},
			expected: contract.ErrRateLimited,
			attempts: 1,
		},
		{
			name: "secondary rate limit is retried",
			path: "/repos/octo/widget/commits",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			expected: contract.ErrRateLimited,
			attempts: 3,
		},
		{
			name: "forbidden without rate limit",
			path: "/repos/octo/widget",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "42")
				w.WriteHeader(http.StatusForbidden)
			},
			expected: contract.ErrTransport,
			attempts: 1,
		},
		{
			name: "server error is retried",
			path: "/repos/octo/widget/git/trees/main",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			expected: contract.ErrTransport,
			attempts: 3,
		},
		{
			name: "malformed body",
			path: "/repos/octo/widget",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("{oops"))
			},
			expected: contract.ErrTransport,
			attempts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := fakeGitHub(t, map[string]http.HandlerFunc{
				tt.path: func(w http.ResponseWriter, r *http.Request) {
					hits.Add(1)
					tt.handler(w, r)
				},
			})

			raw, err := newTestClient(server).FetchRepository(context.Background(), widget, 10)
			assert.Nil(t, raw)
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, tt.attempts, hits.Load())
		})
	}
}

func TestFetchRepositoryRecoversFromTransientFailure(t *testing.T) {
	var hits atomic.Int32
	server := fakeGitHub(t, map[string]http.HandlerFunc{
		"/repos/octo/widget/languages": func(w http.ResponseWriter, _ *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			writeJSON(t, w, http.StatusOK, map[string]int64{"Go": 1})
		},
	})

	raw, err := newTestClient(server).FetchRepository(context.Background(), widget, 10)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Go": 1}, raw.Languages)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchRepositoryWithoutReadme(t *testing.T) {
	server := fakeGitHub(t, map[string]http.HandlerFunc{
		"/repos/octo/widget/readme": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		},
	})

	raw, err := newTestClient(server).FetchRepository(context.Background(), widget, 10)
	require.NoError(t, err)
	assert.Empty(t, raw.Readme)
	assert.NotEmpty(t, raw.FileTree)
}

func TestFetchRepositoryUndecodableReadme(t *testing.T) {
	server := fakeGitHub(t, map[string]http.HandlerFunc{
		"/repos/octo/widget/readme": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]string{"content": "!!!", "encoding": "base64"})
		},
	})

	raw, err := newTestClient(server).FetchRepository(context.Background(), widget, 10)
	require.NoError(t, err)
	assert.Empty(t, raw.Readme)
}

func TestFetchRepositoryEmptyRepository(t *testing.T) {
	conflict := func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"message": "Git Repository is empty."})
	}
	server := fakeGitHub(t, map[string]http.HandlerFunc{
		"/repos/octo/widget/languages": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]int64{})
		},
		"/repos/octo/widget/commits":        conflict,
		"/repos/octo/widget/git/trees/main": conflict,
		"/repos/octo/widget/readme": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	})

	raw, err := newTestClient(server).FetchRepository(context.Background(), widget, 10)
	require.NoError(t, err)
	assert.Empty(t, raw.Commits)
	assert.Empty(t, raw.FileTree)
	assert.Empty(t, raw.Readme)
	assert.NotNil(t, raw.Languages)
}

func TestFetchRepositoryInvalidReference(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "")
	_, err := client.FetchRepository(context.Background(), schema.RepoRef{Owner: "octo"}, 10)
	assert.ErrorIs(t, err, contract.ErrInvalidReference)
}

func TestFetchRepositoryCancelled(t *testing.T) {
	server := fakeGitHub(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server).FetchRepository(ctx, widget, 10)
	assert.Error(t, err)
}

func TestToEntries(t *testing.T) {
	entries := toEntries([]treeNode{
		{Path: "a.go", Type: "blob"},
		{Path: "pkg", Type: "tree"},
		{Path: "third_party/mod", Type: "commit"},
	})
	assert.Equal(t, []schema.TreeEntry{
		{Path: "a.go", Kind: schema.FileEntry},
		{Path: "pkg", Kind: schema.DirectoryEntry},
	}, entries)
}

func TestReadmeDecode(t *testing.T) {
	text, err := readmeResponse{Content: "aGVs\nbG8=\n", Encoding: "base64"}.decode()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = readmeResponse{Content: "hello", Encoding: "utf-8"}.decode()
	assert.Error(t, err)
}

func TestRepoPath(t *testing.T) {
	assert.Equal(t, "/repos/octo/widget", repoPath("octo", "widget"))
	assert.Equal(t, "/repos/octo/widget/languages", repoPath("octo", "widget", "/languages"))
	assert.Equal(t, "/repos/octo/my%20repo", repoPath("octo", "my repo"))
}
