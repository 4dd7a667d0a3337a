package contract

import (
	"testing"

	"github.com/huangsam/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    schema.RepoRef
		wantErr bool
	}{
		{"plain url", "https://github.com/facebook/react", schema.RepoRef{Owner: "facebook", Name: "react"}, false},
		{"trailing slash", "https://github.com/facebook/react/", schema.RepoRef{Owner: "facebook", Name: "react"}, false},
		{"git suffix", "https://github.com/facebook/react.git", schema.RepoRef{Owner: "facebook", Name: "react"}, false},
		{"extra segments", "https://github.com/facebook/react/tree/main/packages", schema.RepoRef{Owner: "facebook", Name: "react"}, false},
		{"http scheme", "http://github.com/a/b", schema.RepoRef{Owner: "a", Name: "b"}, false},
		{"explicit port", "https://github.com:443/a/b", schema.RepoRef{Owner: "a", Name: "b"}, false},
		{"surrounding spaces", "  https://github.com/a/b  ", schema.RepoRef{Owner: "a", Name: "b"}, false},
		{"empty", "", schema.RepoRef{}, true},
		{"missing scheme", "github.com/a/b", schema.RepoRef{}, true},
		{"other host", "https://gitlab.com/a/b", schema.RepoRef{}, true},
		{"subdomain", "https://api.github.com/a/b", schema.RepoRef{}, true},
		{"owner only", "https://github.com/facebook", schema.RepoRef{}, true},
		{"only git suffix", "https://github.com/facebook/.git", schema.RepoRef{}, true},
		{"garbage", "::not a url::", schema.RepoRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepoReference(tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
