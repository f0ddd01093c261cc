package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"https url", "https://github.com/example/repro-demo", "example", "repro-demo", false},
		{"https url with .git", "https://github.com/example/repro-demo.git", "example", "repro-demo", false},
		{"https url with trailing slash", "https://github.com/example/repro-demo/", "example", "repro-demo", false},
		{"http url", "http://github.com/example/repro-demo", "example", "repro-demo", false},
		{"ssh url", "git@github.com:example/repro-demo.git", "example", "repro-demo", false},
		{"bare slug", "example/repro-demo", "example", "repro-demo", false},
		{"dotted names", "my.org/my.repo-v2", "my.org", "my.repo-v2", false},
		{"missing repo", "https://github.com/example", "", "", true},
		{"extra path", "https://github.com/example/repo/tree/main", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, owner)
			assert.Equal(t, tc.wantRepo, repo)
		})
	}
}
