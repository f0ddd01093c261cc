package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() RepoSnapshot {
	return RepoSnapshot{
		RepoURL:        "https://github.com/example/repro-demo",
		Branch:         "main",
		CommitSHA:      "abc1234",
		HasReadme:      true,
		ReadmeType:     ReadmeMarkdown,
		PackagingScore: 10,
	}
}

func TestRepoSnapshot_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*RepoSnapshot)
		wantErr string
	}{
		{"valid", func(s *RepoSnapshot) {}, ""},
		{"no readme is valid", func(s *RepoSnapshot) {
			s.HasReadme = false
			s.ReadmeType = ReadmeNone
		}, ""},
		{"missing repo url", func(s *RepoSnapshot) { s.RepoURL = "" }, "repo_url"},
		{"missing commit", func(s *RepoSnapshot) { s.CommitSHA = "" }, "commit_sha"},
		{"bogus readme type", func(s *RepoSnapshot) { s.ReadmeType = "asciidoc" }, "unknown readme type"},
		{"readme without type", func(s *RepoSnapshot) { s.ReadmeType = ReadmeNone }, "claims a README"},
		{"type without readme", func(s *RepoSnapshot) { s.HasReadme = false }, "without a README"},
		{"score too high", func(s *RepoSnapshot) { s.PackagingScore = 11 }, "out of range"},
		{"score negative", func(s *RepoSnapshot) { s.PackagingScore = -1 }, "out of range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSnapshot()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseReadmeType(t *testing.T) {
	for _, raw := range []string{"markdown", "rst", "text", "none"} {
		got, err := ParseReadmeType(raw)
		require.NoError(t, err)
		assert.Equal(t, ReadmeType(raw), got)
	}

	got, err := ParseReadmeType("")
	require.NoError(t, err)
	assert.Equal(t, ReadmeNone, got)

	_, err = ParseReadmeType("org-mode")
	assert.Error(t, err)
}
