package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/repro-warden/internal/core"
)

const jsonSnapshot = `{
  "repo_url": "https://github.com/example/repro-demo",
  "branch": "main",
  "commit_sha": "abc1234",
  "has_license": true,
  "license_name": "MIT",
  "has_readme": true,
  "readme_type": "markdown",
  "has_issues": true,
  "has_zenodo_badge": true,
  "has_installation_section": true,
  "has_packaging_config": true,
  "packaging_score": 10,
  "is_style_conformant": true
}`

const yamlSnapshot = `repo_url: https://github.com/example/repro-demo
branch: main
commit_sha: abc1234
has_license: true
license_name: MIT
has_readme: true
readme_type: markdown
has_issues: true
has_zenodo_badge: true
has_installation_section: true
has_packaging_config: true
packaging_score: 10
is_style_conformant: true
`

func TestParse_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Parse([]byte(jsonSnapshot), ".json")
	require.NoError(t, err)
	fromYAML, err := Parse([]byte(yamlSnapshot), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, "https://github.com/example/repro-demo", fromJSON.RepoURL)
	assert.Equal(t, core.ReadmeMarkdown, fromJSON.ReadmeType)
	assert.Equal(t, 10, fromJSON.PackagingScore)
}

func TestParse_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data string
		ext  string
	}{
		{"unsupported extension", jsonSnapshot, ".toml"},
		{"malformed json", `{"repo_url": `, ".json"},
		{"malformed yaml", "repo_url: [", ".yml"},
		{"missing commit", `{"repo_url": "https://github.com/example/x", "readme_type": "none"}`, ".json"},
		{"readme type mismatch", `{"repo_url": "https://github.com/example/x", "commit_sha": "abc", "has_readme": true, "readme_type": "none"}`, ".json"},
		{"score out of range", `{"repo_url": "https://github.com/example/x", "commit_sha": "abc", "readme_type": "none", "packaging_score": 11}`, ".json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.ext)
			assert.Error(t, err)
		})
	}
}

func TestParse_UnsupportedFormatSentinel(t *testing.T) {
	_, err := Parse([]byte(jsonSnapshot), ".toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_ReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSnapshot), 0o644))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc1234", snap.CommitSHA)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestIsSnapshotFile(t *testing.T) {
	assert.True(t, IsSnapshotFile("repo.json"))
	assert.True(t, IsSnapshotFile("repo.YAML"))
	assert.True(t, IsSnapshotFile("repo.yml"))
	assert.False(t, IsSnapshotFile("repo.md"))
	assert.False(t, IsSnapshotFile("repo"))
}
