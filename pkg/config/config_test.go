package config_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethmlarson/trytravis/pkg/config"
)

func TestSlug(t *testing.T) {
	testcases := []struct {
		url  string
		slug string
	}{
		{"https://github.com/alice/trytravis-sandbox", "alice/trytravis-sandbox"},
		{"https://www.github.com/alice/trytravis-sandbox", "alice/trytravis-sandbox"},
		{"ssh://git@github.com/alice/trytravis-sandbox", "alice/trytravis-sandbox"},
	}
	for _, tc := range testcases {
		slug, err := config.Slug(tc.url)
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.slug, slug)
	}

	for _, bad := range []string{
		"git@github.com:alice/trytravis-sandbox",
		"https://gitlab.com/alice/trytravis-sandbox",
		"https://github.com/alice/trytravis-sandbox/extra",
		"not a url",
	} {
		_, err := config.Slug(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateRepoURL(t *testing.T) {
	assert.NoError(t, config.ValidateRepoURL("https://github.com/alice/trytravis-sandbox"))
	assert.NoError(t, config.ValidateRepoURL("ssh://git@github.com/alice/my-trytravis"))

	// Well-formed URL, but missing the safety marker in the name.
	err := config.ValidateRepoURL("https://github.com/alice/production-app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trytravis")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test overrides $HOME")
	}
	t.Setenv("HOME", t.TempDir())

	_, err := config.LoadRepo()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trytravis repo")

	require.NoError(t, config.SaveRepo("https://github.com/alice/trytravis-sandbox"))
	require.NoError(t, config.SaveToken("s3cr3t"))

	url, err := config.LoadRepo()
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/alice/trytravis-sandbox", url)

	token, err := config.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", token)
}

func TestLoadRefusesInsideTravis(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test overrides $HOME")
	}
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, config.SaveRepo("https://github.com/alice/trytravis-sandbox"))

	t.Setenv("TRAVIS", "true")
	_, err := config.LoadRepo()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infinite loops")
}
