package provision_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethmlarson/trytravis/pkg/provision"
)

func TestPipelineCells(t *testing.T) {
	cells := provision.DefaultPipeline().Cells()
	require.Len(t, cells, 10)

	var linux, osx, allowed []string
	for _, cell := range cells {
		switch cell.OS {
		case "linux":
			linux = append(linux, cell.ToxEnv)
		case "osx":
			osx = append(osx, cell.ToxEnv)
		}
		if cell.AllowFailure {
			allowed = append(allowed, cell.ToxEnv)
		}
	}
	assert.Equal(t, []string{"lint", "packaging", "py35", "py36", "py37", "py38", "py39"}, linux)
	assert.Equal(t, []string{"py35", "py36", "py37"}, osx)

	// Only the nightly interpreter is allowed to fail.
	assert.Equal(t, []string{"py39"}, allowed)
}

func TestPipelineOSXCellsAreGeneric(t *testing.T) {
	for _, entry := range provision.DefaultPipeline().Matrix.Include {
		if entry.OS == "osx" {
			assert.Equal(t, "generic", entry.Language, "osx cell %q", entry.Env)
			assert.Empty(t, entry.Python, "osx cell %q", entry.Env)
		}
	}
}

func TestPipelineRenderYAML(t *testing.T) {
	rendered, err := provision.DefaultPipeline().RenderYAML()
	require.NoError(t, err)
	config := string(rendered)

	assert.True(t, strings.HasPrefix(config, "language: python\n"))
	for _, want := range []string{
		"env: TOXENV=lint",
		"python: nightly",
		"allow_failures:",
		"script:\n- tox",
		"after_success:",
		"codecov -e TRAVIS_OS_NAME,TOXENV",
		"pip: true",
		"- $HOME/.cache",
		"branches:\n  only:\n  - master",
	} {
		assert.Contains(t, config, want)
	}
}
