package provision_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethmlarson/trytravis/pkg/provision"
)

func TestLoadPins(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "pins.yml")
	require.NoError(t, os.WriteFile(filename, []byte("py36: 3.6.12\n"), 0644))

	pins, err := provision.LoadPins(filename)
	require.NoError(t, err)
	// Overrides merge over the defaults.
	assert.Equal(t, "3.6.12", pins.Py36)
	assert.Equal(t, "3.5.9", pins.Py35)
}

func TestLoadPinsRejectsUnknownKeys(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "pins.yml")
	require.NoError(t, os.WriteFile(filename, []byte("py36: 3.6.12\npy310: 3.10.0\n"), 0644))

	_, err := provision.LoadPins(filename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "py310")
}
