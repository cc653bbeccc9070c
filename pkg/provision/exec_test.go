package provision_test

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethmlarson/trytravis/pkg/provision"
	"github.com/sethmlarson/trytravis/pkg/testutil"
)

func TestExitCodePropagatesCommandStatus(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
	// A real ExitError, exactly as a failing step would surface it.
	cmdErr := exec.Command("sh", "-c", "exit 42").Run()
	require.Error(t, cmdErr)

	plan := provision.SelectPlan("linux", "py36", provision.DefaultPins())
	runner := &testutil.CommandRecorder{
		Fail: func(cmd provision.Command) error {
			if cmd.Argv[len(cmd.Argv)-1] == "virtualenv" {
				return cmdErr
			}
			return nil
		},
	}
	ctx := dlog.NewTestContext(t, false)
	err := plan.Apply(ctx, provision.NewEnv(runner, &testutil.FetchRecorder{}, testHome))
	require.Error(t, err)
	assert.Equal(t, 42, provision.ExitCode(err))
}

func TestExitCodeNonCommandErrors(t *testing.T) {
	assert.Equal(t, 0, provision.ExitCode(nil))
	assert.Equal(t, 1, provision.ExitCode(errors.New("no such file")))
}
