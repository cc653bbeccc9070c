package provision

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
)

// URLs that provisioning fetches from.
const (
	PyenvGitURL = "https://github.com/yyuu/pyenv.git"
	GetPipURL   = "https://bootstrap.pypa.io/get-pip.py"
)

// Plan is the ordered sequence of steps that provisions one matrix cell.
type Plan struct {
	// OS is the host OS family the plan was selected for ("darwin" or
	// anything else).
	OS string

	// RawToxEnv is the TOXENV value as given; ToxEnv is its parsed
	// interpreter-selection meaning.
	RawToxEnv string
	ToxEnv    ToxEnv

	Steps []Step
}

// SelectPlan is a pure function from (OS family, TOXENV, version pins) to
// the ordered step sequence that provisions that cell.  It performs no I/O;
// Apply does.
//
// On Darwin the interpreter comes from a user-local pyenv checkout; on every
// other OS family the pre-installed interpreter is used as-is and only
// virtualenv is installed, system-scoped.  Both branches end by installing
// tox.
func SelectPlan(osName, rawToxEnv string, pins Pins) Plan {
	plan := Plan{
		OS:        osName,
		RawToxEnv: rawToxEnv,
		ToxEnv:    ParseToxEnv(rawToxEnv),
	}

	if osName == "darwin" {
		pyenvRoot := filepath.Join("$HOME", ".pyenv")
		plan.Steps = append(plan.Steps,
			commandStep{argv: []string{"git", "clone", PyenvGitURL, pyenvRoot}},
			pathStep{dir: filepath.Join(pyenvRoot, "bin")},
			pathStep{dir: filepath.Join(pyenvRoot, "shims")},
		)

		switch plan.ToxEnv {
		case ToxEnvPy27:
			// The system 2.7 is fine; it just needs a user-scoped pip.
			plan.Steps = append(plan.Steps,
				fetchRunStep{url: GetPipURL, argv: []string{"python", "-", "--user"}},
			)
		case ToxEnvPy35, ToxEnvPy36, ToxEnvPy37, ToxEnvPy38:
			version := pins.version(plan.ToxEnv)
			plan.Steps = append(plan.Steps,
				commandStep{argv: []string{"pyenv", "install", version}},
				commandStep{argv: []string{"pyenv", "global", version}},
			)
		case ToxEnvOther:
			plan.Steps = append(plan.Steps,
				noopStep{reason: fmt.Sprintf("no interpreter to install for TOXENV=%q", rawToxEnv)},
			)
		}

		plan.Steps = append(plan.Steps,
			commandStep{argv: []string{"pyenv", "rehash"}},
			commandStep{argv: []string{"python", "-m", "pip", "install", "--user", "--upgrade", "pip"}},
			commandStep{argv: []string{"python", "-m", "pip", "install", "--user", "virtualenv"}},
		)
	} else {
		plan.Steps = append(plan.Steps,
			commandStep{argv: []string{"pip", "install", "virtualenv"}},
		)
	}

	plan.Steps = append(plan.Steps,
		commandStep{argv: []string{"pip", "install", "tox"}},
	)

	return plan
}

// Apply runs the plan's steps in order against env, stopping at the first
// failure and returning that step's error.  Each step is logged before it
// runs, the way `set -x` would echo it.
func (p Plan) Apply(ctx context.Context, env *Env) error {
	dlog.Infof(ctx, "provisioning os=%s TOXENV=%q (%d steps)", p.OS, p.RawToxEnv, len(p.Steps))
	for _, step := range p.Steps {
		dlog.Infof(ctx, "+ %s", step.Describe())
		if err := step.Run(ctx, env); err != nil {
			return fmt.Errorf("provision: %s: %w", step.Describe(), err)
		}
	}
	return nil
}
