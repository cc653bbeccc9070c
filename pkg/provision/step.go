// Package provision turns a (operating system, TOXENV) pair in to an ordered
// plan of provisioning steps, and runs such plans.
//
// This is the install phase of trytravis' own CI pipeline: it puts a working
// Python interpreter, virtualenv, and tox in place before tox takes over.
package provision

import (
	"context"
	"fmt"
	"strings"
)

// Command is one external command invocation requested by a step.
type Command struct {
	// Argv is the command line; Argv[0] is resolved against ExtraPath
	// entries before the ambient search path.
	Argv []string

	// ExtraPath entries are prepended to the command's search path,
	// most-recently-added first.
	ExtraPath []string

	// Stdin is fed to the command; nil means no input.
	Stdin []byte
}

func (c Command) String() string {
	return strings.Join(c.Argv, " ")
}

// CommandRunner runs external commands on behalf of steps.  The production
// implementation shells out; tests substitute a recorder and assert on the
// exact sequence of Commands.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}

// Fetcher retrieves bootstrap scripts over the network.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Env is the mutable state threaded through the steps of a single plan
// execution.  Search-path extensions accumulate here rather than in the
// process environment, so they affect subsequent steps only.
type Env struct {
	Runner  CommandRunner
	Fetcher Fetcher

	// Home is the invoking user's home directory.
	Home string

	extraPath []string
}

// NewEnv returns an Env that runs commands with the given runner and fetcher.
func NewEnv(runner CommandRunner, fetcher Fetcher, home string) *Env {
	return &Env{
		Runner:  runner,
		Fetcher: fetcher,
		Home:    home,
	}
}

// expand resolves the $HOME placeholder that SelectPlan leaves in paths.
// Plans carry the placeholder so that plan selection stays a pure function
// and plans compare equal across hosts; only execution knows the real home.
func (env *Env) expand(s string) string {
	return strings.ReplaceAll(s, "$HOME", env.Home)
}

func (env *Env) run(ctx context.Context, stdin []byte, argv ...string) error {
	expanded := make([]string, len(argv))
	for i, arg := range argv {
		expanded[i] = env.expand(arg)
	}
	return env.Runner.Run(ctx, Command{
		Argv:      expanded,
		ExtraPath: env.extraPath,
		Stdin:     stdin,
	})
}

// Step is a single provisioning action.  A failing step aborts the whole
// plan; nothing is retried.
type Step interface {
	// Describe returns a one-line rendering of the step, close to what
	// the equivalent shell command would look like under `set -x`.
	Describe() string

	Run(ctx context.Context, env *Env) error
}

// commandStep runs one external command.
type commandStep struct {
	argv []string
}

func (s commandStep) Describe() string { return strings.Join(s.argv, " ") }

func (s commandStep) Run(ctx context.Context, env *Env) error {
	return env.run(ctx, nil, s.argv...)
}

// pathStep prepends a directory to the search path used by later steps.
// This is the plan-level stand-in for `export PATH=dir:$PATH` (and for the
// shim directory that `pyenv init -` would add).
type pathStep struct {
	dir string
}

func (s pathStep) Describe() string { return fmt.Sprintf("export PATH=%s:$PATH", s.dir) }

func (s pathStep) Run(_ context.Context, env *Env) error {
	env.extraPath = append([]string{env.expand(s.dir)}, env.extraPath...)
	return nil
}

// fetchRunStep downloads a script and feeds it to an interpreter on stdin,
// like `curl URL | python - ARGS...` in a shell.
type fetchRunStep struct {
	url  string
	argv []string
}

func (s fetchRunStep) Describe() string {
	return fmt.Sprintf("curl %s | %s", s.url, strings.Join(s.argv, " "))
}

func (s fetchRunStep) Run(ctx context.Context, env *Env) error {
	script, err := env.Fetcher.Fetch(ctx, s.url)
	if err != nil {
		return err
	}
	return env.run(ctx, script, s.argv...)
}

// noopStep records a branch that deliberately does nothing.  A shell `case`
// would fall through silently for unrecognized TOXENV values; here the skip
// shows up in the step trace and the log.
type noopStep struct {
	reason string
}

func (s noopStep) Describe() string { return "skip: " + s.reason }

func (s noopStep) Run(context.Context, *Env) error { return nil }
