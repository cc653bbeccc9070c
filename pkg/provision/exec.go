package provision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dexec"
)

// ExecRunner is the production CommandRunner; it shells out via dexec, which
// logs each command before running it.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, cmd Command) error {
	exe, err := lookPath(cmd.Argv[0], cmd.ExtraPath)
	if err != nil {
		return err
	}
	c := dexec.CommandContext(ctx, exe, cmd.Argv[1:]...)
	if len(cmd.ExtraPath) > 0 {
		pathVar := strings.Join(append(append([]string{}, cmd.ExtraPath...), os.Getenv("PATH")),
			string(os.PathListSeparator))
		c.Env = append(os.Environ(), "PATH="+pathVar)
	}
	if cmd.Stdin != nil {
		c.Stdin = bytes.NewReader(cmd.Stdin)
	}
	c.Stdout = os.Stderr
	c.Stderr = os.Stderr
	return c.Run()
}

// lookPath resolves a command name against the plan's extra search-path
// entries before falling back to the ambient PATH.  dexec.LookPath only
// consults the process environment, which doesn't yet know about the pyenv
// checkout the plan itself created.
func lookPath(name string, extraPath []string) (string, error) {
	if strings.Contains(name, string(os.PathSeparator)) {
		return name, nil
	}
	for _, dir := range extraPath {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
			return candidate, nil
		}
	}
	return dexec.LookPath(name)
}

// ExitCode translates a plan error in to the process exit status to report:
// the failing command's own status when it ran and exited non-zero, 1 for
// any other failure, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// HTTPFetcher is the production Fetcher.
type HTTPFetcher struct {
	HTTPClient *http.Client
	UserAgent  string
}

func (f HTTPFetcher) Fetch(ctx context.Context, url string) (_ []byte, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("GET %q => %w", url, err)
		}
	}()

	httpClient := f.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	if err := resp.Body.Close(); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %s", resp.Status)
	}
	return content, nil
}
