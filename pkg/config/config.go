// Package config stores the user's trytravis settings: the URL of the
// throwaway GitHub repository that changes get force-pushed to, and the
// Travis API token used to read build state.
//
// Settings live as single-value files under the per-user config directory,
// so they survive across repositories and shells.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

var (
	httpsRegexp = regexp.MustCompile(`^https://(?:www\.)?github\.com/([^/]+)/([^/]+)$`)
	sshRegexp   = regexp.MustCompile(`^ssh://git@github\.com/([^/]+)/([^/]+)$`)
)

// Dir returns the per-user configuration directory: %USERPROFILE%\trytravis
// on Windows, ~/.config/trytravis everywhere else.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "trytravis"), nil
	}
	return filepath.Join(home, ".config", "trytravis"), nil
}

// ValidateRepoURL checks that url is an HTTPS or SSH GitHub URL whose
// repository name contains "trytravis".  The name marker reduces the chance
// of ever force-pushing to a repository the user actually cares about.
func ValidateRepoURL(url string) error {
	slug, err := Slug(url)
	if err != nil {
		return err
	}
	name := slug[strings.IndexByte(slug, '/')+1:]
	if !strings.Contains(name, "trytravis") {
		return fmt.Errorf("the repository name in %q must contain `trytravis`; "+
			"this is a safety feature against force-pushing to a repository you don't mean to", url)
	}
	return nil
}

// Slug parses the "owner/name" pair out of an HTTPS or SSH GitHub URL.
func Slug(url string) (string, error) {
	for _, re := range []*regexp.Regexp{httpsRegexp, sshRegexp} {
		if match := re.FindStringSubmatch(url); match != nil {
			return match[1] + "/" + match[2], nil
		}
	}
	return "", fmt.Errorf("%q doesn't look like a GitHub URL; expected "+
		"`https://github.com/USERNAME/REPOSITORY` or `ssh://git@github.com/USERNAME/REPOSITORY`", url)
}

// SaveRepo stores the target repository URL.
func SaveRepo(url string) error {
	return save("repo", url)
}

// LoadRepo returns the stored target repository URL.
func LoadRepo() (string, error) {
	url, err := load("repo")
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("could not find your repository; have you run `trytravis repo`?")
		}
		return "", err
	}
	return url, nil
}

// SaveToken stores the Travis API token.
func SaveToken(token string) error {
	return save("token", token)
}

// LoadToken returns the stored Travis API token.
func LoadToken() (string, error) {
	token, err := load("token")
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("could not find your Travis token; have you run `trytravis token`?")
		}
		return "", err
	}
	return token, nil
}

func save(name, value string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(value), 0600)
}

func load(name string) (string, error) {
	// Running trytravis from inside a Travis worker would resubmit the
	// build that is currently running.
	if _, inTravis := os.LookupEnv("TRAVIS"); inTravis {
		return "", fmt.Errorf("detected that we are running in Travis; stopping to prevent infinite loops")
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	value, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(value)), nil
}
