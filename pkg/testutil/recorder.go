package testutil

import (
	"context"
	"fmt"

	"github.com/sethmlarson/trytravis/pkg/provision"
)

// CommandRecorder is a provision.CommandRunner that records commands instead
// of running them.
type CommandRecorder struct {
	Commands []provision.Command

	// Fail, when non-nil, is consulted for every command; a non-nil
	// return makes that command fail after it is recorded.
	Fail func(cmd provision.Command) error
}

func (r *CommandRecorder) Run(_ context.Context, cmd provision.Command) error {
	r.Commands = append(r.Commands, cmd)
	if r.Fail != nil {
		return r.Fail(cmd)
	}
	return nil
}

// FetchRecorder is a provision.Fetcher serving canned content.
type FetchRecorder struct {
	URLs    []string
	Content map[string][]byte
}

func (r *FetchRecorder) Fetch(_ context.Context, url string) ([]byte, error) {
	r.URLs = append(r.URLs, url)
	content, ok := r.Content[url]
	if !ok {
		return nil, fmt.Errorf("GET %q => no canned response", url)
	}
	return content, nil
}
