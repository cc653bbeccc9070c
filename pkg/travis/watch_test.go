package travis_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethmlarson/trytravis/pkg/travis"
)

func TestWatch(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			fmt.Fprint(w, `{"jobs": [
				{"state": "started", "config": {"os": "linux", "language": "python", "env": "TOXENV=py36"}},
				{"state": "queued", "config": {"os": "osx", "language": "generic", "env": "TOXENV=py35"}}
			]}`)
			return
		}
		fmt.Fprint(w, `{"jobs": [
			{"state": "passed", "config": {"os": "linux", "language": "python", "env": "TOXENV=py36"}},
			{"state": "failed", "config": {"os": "osx", "language": "generic", "env": "TOXENV=py35"}}
		]}`)
	}))
	defer server.Close()

	out := new(bytes.Buffer)
	watcher := travis.Watcher{
		Client:   travis.Client{BaseURL: server.URL, Token: "s3cr3t"},
		Out:      out,
		Interval: time.Millisecond,
	}
	require.NoError(t, watcher.Watch(context.Background(), 7))

	rendered := out.String()
	// First poll: both jobs still going.
	assert.Contains(t, rendered, "#1 * linux s python TOXENV=py36")
	// Second poll redraws over the first table and shows the outcomes.
	assert.Contains(t, rendered, "\r\x1b[2A")
	assert.Contains(t, rendered, "#1 P linux s python TOXENV=py36")
	assert.Contains(t, rendered, "#2 X  osx  s generic TOXENV=py35")

	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestWatchStopsOnCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobs": [{"state": "started", "config": {"os": "linux"}}]}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	watcher := travis.Watcher{
		Client:   travis.Client{BaseURL: server.URL, Token: "s3cr3t"},
		Out:      new(bytes.Buffer),
		Interval: time.Hour,
	}
	err := watcher.Watch(ctx, 7)
	assert.ErrorIs(t, err, context.Canceled)
}
