package travis

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Watcher polls a build's jobs and re-renders one status line per job, in
// place, until no job is running anymore.
type Watcher struct {
	Client Client
	Out    io.Writer

	// Interval between polls; zero means the client's default.
	Interval time.Duration

	// Width truncates status lines so in-place redraws don't scroll the
	// terminal; zero means no truncation.
	Width int
}

// Watch blocks until the build settles or ctx is canceled.
func (w Watcher) Watch(ctx context.Context, buildID int64) error {
	interval := w.Interval
	if interval == 0 {
		interval = defaultPollInterval
	}

	rendered := 0
	for {
		jobs, err := w.Client.Jobs(ctx, buildID)
		if err != nil {
			return err
		}

		// Redraw over the previous poll's table.
		if rendered > 1 {
			fmt.Fprintf(w.Out, "\r\x1b[%dA", rendered)
		} else if rendered == 1 {
			fmt.Fprint(w.Out, "\r")
		}

		running := false
		for i, job := range jobs {
			state, err := ClassifyState(job.State)
			if err != nil {
				return err
			}
			if state.Running {
				running = true
			}
			line := renderJobLine(i+1, len(jobs), state.Glyph, job.Config)
			if w.Width > 0 && len(line) > w.Width {
				line = line[:w.Width]
			}
			fmt.Fprintln(w.Out, state.Render(line))
		}
		rendered = len(jobs)

		if !running {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func renderJobLine(number, total int, glyph string, config JobConfig) string {
	platform := config.OS
	if platform == "osx" {
		platform = " osx "
	}

	lang := config.Language
	if lang == "" {
		lang = "generic"
	}

	sudo := "c"
	if config.SudoEnabled() {
		sudo = "s"
	}

	// Left-align the job number against the widest one in the build.
	padding := strings.Repeat(" ", len(fmt.Sprint(total))-len(fmt.Sprint(number)))

	return "#" + strings.Join([]string{
		fmt.Sprint(number) + padding,
		glyph,
		platform,
		sudo,
		lang,
		config.Env,
	}, " ")
}
