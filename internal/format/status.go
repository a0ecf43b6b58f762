package format

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hubnote-dev/hubnote/internal/github"
)

// StatusLookup fetches the most recent status state of a commit given its
// API URL. Empty state with nil error means no statuses exist yet.
type StatusLookup interface {
	LatestState(ctx context.Context, commitURL string) (string, error)
}

// Status announces failed builds. When the parent commit's latest status is
// also failure/error the "still failed" variant is chosen; a missing parent,
// an empty status list, or any lookup failure falls back to the plain
// "build failed" variant rather than suppressing the note.
func Status(ctx context.Context, lookup StatusLookup, logger *slog.Logger, ev github.StatusEvent) (Note, bool) {
	if !isFailedState(ev.State) {
		return Note{}, false
	}
	commit := ev.Commit
	if commit == nil || commit.Commit == nil {
		return Note{}, false
	}

	stillFailed := false
	if len(commit.Parents) > 0 {
		parentState, err := lookup.LatestState(ctx, commit.Parents[0].URL)
		if err != nil {
			logger.Warn("parent status lookup failed, assuming fresh failure",
				"sha", commit.SHA, "error", err)
		} else {
			stillFailed = isFailedState(parentState)
		}
	}

	message := firstLine(commit.Commit.Message)
	if stillFailed {
		return note(
			fmt.Sprintf("⚠️ **BUILD STILL FAILED** ⚠️: %s", message),
			commit.HTMLURL,
		), true
	}
	return note(
		fmt.Sprintf("🚨 **BUILD FAILED** 🚨: %s", message),
		commit.HTMLURL,
	), true
}

func isFailedState(state string) bool {
	return state == "failure" || state == "error"
}
