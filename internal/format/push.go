package format

import (
	"fmt"
	"strings"

	"github.com/hubnote-dev/hubnote/internal/github"
)

// watchedRef is the only branch push events are announced for.
const watchedRef = "refs/heads/develop"

// Push announces pushes to the develop branch. Commits are listed newest
// first as "short-sha: first line of message".
func Push(ev github.PushEvent) (Note, bool) {
	if ev.Ref != watchedRef || ev.Pusher == nil || len(ev.Commits) == 0 {
		return Note{}, false
	}

	plural := ""
	if len(ev.Commits) > 1 {
		plural = "s"
	}

	lines := []string{
		fmt.Sprintf("🚀 Pushed by **%s** with [%d commit%s](%s):",
			ev.Pusher.Name, len(ev.Commits), plural, ev.Compare),
	}
	for i := len(ev.Commits) - 1; i >= 0; i-- {
		c := ev.Commits[i]
		lines = append(lines, fmt.Sprintf("%s: %s", shortSHA(c.ID), firstLine(c.Message)))
	}

	return note(strings.Join(lines, "\n")), true
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
