package format

import (
	"fmt"

	"github.com/hubnote-dev/hubnote/internal/github"
)

// Issues announces opened/closed/reopened issues.
func Issues(ev github.IssuesEvent) (Note, bool) {
	if ev.Issue == nil {
		return Note{}, false
	}

	var title string
	switch ev.Action {
	case "opened":
		title = "💥 Issue opened"
	case "closed":
		title = "💮 Issue closed"
	case "reopened":
		title = "🔥 Issue reopened"
	default:
		return Note{}, false
	}

	return note(
		fmt.Sprintf("%s: #%d %s", title, ev.Issue.Number, quote(ev.Issue.Title)),
		ev.Issue.HTMLURL,
	), true
}

// IssueComment announces newly created issue comments.
func IssueComment(ev github.IssueCommentEvent) (Note, bool) {
	if ev.Action != "created" || ev.Issue == nil || ev.Comment == nil || ev.Comment.User == nil {
		return Note{}, false
	}

	return note(
		fmt.Sprintf("💬 Commented on %s: %s %s",
			quote(ev.Issue.Title), ev.Comment.User.Login, quote(ev.Comment.Body)),
		ev.Comment.HTMLURL,
	), true
}
