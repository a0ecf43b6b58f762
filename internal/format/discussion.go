package format

import (
	"fmt"

	"github.com/hubnote-dev/hubnote/internal/github"
)

// Discussion announces created/closed/reopened/answered discussions. The
// answered variant links to the answer instead of the discussion itself.
func Discussion(ev github.DiscussionEvent) (Note, bool) {
	d := ev.Discussion
	if d == nil {
		return Note{}, false
	}

	var title string
	url := d.HTMLURL
	switch ev.Action {
	case "created":
		title = "💭 Discussion opened"
	case "closed":
		title = "📕 Discussion closed"
	case "reopened":
		title = "🔥 Discussion reopened"
	case "answered":
		if ev.Answer == nil {
			return Note{}, false
		}
		title = "✅ Discussion answered"
		url = ev.Answer.HTMLURL
	default:
		return Note{}, false
	}

	return note(
		fmt.Sprintf("%s: %s", title, quote(d.Title)),
		url,
	), true
}

// DiscussionComment announces newly created discussion comments.
func DiscussionComment(ev github.DiscussionCommentEvent) (Note, bool) {
	if ev.Action != "created" || ev.Discussion == nil || ev.Comment == nil || ev.Comment.User == nil {
		return Note{}, false
	}

	return note(
		fmt.Sprintf("💬 Commented on %s: %s %s",
			quote(ev.Discussion.Title), ev.Comment.User.Login, quote(ev.Comment.Body)),
		ev.Comment.HTMLURL,
	), true
}
