package format

import (
	"fmt"

	"github.com/hubnote-dev/hubnote/internal/github"
)

// PullRequest announces opened/reopened/closed pull requests. Closed splits
// into merged vs. closed-unmerged on the merged flag.
func PullRequest(ev github.PullRequestEvent) (Note, bool) {
	pr := ev.PullRequest
	if pr == nil {
		return Note{}, false
	}

	var title string
	switch ev.Action {
	case "opened":
		title = "📦 New Pull Request"
	case "reopened":
		title = "🗿 Pull Request reopened"
	case "closed":
		if pr.Merged {
			title = "💯 Pull Request merged!"
		} else {
			title = "🚫 Pull Request closed"
		}
	default:
		return Note{}, false
	}

	return note(
		fmt.Sprintf("%s: #%d %s", title, pr.Number, quote(pr.Title)),
		pr.HTMLURL,
	), true
}

// Review announces submitted reviews that carry a body. Reviews with an
// empty or missing body produce no note regardless of action.
func Review(ev github.ReviewEvent) (Note, bool) {
	if ev.Action != "submitted" || ev.Review == nil || ev.Review.User == nil {
		return Note{}, false
	}
	if ev.Review.Body == "" {
		return Note{}, false
	}

	return note(
		fmt.Sprintf("👀 Review submitted: %s %s", ev.Review.User.Login, quote(ev.Review.Body)),
		ev.Review.HTMLURL,
	), true
}

// ReviewComment announces newly created review comments on pull requests.
func ReviewComment(ev github.ReviewCommentEvent) (Note, bool) {
	if ev.Action != "created" || ev.PullRequest == nil || ev.Comment == nil || ev.Comment.User == nil {
		return Note{}, false
	}

	return note(
		fmt.Sprintf("💬 Commented on %s: %s %s",
			quote(ev.PullRequest.Title), ev.Comment.User.Login, quote(ev.Comment.Body)),
		ev.Comment.HTMLURL,
	), true
}
