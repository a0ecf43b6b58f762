package format

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubnote-dev/hubnote/internal/github"
)

func TestPush_IgnoresOtherRefs(t *testing.T) {
	_, ok := Push(github.PushEvent{
		Ref:     "refs/heads/main",
		Pusher:  &github.Pusher{Name: "alice"},
		Commits: []github.PushCommit{{ID: "abcdef1234", Message: "fix"}},
	})
	assert.False(t, ok)
}

func TestPush_ListsCommitsInReverseOrder(t *testing.T) {
	n, ok := Push(github.PushEvent{
		Ref:     "refs/heads/develop",
		Compare: "https://github.com/o/r/compare/a...b",
		Pusher:  &github.Pusher{Name: "alice"},
		Commits: []github.PushCommit{
			{ID: "aaaaaaa1111", Message: "first commit\nbody"},
			{ID: "bbbbbbb2222", Message: "second commit"},
			{ID: "ccccccc3333", Message: "third commit"},
		},
	})
	require.True(t, ok)

	lines := strings.Split(n.Text, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "**alice**")
	assert.Contains(t, lines[0], "3 commits")
	assert.Contains(t, lines[0], "https://github.com/o/r/compare/a...b")
	assert.Equal(t, "ccccccc: third commit", lines[1])
	assert.Equal(t, "bbbbbbb: second commit", lines[2])
	assert.Equal(t, "aaaaaaa: first commit", lines[3])
	assert.Equal(t, VisibilityHome, n.Visibility)
}

func TestIssues_Actions(t *testing.T) {
	issue := &github.Issue{Number: 42, Title: "crash on boot", HTMLURL: "https://github.com/o/r/issues/42"}

	tests := []struct {
		action string
		want   string
		ok     bool
	}{
		{"opened", "💥 Issue opened", true},
		{"closed", "💮 Issue closed", true},
		{"reopened", "🔥 Issue reopened", true},
		{"labeled", "", false},
		{"assigned", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			n, ok := Issues(github.IssuesEvent{Action: tt.action, Issue: issue})
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Contains(t, n.Text, tt.want)
				assert.Contains(t, n.Text, "#42")
				assert.Contains(t, n.Text, "crash on boot")
				assert.Contains(t, n.Text, issue.HTMLURL)
			}
		})
	}
}

func TestIssueComment_OnlyCreated(t *testing.T) {
	ev := github.IssueCommentEvent{
		Action:  "edited",
		Issue:   &github.Issue{Title: "crash on boot"},
		Comment: &github.Comment{User: &github.User{Login: "bob"}, Body: "same here"},
	}
	_, ok := IssueComment(ev)
	assert.False(t, ok)

	ev.Action = "created"
	ev.Comment.HTMLURL = "https://github.com/o/r/issues/42#issuecomment-1"
	n, ok := IssueComment(ev)
	require.True(t, ok)
	assert.Contains(t, n.Text, "bob")
	assert.Contains(t, n.Text, `"same here"`)
	assert.Contains(t, n.Text, ev.Comment.HTMLURL)
}

func TestRelease_PublishedOnly(t *testing.T) {
	rel := &github.Release{TagName: "v1.2.0", HTMLURL: "https://github.com/o/r/releases/v1.2.0"}

	_, ok := Release(github.ReleaseEvent{Action: "created", Release: rel})
	assert.False(t, ok)

	n, ok := Release(github.ReleaseEvent{Action: "published", Release: rel})
	require.True(t, ok)
	assert.Contains(t, n.Text, "NEW RELEASE")
	assert.Contains(t, n.Text, "v1.2.0")
	assert.Contains(t, n.Text, rel.HTMLURL)
}

func TestWatch_PublicVisibility(t *testing.T) {
	n, ok := Watch(github.WatchEvent{Sender: &github.User{Login: "carol"}})
	require.True(t, ok)
	assert.Contains(t, n.Text, "**carol**")
	assert.Equal(t, VisibilityPublic, n.Visibility)

	_, ok = Watch(github.WatchEvent{})
	assert.False(t, ok)
}

func TestFork(t *testing.T) {
	n, ok := Fork(github.ForkEvent{
		Sender: &github.User{Login: "dave"},
		Forkee: &github.Forkee{HTMLURL: "https://github.com/dave/r"},
	})
	require.True(t, ok)
	assert.Contains(t, n.Text, "**dave**")
	assert.Contains(t, n.Text, "https://github.com/dave/r")
	assert.Equal(t, VisibilityHome, n.Visibility)
}

func TestPullRequest_ClosedSplitsOnMerged(t *testing.T) {
	pr := &github.PullRequest{Number: 7, Title: "add feature", HTMLURL: "https://github.com/o/r/pull/7"}

	pr.Merged = true
	merged, ok := PullRequest(github.PullRequestEvent{Action: "closed", PullRequest: pr})
	require.True(t, ok)
	assert.Contains(t, merged.Text, "merged")

	pr.Merged = false
	closed, ok := PullRequest(github.PullRequestEvent{Action: "closed", PullRequest: pr})
	require.True(t, ok)
	assert.Contains(t, closed.Text, "closed")
	assert.NotEqual(t, merged.Text, closed.Text)
}

func TestPullRequest_UnknownAction(t *testing.T) {
	pr := &github.PullRequest{Number: 7, Title: "add feature"}
	_, ok := PullRequest(github.PullRequestEvent{Action: "synchronize", PullRequest: pr})
	assert.False(t, ok)
}

func TestReview_EmptyBodyProducesNothing(t *testing.T) {
	ev := github.ReviewEvent{
		Action: "submitted",
		Review: &github.Review{User: &github.User{Login: "eve"}, Body: ""},
	}
	_, ok := Review(ev)
	assert.False(t, ok)

	ev.Review.Body = "nice"
	ev.Review.HTMLURL = "https://github.com/o/r/pull/7#pullrequestreview-1"
	n, ok := Review(ev)
	require.True(t, ok)
	assert.Contains(t, n.Text, `"nice"`)
	assert.Contains(t, n.Text, ev.Review.HTMLURL)
}

func TestDiscussion_AnsweredUsesAnswerURL(t *testing.T) {
	d := &github.Discussion{Title: "roadmap", HTMLURL: "https://github.com/o/r/discussions/1"}

	n, ok := Discussion(github.DiscussionEvent{
		Action:     "answered",
		Discussion: d,
		Answer:     &github.Comment{HTMLURL: "https://github.com/o/r/discussions/1#discussioncomment-9"},
	})
	require.True(t, ok)
	assert.Contains(t, n.Text, "discussioncomment-9")
	assert.NotContains(t, n.Text, d.HTMLURL+"\n")

	// answered without an answer object is skipped, not a crash
	_, ok = Discussion(github.DiscussionEvent{Action: "answered", Discussion: d})
	assert.False(t, ok)

	n, ok = Discussion(github.DiscussionEvent{Action: "created", Discussion: d})
	require.True(t, ok)
	assert.Contains(t, n.Text, d.HTMLURL)
}

func TestDiscussionComment(t *testing.T) {
	n, ok := DiscussionComment(github.DiscussionCommentEvent{
		Action:     "created",
		Discussion: &github.Discussion{Title: "roadmap"},
		Comment: &github.Comment{
			User:    &github.User{Login: "frank"},
			Body:    "what about Q3?",
			HTMLURL: "https://github.com/o/r/discussions/1#discussioncomment-2",
		},
	})
	require.True(t, ok)
	assert.Contains(t, n.Text, "frank")
	assert.Contains(t, n.Text, "what about Q3?")
}

type fakeLookup struct {
	state string
	err   error
	calls int
}

func (f *fakeLookup) LatestState(ctx context.Context, commitURL string) (string, error) {
	f.calls++
	return f.state, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func statusEvent(state string) github.StatusEvent {
	return github.StatusEvent{
		State: state,
		Commit: &github.StatusCommit{
			SHA:     "abc123",
			HTMLURL: "https://github.com/o/r/commit/abc123",
			Commit:  &github.CommitDetail{Message: "tweak ci\nmore detail"},
			Parents: []github.CommitRef{{SHA: "def456", URL: "https://api.github.com/repos/o/r/commits/def456"}},
		},
	}
}

func TestStatus_SuccessStateIgnored(t *testing.T) {
	lookup := &fakeLookup{}
	_, ok := Status(context.Background(), lookup, testLogger(), statusEvent("success"))
	assert.False(t, ok)
	assert.Zero(t, lookup.calls, "no lookup for non-failure states")
}

func TestStatus_ParentAlsoFailed(t *testing.T) {
	lookup := &fakeLookup{state: "error"}
	n, ok := Status(context.Background(), lookup, testLogger(), statusEvent("failure"))
	require.True(t, ok)
	assert.Contains(t, n.Text, "BUILD STILL FAILED")
	assert.Contains(t, n.Text, "tweak ci")
	assert.NotContains(t, n.Text, "more detail")
	assert.Equal(t, 1, lookup.calls)
}

func TestStatus_ParentCleanOrUnknown(t *testing.T) {
	tests := []struct {
		name   string
		lookup *fakeLookup
	}{
		{"parent succeeded", &fakeLookup{state: "success"}},
		{"no parent statuses", &fakeLookup{state: ""}},
		{"lookup error", &fakeLookup{err: errors.New("network down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Status(context.Background(), tt.lookup, testLogger(), statusEvent("failure"))
			require.True(t, ok)
			assert.Contains(t, n.Text, "BUILD FAILED")
			assert.NotContains(t, n.Text, "STILL")
		})
	}
}

func TestStatus_NoParents(t *testing.T) {
	ev := statusEvent("error")
	ev.Commit.Parents = nil
	lookup := &fakeLookup{}
	n, ok := Status(context.Background(), lookup, testLogger(), ev)
	require.True(t, ok)
	assert.Contains(t, n.Text, "BUILD FAILED")
	assert.Zero(t, lookup.calls)
}
