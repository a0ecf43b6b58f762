package github

// EventType is the webhook event name delivered in the X-GitHub-Event header.
type EventType string

// Supported webhook event types.
const (
	EventStatus                   EventType = "status"
	EventPush                     EventType = "push"
	EventIssues                   EventType = "issues"
	EventIssueComment             EventType = "issue_comment"
	EventRelease                  EventType = "release"
	EventWatch                    EventType = "watch"
	EventFork                     EventType = "fork"
	EventPullRequest              EventType = "pull_request"
	EventPullRequestReviewComment EventType = "pull_request_review_comment"
	EventPullRequestReview        EventType = "pull_request_review"
	EventDiscussion               EventType = "discussion"
	EventDiscussionComment        EventType = "discussion_comment"
)

// SupportedEvents lists every event type hubnote can handle.
func SupportedEvents() []EventType {
	return []EventType{
		EventStatus,
		EventPush,
		EventIssues,
		EventIssueComment,
		EventRelease,
		EventWatch,
		EventFork,
		EventPullRequest,
		EventPullRequestReviewComment,
		EventPullRequestReview,
		EventDiscussion,
		EventDiscussionComment,
	}
}

// Known reports whether name is a supported event type.
func Known(name string) bool {
	for _, e := range SupportedEvents() {
		if string(e) == name {
			return true
		}
	}
	return false
}

// User is the GitHub account attached to an event (sender, author, pusher).
type User struct {
	Login string `json:"login"`
}

// Pusher is the abbreviated author object on push events.
type Pusher struct {
	Name string `json:"name"`
}

// Issue is the subset of the issue object the formatters read.
type Issue struct {
	Number  int64  `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}

// Comment covers issue, review, and discussion comments. The body may be
// empty; formatters treat absence as a valid state.
type Comment struct {
	User    *User  `json:"user"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// Release is the subset of the release object the formatters read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Forkee is the newly created fork repository.
type Forkee struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// PullRequest is the subset of the pull request object the formatters read.
type PullRequest struct {
	Number  int64  `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	Merged  bool   `json:"merged"`
	User    *User  `json:"user"`
}

// Review is a pull request review.
type Review struct {
	User    *User  `json:"user"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// Discussion is the subset of the discussion object the formatters read.
type Discussion struct {
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}

// PushCommit is one commit in a push event's commits array.
type PushCommit struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// CommitRef is a parent reference on a commit object. URL is the API URL of
// the parent commit, the base for the /statuses follow-up lookup.
type CommitRef struct {
	SHA string `json:"sha"`
	URL string `json:"url"`
}

// CommitDetail is the nested git commit object carrying the message.
type CommitDetail struct {
	Message string `json:"message"`
}

// StatusCommit is the commit object on a status event.
type StatusCommit struct {
	SHA     string        `json:"sha"`
	HTMLURL string        `json:"html_url"`
	Commit  *CommitDetail `json:"commit"`
	Parents []CommitRef   `json:"parents"`
}

// CommitStatus is one element of the GET {commit.url}/statuses response.
type CommitStatus struct {
	State string `json:"state"`
}

// PushEvent is the payload for "push".
type PushEvent struct {
	Ref     string       `json:"ref"`
	Compare string       `json:"compare"`
	Pusher  *Pusher      `json:"pusher"`
	Commits []PushCommit `json:"commits"`
}

// IssuesEvent is the payload for "issues".
type IssuesEvent struct {
	Action string `json:"action"`
	Issue  *Issue `json:"issue"`
	Sender *User  `json:"sender"`
}

// IssueCommentEvent is the payload for "issue_comment".
type IssueCommentEvent struct {
	Action  string   `json:"action"`
	Issue   *Issue   `json:"issue"`
	Comment *Comment `json:"comment"`
}

// ReleaseEvent is the payload for "release".
type ReleaseEvent struct {
	Action  string   `json:"action"`
	Release *Release `json:"release"`
}

// WatchEvent is the payload for "watch" (starring).
type WatchEvent struct {
	Action string `json:"action"`
	Sender *User  `json:"sender"`
}

// ForkEvent is the payload for "fork".
type ForkEvent struct {
	Forkee *Forkee `json:"forkee"`
	Sender *User   `json:"sender"`
}

// PullRequestEvent is the payload for "pull_request".
type PullRequestEvent struct {
	Action      string       `json:"action"`
	PullRequest *PullRequest `json:"pull_request"`
	Sender      *User        `json:"sender"`
}

// ReviewEvent is the payload for "pull_request_review".
type ReviewEvent struct {
	Action      string       `json:"action"`
	Review      *Review      `json:"review"`
	PullRequest *PullRequest `json:"pull_request"`
}

// ReviewCommentEvent is the payload for "pull_request_review_comment".
type ReviewCommentEvent struct {
	Action      string       `json:"action"`
	Comment     *Comment     `json:"comment"`
	PullRequest *PullRequest `json:"pull_request"`
}

// DiscussionEvent is the payload for "discussion". Answer is present only on
// the "answered" action.
type DiscussionEvent struct {
	Action     string      `json:"action"`
	Discussion *Discussion `json:"discussion"`
	Answer     *Comment    `json:"answer"`
}

// DiscussionCommentEvent is the payload for "discussion_comment".
type DiscussionCommentEvent struct {
	Action     string      `json:"action"`
	Comment    *Comment    `json:"comment"`
	Discussion *Discussion `json:"discussion"`
}

// StatusEvent is the payload for "status" (commit build status).
type StatusEvent struct {
	State       string        `json:"state"`
	Description string        `json:"description"`
	TargetURL   string        `json:"target_url"`
	Commit      *StatusCommit `json:"commit"`
}
