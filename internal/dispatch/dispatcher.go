package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hubnote-dev/hubnote/internal/format"
	"github.com/hubnote-dev/hubnote/internal/github"
)

// handlerTimeout bounds one event's formatting and publish, including the
// status follow-up lookup.
const handlerTimeout = 30 * time.Second

// Publisher posts a formatted note. Failures are logged by the dispatcher
// and never propagate further.
type Publisher interface {
	Publish(ctx context.Context, n format.Note) error
}

// Handler processes one raw event payload.
type Handler func(ctx context.Context, body []byte) error

// Dispatcher routes verified webhook deliveries to at most one handler per
// event type. The handler table is built once at startup from the hook
// configuration and never mutated.
type Dispatcher struct {
	handlers  map[github.EventType]Handler
	publisher Publisher
	statuses  format.StatusLookup
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// New builds the handler table. An event type is registered only when its
// hook flag is enabled; a missing key counts as enabled. Disabled events get
// no handler at all, so their deliveries are silently ignored.
func New(hooks map[string]bool, publisher Publisher, statuses format.StatusLookup, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		handlers:  make(map[github.EventType]Handler),
		publisher: publisher,
		statuses:  statuses,
		logger:    logger,
	}

	register(d, hooks, github.EventPush, format.Push)
	register(d, hooks, github.EventIssues, format.Issues)
	register(d, hooks, github.EventIssueComment, format.IssueComment)
	register(d, hooks, github.EventRelease, format.Release)
	register(d, hooks, github.EventWatch, format.Watch)
	register(d, hooks, github.EventFork, format.Fork)
	register(d, hooks, github.EventPullRequest, format.PullRequest)
	register(d, hooks, github.EventPullRequestReviewComment, format.ReviewComment)
	register(d, hooks, github.EventPullRequestReview, format.Review)
	register(d, hooks, github.EventDiscussion, format.Discussion)
	register(d, hooks, github.EventDiscussionComment, format.DiscussionComment)

	if enabled(hooks, github.EventStatus) {
		d.handlers[github.EventStatus] = d.handleStatus
	}

	return d
}

// register installs the decode-format-publish handler for one event type.
func register[T any](d *Dispatcher, hooks map[string]bool, event github.EventType, formatter func(T) (format.Note, bool)) {
	if !enabled(hooks, event) {
		return
	}
	d.handlers[event] = func(ctx context.Context, body []byte) error {
		var ev T
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("parse %s payload: %w", event, err)
		}
		n, ok := formatter(ev)
		if !ok {
			return nil
		}
		return d.publisher.Publish(ctx, n)
	}
}

func enabled(hooks map[string]bool, event github.EventType) bool {
	v, ok := hooks[string(event)]
	if !ok {
		return true
	}
	return v
}

// handleStatus is the one stateful handler: the formatter re-checks the
// parent commit's statuses before choosing a message variant.
func (d *Dispatcher) handleStatus(ctx context.Context, body []byte) error {
	var ev github.StatusEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("parse status payload: %w", err)
	}
	n, ok := format.Status(ctx, d.statuses, d.logger, ev)
	if !ok {
		return nil
	}
	return d.publisher.Publish(ctx, n)
}

// Dispatch hands a delivery to its handler, if one is registered, and
// returns immediately. The handler runs detached from the request path:
// its errors are logged here, never returned to the caller, so a slow or
// failing downstream call cannot delay the webhook acknowledgment.
// The return value reports whether a handler was registered.
func (d *Dispatcher) Dispatch(event, deliveryID string, body []byte) bool {
	handler, ok := d.handlers[github.EventType(event)]
	if !ok {
		return false
	}
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("event handler panicked",
					"event", event, "delivery_id", deliveryID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := handler(ctx, body); err != nil {
			d.logger.Error("event handler failed",
				"event", event, "delivery_id", deliveryID, "error", err)
			return
		}
		d.logger.Debug("event handled", "event", event, "delivery_id", deliveryID)
	}()

	return true
}

// Handles reports whether a handler is registered for event.
func (d *Dispatcher) Handles(event string) bool {
	_, ok := d.handlers[github.EventType(event)]
	return ok
}

// Wait blocks until all in-flight handlers finish. Used on shutdown so
// detached publishes are not cut off mid-request.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
