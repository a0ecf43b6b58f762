package dispatch

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubnote-dev/hubnote/internal/format"
)

type fakePublisher struct {
	mu    sync.Mutex
	notes []format.Note
}

func (p *fakePublisher) Publish(ctx context.Context, n format.Note) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, n)
	return nil
}

func (p *fakePublisher) published() []format.Note {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]format.Note(nil), p.notes...)
}

type fakeLookup struct{ state string }

func (f *fakeLookup) LatestState(ctx context.Context, commitURL string) (string, error) {
	return f.state, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDispatch_EnabledEventPublishes(t *testing.T) {
	pub := &fakePublisher{}
	d := New(nil, pub, &fakeLookup{}, testLogger())

	body := []byte(`{"action":"opened","issue":{"number":1,"title":"t","html_url":"https://x/1"}}`)
	handled := d.Dispatch("issues", "delivery-1", body)
	d.Wait()

	assert.True(t, handled)
	notes := pub.published()
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Text, "Issue opened")
}

func TestDispatch_UnknownEventNoOp(t *testing.T) {
	pub := &fakePublisher{}
	d := New(nil, pub, &fakeLookup{}, testLogger())

	handled := d.Dispatch("deployment_status", "delivery-2", []byte(`{}`))
	d.Wait()

	assert.False(t, handled)
	assert.Empty(t, pub.published())
}

func TestDispatch_DisabledHookNeverRegistered(t *testing.T) {
	pub := &fakePublisher{}
	hooks := map[string]bool{"issues": false}
	d := New(hooks, pub, &fakeLookup{}, testLogger())

	assert.False(t, d.Handles("issues"))
	// other hooks default to enabled
	assert.True(t, d.Handles("push"))

	body := []byte(`{"action":"opened","issue":{"number":1,"title":"t","html_url":"https://x/1"}}`)
	handled := d.Dispatch("issues", "delivery-3", body)
	d.Wait()

	assert.False(t, handled)
	assert.Empty(t, pub.published())
}

func TestDispatch_UnrecognizedActionPublishesNothing(t *testing.T) {
	pub := &fakePublisher{}
	d := New(nil, pub, &fakeLookup{}, testLogger())

	handled := d.Dispatch("issues", "", []byte(`{"action":"labeled","issue":{"number":1,"title":"t"}}`))
	d.Wait()

	assert.True(t, handled, "recognized event type still dispatches")
	assert.Empty(t, pub.published())
}

func TestDispatch_MalformedPayloadSwallowed(t *testing.T) {
	pub := &fakePublisher{}
	d := New(nil, pub, &fakeLookup{}, testLogger())

	handled := d.Dispatch("push", "delivery-4", []byte(`{not json`))
	d.Wait()

	assert.True(t, handled)
	assert.Empty(t, pub.published())
}

func TestDispatch_StatusUsesLookup(t *testing.T) {
	pub := &fakePublisher{}
	d := New(nil, pub, &fakeLookup{state: "failure"}, testLogger())

	body := []byte(`{
		"state": "failure",
		"commit": {
			"sha": "abc",
			"html_url": "https://github.com/o/r/commit/abc",
			"commit": {"message": "break things"},
			"parents": [{"sha": "def", "url": "https://api.github.com/repos/o/r/commits/def"}]
		}
	}`)
	handled := d.Dispatch("status", "delivery-5", body)
	d.Wait()

	assert.True(t, handled)
	notes := pub.published()
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Text, "STILL FAILED")
}

func TestDispatch_WatchIsPublic(t *testing.T) {
	pub := &fakePublisher{}
	d := New(nil, pub, &fakeLookup{}, testLogger())

	d.Dispatch("watch", "", []byte(`{"action":"started","sender":{"login":"carol"}}`))
	d.Wait()

	notes := pub.published()
	require.Len(t, notes, 1)
	assert.Equal(t, format.VisibilityPublic, notes[0].Visibility)
}
