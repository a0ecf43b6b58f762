package format

import (
	"fmt"

	"github.com/hubnote-dev/hubnote/internal/github"
)

// Release announces published releases.
func Release(ev github.ReleaseEvent) (Note, bool) {
	if ev.Action != "published" || ev.Release == nil {
		return Note{}, false
	}

	return note(
		fmt.Sprintf("🎁 **NEW RELEASE**: %s is out!", ev.Release.TagName),
		ev.Release.HTMLURL,
	), true
}

// Watch announces stars. The only public-visibility note.
func Watch(ev github.WatchEvent) (Note, bool) {
	if ev.Sender == nil {
		return Note{}, false
	}

	return Note{
		Text:       fmt.Sprintf("⭐ Starred by **%s**", ev.Sender.Login),
		Visibility: VisibilityPublic,
	}, true
}

// Fork announces forks.
func Fork(ev github.ForkEvent) (Note, bool) {
	if ev.Sender == nil || ev.Forkee == nil {
		return Note{}, false
	}

	return note(
		fmt.Sprintf("🍴 Forked by **%s**", ev.Sender.Login),
		ev.Forkee.HTMLURL,
	), true
}
