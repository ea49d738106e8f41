package classify

import (
	"strings"

	"github.com/jittakal/logdiag/pkg/event"
)

// rule triggers a category when any of its keywords occurs in the
// lowercased message.
type rule struct {
	category event.Category
	keywords []string
}

// rules is evaluated top to bottom; the first match wins. More specific
// keywords are ordered before general ones that could match the same
// message, so reordering entries changes classification results.
var rules = []rule{
	{event.CategoryGameSelected, []string{"ongameselected", "on game selected"}},
	{event.CategoryAppStarted, []string{"onapplicationstarted", "application started"}},
	{event.CategorySettingsChanged, []string{"onsettingschanged", "on settings changed"}},
	{event.CategoryVideoPlaying, []string{"videoisplaying", "video is playing"}},
	{event.CategoryShouldPlayMusic, []string{"shouldplaymusic", "should play music"}},
	{event.CategoryShouldPlayAudio, []string{"shouldplayaudio", "should play audio"}},
	{event.CategoryPlayMusicDecision, []string{"playmusicbasedonselected"}},
	{event.CategoryPauseMusic, []string{"pausemusic", "pause music"}},
	{event.CategoryResumeMusic, []string{"resumemusic", "resume music"}},
	{event.CategoryFirstSelect, []string{"firstselect", "_firstselect", "first select"}},
	{event.CategoryMediaMonitor, []string{"mediaelementsmonitor", "media elements monitor"}},
	{event.CategoryMainModelChanged, []string{"onmainmodelchanged", "on main model changed"}},
}

// Classify assigns a category to a message. Messages matching no rule fall
// through to CategoryOther.
func Classify(message string) event.Category {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return event.CategoryOther
}
