// Package classify maps parsed log lines to sources and event categories.
package classify

import (
	"strings"

	"github.com/jittakal/logdiag/pkg/event"
)

// ResolveSource attributes a parsed line to one of the two known
// extensions. The explicit source hint (the extension field of the tabular
// log format) is checked first; if inconclusive, the message text is
// searched for a bracketed or bare occurrence of each extension name.
// Lines matching neither resolve to SourceUnknown and are dropped by the
// caller.
func ResolveSource(hint, message string) event.Source {
	for _, src := range event.KnownSources {
		if strings.Contains(hint, string(src)) {
			return src
		}
	}
	for _, src := range event.KnownSources {
		name := string(src)
		if strings.Contains(message, "["+name+"]") || strings.Contains(message, name) {
			return src
		}
	}
	return event.SourceUnknown
}
