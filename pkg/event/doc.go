// Package event contains the public event model shared by the parsing,
// classification, storage and reporting layers.
//
// # Event
//
// An Event is one normalized log line:
//
//	evt := event.Event{
//	    Timestamp: ts,
//	    Source:    event.SourceUniPlaySong,
//	    Category:  event.CategoryGameSelected,
//	    Message:   "OnGameSelected Game: Celeste",
//	    RawLine:   line,
//	    Metadata:  event.Metadata{event.MetaGame: "Celeste"},
//	}
//
// Events are value types and are never mutated after construction. Every
// stored event carries a parseable timestamp and one of the two known
// sources; lines that cannot satisfy either never become events.
//
// # Taxonomy
//
// Category is a closed taxonomy with the catch-all CategoryOther. The
// Categories slice preserves classification-rule order, which is
// load-bearing: the first rule whose keyword occurs in a message wins.
//
// # Metadata
//
// Metadata holds fields opportunistically recovered from the message text.
// Keys come from the fixed MetadataKeys vocabulary and values are bool or
// string. A field that did not match is absent, never nil:
//
//	if game, ok := evt.Metadata.Str(event.MetaGame); ok {
//	    fmt.Println("selected:", game)
//	}
package event
