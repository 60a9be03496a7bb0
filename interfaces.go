// Package fakefs contains the domain types shared by the in-memory filesystem
// engine and its collaborators (builder, manifest loader, patch facility).
package fakefs

import "time"

// Clock supplies the instant used for node creation and timestamp updates.
// The engine reads it whenever a node is created or a parent is touched.
type Clock interface {
	Now() time.Time
}

// EncodingOption is accepted wherever a text encoding may be given.
// It is implemented by a bare [Encoding] and by an [Options] record, so
// callers can pass either one. See [ResolveEncoding].
type EncodingOption interface {
	encoding() Encoding
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock used when no other [Clock] is configured.
var SystemClock Clock = systemClock{}
