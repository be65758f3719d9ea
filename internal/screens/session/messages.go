package session

import (
	"time"

	sess "github.com/abhisek/adaptiq/internal/session"
)

// startedMsg carries the result of building the session.
type startedMsg struct {
	Session *sess.Session
	Err     error
}

// tickMsg drives the countdown once per second.
type tickMsg time.Time

// sectionReadyMsg ends the pause between sections.
type sectionReadyMsg struct{ section int }

// endedMsg carries the finished session.
type endedMsg struct {
	Session *sess.Session
	Err     error
}
