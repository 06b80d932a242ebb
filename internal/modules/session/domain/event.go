package domain

import "time"

type EventKind string

const (
	EventSessionStarted EventKind = "session_started"
	EventCheckInShown   EventKind = "check_in_shown"
	EventCheckInHidden  EventKind = "check_in_hidden"
	EventSurprise       EventKind = "surprise"
	EventBuddyFaded     EventKind = "buddy_faded"
	EventBuddyShown     EventKind = "buddy_shown"
	EventPromptShown    EventKind = "prompt_shown"
	EventPromptTimedOut EventKind = "prompt_timed_out"
	EventPaused         EventKind = "paused"
	EventResumed        EventKind = "resumed"
	EventBreakStarted   EventKind = "break_started"
	EventBreakOver      EventKind = "break_over"
	EventFeedback       EventKind = "feedback"
	EventNeedHelp       EventKind = "need_help"
	EventWelcomeBack    EventKind = "welcome_back"
	EventSpecial        EventKind = "special"
	EventSessionEnded   EventKind = "session_ended"
)

// Event is what the engine tells the presentation layer. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind       EventKind
	SessionID  string
	At         time.Time
	ElapsedSec int
	Title      string
	Text       string
	Emoji      string
	Prompt     *Prompt
	Outcome    *Outcome
}
