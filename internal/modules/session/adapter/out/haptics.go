package out

import (
	"context"
	"io"

	sessionout "studybuddy/internal/modules/session/port/out"
)

// BellHaptics rings the terminal bell for success feedback. Light taps are
// silent.
type BellHaptics struct {
	w io.Writer
}

func NewBellHaptics(w io.Writer) sessionout.Haptics {
	return BellHaptics{w: w}
}

func (h BellHaptics) Signal(_ context.Context, kind sessionout.HapticKind) {
	if kind == sessionout.HapticSuccess {
		_, _ = io.WriteString(h.w, "\a")
	}
}

type NoopHaptics struct{}

func (NoopHaptics) Signal(context.Context, sessionout.HapticKind) {}
