package out_test

import (
	"bytes"
	"context"
	"testing"

	voiceout "studybuddy/internal/modules/voice/adapter/out"
	"studybuddy/internal/modules/voice/dto"
)

func TestConsoleSpeakerWritesUtterance(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	speaker := voiceout.NewConsoleSpeaker(&buf)
	if err := speaker.Speak(context.Background(), "Show your work", dto.SpeechParams{Language: "en-US", Pitch: 0.88, Rate: 0.81}); err != nil {
		t.Fatalf("speak: %v", err)
	}
	want := "🔊 Show your work (pitch 0.88, rate 0.81, en-US)\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if err := speaker.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
