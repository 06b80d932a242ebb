package out_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	voiceout "studybuddy/internal/modules/voice/adapter/out"
	"studybuddy/internal/modules/voice/dto"
)

func TestPluginSpeakerIntegrationConsolePlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and launches a plugin binary")
	}
	speaker := voiceout.NewPluginSpeaker(buildVoicePlugin(t))
	defer speaker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meta, err := speaker.Metadata(ctx)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if meta.Name != "voice-console" {
		t.Fatalf("unexpected metadata name: %s", meta.Name)
	}
	if err := speaker.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := speaker.Speak(ctx, "Keep it up", dto.SpeechParams{Language: "en-US", Pitch: 1.1, Rate: 0.9, Volume: 1}); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if err := speaker.Speak(ctx, "", dto.SpeechParams{}); err == nil {
		t.Fatalf("expected empty text to be rejected")
	}
	speaker.Close()
	speaker.Close()
}

func buildVoicePlugin(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "voice-console")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/voice-console")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build voice plugin: %v\n%s", err, string(out))
	}
	return binPath
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
