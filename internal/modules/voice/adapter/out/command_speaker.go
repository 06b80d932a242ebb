package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"studybuddy/internal/modules/voice/dto"
	voiceout "studybuddy/internal/modules/voice/port/out"
)

const (
	baseWordsPerMinute = 175
	espeakBasePitch    = 50
)

// CommandSpeaker runs the platform's text-to-speech program. Only one
// utterance plays at a time; Stop kills it.
type CommandSpeaker struct {
	program string

	mu      sync.Mutex
	current *playback
}

type playback struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// NewCommandSpeaker uses program when set, otherwise the platform default.
func NewCommandSpeaker(program string) (voiceout.Speaker, error) {
	if program == "" {
		switch runtime.GOOS {
		case "darwin":
			program = "say"
		case "linux":
			program = "espeak"
		default:
			return nil, fmt.Errorf("speech command is not supported on %s", runtime.GOOS)
		}
	}
	return &CommandSpeaker{program: program}, nil
}

func (s *CommandSpeaker) Speak(_ context.Context, text string, params dto.SpeechParams) error {
	cmd := exec.Command(s.program, commandArgs(s.program, text, params)...)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start speech command: %w", err)
	}
	p := &playback{cmd: cmd, done: make(chan struct{})}
	s.current = p
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return nil
}

func (s *CommandSpeaker) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.current
	s.current = nil
	if p == nil {
		return nil
	}
	select {
	case <-p.done:
		return nil
	default:
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop speech command: %w", err)
	}
	return nil
}

func commandArgs(program, text string, params dto.SpeechParams) []string {
	wpm := strconv.Itoa(int(baseWordsPerMinute * params.Rate))
	if program == "say" {
		return []string{"-r", wpm, text}
	}
	pitch := int(espeakBasePitch * params.Pitch)
	if pitch > 99 {
		pitch = 99
	}
	args := []string{"-p", strconv.Itoa(pitch), "-s", wpm}
	if params.Language != "" {
		args = append(args, "-v", params.Language)
	}
	return append(args, text)
}
