package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-plugin"

	voicerpc "studybuddy/internal/modules/voice/adapter/out/rpc"
)

// server writes utterances to stderr, which the host forwards to its logger.
type server struct {
	mu     sync.Mutex
	spoken int
}

func (s *server) GetMetadata(_ context.Context, _ *voicerpc.Empty) (*voicerpc.Metadata, error) {
	return &voicerpc.Metadata{
		Name:      "voice-console",
		Version:   "1.0.0",
		Languages: []string{"en-US", "en-GB"},
	}, nil
}

func (s *server) Speak(_ context.Context, in *voicerpc.SpeakRequest) (*voicerpc.SpeakResponse, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return &voicerpc.SpeakResponse{Accepted: false, Detail: "empty text"}, nil
	}
	s.mu.Lock()
	s.spoken++
	n := s.spoken
	s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "[%d] %s lang=%s pitch=%.2f rate=%.2f volume=%.2f\n", n, text, in.Language, in.Pitch, in.Rate, in.Volume)
	return &voicerpc.SpeakResponse{Accepted: true, Detail: fmt.Sprintf("utterance %d", n)}, nil
}

func (s *server) Stop(_ context.Context, _ *voicerpc.Empty) (*voicerpc.Empty, error) {
	return &voicerpc.Empty{}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: voicerpc.HandshakeConfig,
		Plugins:         voicerpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
