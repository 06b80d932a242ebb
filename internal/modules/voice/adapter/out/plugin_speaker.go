package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	voicerpc "studybuddy/internal/modules/voice/adapter/out/rpc"
	"studybuddy/internal/modules/voice/dto"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 2 * time.Second
)

// PluginSpeaker forwards speech to an out-of-process voice plugin. The plugin
// is started on first use and kept until Close.
type PluginSpeaker struct {
	binary string

	mu     sync.Mutex
	client *plugin.Client
	rpc    voicerpc.VoicePluginClient
}

func NewPluginSpeaker(binary string) *PluginSpeaker {
	return &PluginSpeaker{binary: binary}
}

func (s *PluginSpeaker) Speak(ctx context.Context, text string, params dto.SpeechParams) error {
	client, err := s.connect()
	if err != nil {
		return err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	resp, err := client.Speak(callCtx, &voicerpc.SpeakRequest{
		Text:     text,
		Language: params.Language,
		Pitch:    params.Pitch,
		Rate:     params.Rate,
		Volume:   params.Volume,
	})
	if err != nil {
		return fmt.Errorf("plugin speak: %w", err)
	}
	if !resp.Accepted {
		return fmt.Errorf("plugin rejected speech: %s", resp.Detail)
	}
	return nil
}

func (s *PluginSpeaker) Stop(ctx context.Context) error {
	client, err := s.connect()
	if err != nil {
		return err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	if err := client.Stop(callCtx); err != nil {
		return fmt.Errorf("plugin stop: %w", err)
	}
	return nil
}

func (s *PluginSpeaker) Metadata(ctx context.Context) (*voicerpc.Metadata, error) {
	client, err := s.connect()
	if err != nil {
		return nil, err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	return meta, nil
}

// Close kills the plugin process. It is safe to call more than once.
func (s *PluginSpeaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Kill()
	}
	s.client = nil
	s.rpc = nil
}

func (s *PluginSpeaker) connect() (voicerpc.VoicePluginClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rpc != nil && s.client != nil && !s.client.Exited() {
		return s.rpc, nil
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  voicerpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          voicerpc.PluginMap(nil),
		Cmd:              exec.Command(s.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start voice plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(voicerpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense voice plugin: %w", err)
	}
	typed, ok := raw.(voicerpc.VoicePluginClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("voice plugin rpc client type mismatch")
	}
	s.client = client
	s.rpc = typed
	return typed, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
