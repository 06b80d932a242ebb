package out

import (
	"go.uber.org/zap"

	calmdto "studybuddy/internal/modules/calm/dto"
	calmout "studybuddy/internal/modules/calm/port/out"
)

// ChannelSink forwards events to a buffered channel and drops them while the
// buffer is full.
type ChannelSink struct {
	ch  chan calmdto.Event
	log *zap.Logger
}

func NewChannelSink(buffer int, log *zap.Logger) *ChannelSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChannelSink{ch: make(chan calmdto.Event, buffer), log: log}
}

var _ calmout.EventSink = (*ChannelSink)(nil)

func (s *ChannelSink) Publish(e calmdto.Event) {
	select {
	case s.ch <- e:
	default:
		s.log.Warn("calm event dropped", zap.String("kind", e.Kind))
	}
}

func (s *ChannelSink) Events() <-chan calmdto.Event {
	return s.ch
}

type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) LogSink {
	return LogSink{log: log}
}

func (s LogSink) Publish(e calmdto.Event) {
	s.log.Debug("calm event",
		zap.String("kind", e.Kind),
		zap.Int("elapsed_sec", e.ElapsedSec),
		zap.Int("breaths", e.Breaths))
}

type FanoutSink []calmout.EventSink

func (f FanoutSink) Publish(e calmdto.Event) {
	for _, s := range f {
		s.Publish(e)
	}
}
