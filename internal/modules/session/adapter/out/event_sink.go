package out

import (
	"go.uber.org/zap"

	sessiondto "studybuddy/internal/modules/session/dto"
	sessionout "studybuddy/internal/modules/session/port/out"
)

// ChannelSink forwards events to a buffered channel. Events published while
// the buffer is full are dropped.
type ChannelSink struct {
	ch  chan sessiondto.Event
	log *zap.Logger
}

func NewChannelSink(buffer int, log *zap.Logger) *ChannelSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChannelSink{ch: make(chan sessiondto.Event, buffer), log: log}
}

var _ sessionout.EventSink = (*ChannelSink)(nil)

func (s *ChannelSink) Publish(e sessiondto.Event) {
	select {
	case s.ch <- e:
	default:
		s.log.Warn("event dropped", zap.String("kind", e.Kind))
	}
}

func (s *ChannelSink) Events() <-chan sessiondto.Event {
	return s.ch
}

// LogSink writes every event to the logger.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) LogSink {
	return LogSink{log: log}
}

func (s LogSink) Publish(e sessiondto.Event) {
	s.log.Debug("session event",
		zap.String("kind", e.Kind),
		zap.String("session_id", e.SessionID),
		zap.Int("elapsed_sec", e.ElapsedSec),
		zap.String("text", e.Text))
}

// FanoutSink publishes to every sink in order.
type FanoutSink []sessionout.EventSink

func (f FanoutSink) Publish(e sessiondto.Event) {
	for _, s := range f {
		s.Publish(e)
	}
}
