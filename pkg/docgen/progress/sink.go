package progress

import (
	"fmt"
	"sync"
	"time"
)

// Levels for progress entries.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Entry is one free-text progress event. This is observability output,
// not a structured protocol; consumers must tolerate arbitrary messages.
type Entry struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher receives entries as they happen, e.g. a websocket hub
// streaming them to a live client. Publishing is fire-and-forget.
type Publisher interface {
	PublishProgress(sessionID string, entry Entry)
}

// Sink buffers the progress stream of one pipeline run and fans entries
// out to any attached publishers.
type Sink struct {
	mu         sync.Mutex
	sessionID  string
	entries    []Entry
	publishers []Publisher
}

func NewSink(sessionID string, publishers ...Publisher) *Sink {
	return &Sink{
		sessionID:  sessionID,
		publishers: publishers,
	}
}

func (s *Sink) Info(format string, args ...interface{}) {
	s.emit(LevelInfo, fmt.Sprintf(format, args...))
}

func (s *Sink) Error(format string, args ...interface{}) {
	s.emit(LevelError, fmt.Sprintf(format, args...))
}

func (s *Sink) emit(level, message string) {
	entry := Entry{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	publishers := s.publishers
	s.mu.Unlock()

	for _, p := range publishers {
		p.PublishProgress(s.sessionID, entry)
	}
}

// Entries returns a copy of the buffered stream.
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
