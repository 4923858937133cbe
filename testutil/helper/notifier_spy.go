package helper

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// NotifierSpy captures notification texts for testing. It implements shell.Notifier.
type NotifierSpy struct {
	mu    sync.Mutex
	texts []string
}

var _ shell.Notifier = (*NotifierSpy)(nil)

// NewNotifierSpy creates an empty NotifierSpy.
func NewNotifierSpy() *NotifierSpy {
	return &NotifierSpy{}
}

// Notify records the text.
func (s *NotifierSpy) Notify(_ context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.texts = append(s.texts, text)
}

// Texts returns a copy of all captured texts in the order they arrived.
func (s *NotifierSpy) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	texts := make([]string, len(s.texts))
	copy(texts, s.texts)

	return texts
}

// Count returns the number of captured texts.
func (s *NotifierSpy) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.texts)
}
