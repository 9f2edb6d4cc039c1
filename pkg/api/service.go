package api

import (
	"log/slog"
	"sync/atomic"

	"github.com/hazyhaar/zhanalyzer/pkg/analysis"
	"github.com/hazyhaar/zhanalyzer/pkg/dict"
	"github.com/hazyhaar/zhanalyzer/pkg/pinyin"
)

// State is one consistent snapshot of loaded tables and assembled
// pipelines. It is never modified after it is published.
type State struct {
	Tables      *dict.Registry
	Profiles    *analysis.Registry
	Syllabifier *pinyin.Syllabifier
}

// Service serves the current State to both transports. A reload builds a
// new State and swaps it in; in-flight requests finish on the old one.
type Service struct {
	state  atomic.Pointer[State]
	logger *slog.Logger
}

// NewService creates a service over an initial state.
func NewService(st *State, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{logger: logger}
	s.state.Store(st)
	return s
}

// Swap publishes a new state.
func (s *Service) Swap(st *State) {
	s.state.Store(st)
}

// State returns the current state.
func (s *Service) State() *State {
	return s.state.Load()
}
