package engine

import "fmt"

// ProgressSink receives the monotonically increasing count of frames handed
// to the encoder. The engine calls Advance from a single goroutine.
type ProgressSink interface {
	Advance(n int)
}

// NopSink discards progress. Used in tests and when no reporting is wanted.
type NopSink struct{}

func (NopSink) Advance(int) {}

// ConsoleSink prints progress to stdout.
type ConsoleSink struct {
	Total int
	done  int
}

func (s *ConsoleSink) Advance(n int) {
	s.done += n
	fmt.Printf("\r[>] Encoded: %d/%d", s.done, s.Total)
	if s.done >= s.Total {
		fmt.Println()
	}
}
