package render

import (
	"fmt"
	"runtime"
)

type Settings struct {
	// Threads is the number of bands an image is split into. Zero means one per CPU.
	Threads int
}

func (s *Settings) String() string {
	return fmt.Sprintf("{Renderer Settings Threads: %d}", s.Threads)
}

func (s *Settings) Verify() error {
	if s.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", s.Threads)
	}
	if s.Threads == 0 {
		s.Threads = max(runtime.NumCPU(), 1)
	}
	return nil
}
