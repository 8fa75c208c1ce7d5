package coordinator

import (
	"fmt"
	"mandelbrot/misc"
	"runtime"
	"time"
)

type Settings struct {
	// Bands is the number of bands the image is split into for workers. Zero means one per local CPU.
	Bands     int
	HeartBeat time.Duration
	// MissedRollCalls is how many roll calls in a row a worker may miss before its bands are handed to someone else.
	MissedRollCalls int
	// RollCall is how often workers have to check in.
	RollCall      time.Duration
	ServerAddress string
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Bands: %d\n", s.Bands)
	output += fmt.Sprintf("Heart Beat: %s\n", s.HeartBeat)
	output += fmt.Sprintf("Missed Roll Calls: %d\n", s.MissedRollCalls)
	output += fmt.Sprintf("Roll Call: %s\n", s.RollCall)
	output += fmt.Sprintf("Server Address: %s", s.ServerAddress)
	return output
}

func (s *Settings) Verify() error {
	if s.Bands < 0 {
		return fmt.Errorf("band count must not be negative, got %d", s.Bands)
	}
	if s.Bands == 0 {
		s.Bands = max(runtime.NumCPU(), 1)
	}
	if s.HeartBeat <= 0 {
		s.HeartBeat = 30 * time.Second
	}
	if s.MissedRollCalls < 0 {
		return fmt.Errorf("missed roll calls must not be negative, got %d", s.MissedRollCalls)
	}
	if s.MissedRollCalls == 0 {
		s.MissedRollCalls = 3
	}
	if s.RollCall <= 0 {
		s.RollCall = 10 * time.Second
	}
	if s.ServerAddress == "" {
		s.ServerAddress = fmt.Sprintf("%s:%s", misc.LocalAddressOr("127.0.0.1"), "51000")
	}
	return nil
}
