package worker

import (
	"errors"
	"fmt"
	"mandelbrot/misc"
	"os"
)

type Settings struct {
	CoordinatorAddress string
	// Name identifies the worker to the coordinator and must be unique among its workers.
	Name string
}

func (s *Settings) String() string {
	output := "\nWorker settings\n"
	output += fmt.Sprintf("Coordinator Address: %s\n", s.CoordinatorAddress)
	output += fmt.Sprintf("Name: %s", s.Name)
	return output
}

func (s *Settings) Verify() error {
	if s.CoordinatorAddress == "" {
		return errors.New("no coordinator address supplied")
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("%s-%d", misc.LocalAddressOr("localhost"), os.Getpid())
	}
	return nil
}
