package task

import (
	"fmt"
)

// Task is a band checked out by a remote worker.
type Task struct {
	Band          Band
	WorkerAddress string
}

func NewTask(band Band) Task {
	return Task{
		Band: band,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("Band: %s ", t.Band.String())
	output += fmt.Sprintf("Worker Address: %s}", t.WorkerAddress)
	return output
}

// Result carries the rendered bytes of one band back from a worker.
type Result struct {
	BandID        int
	Pixels        []byte
	WorkerAddress string
}

func NewResult(t Task, pixels []byte) Result {
	return Result{
		BandID:        t.Band.ID,
		Pixels:        pixels,
		WorkerAddress: t.WorkerAddress,
	}
}

func (r *Result) String() string {
	output := "{Result "
	output += fmt.Sprintf("Band ID: %d ", r.BandID)
	output += fmt.Sprintf("Pixel Count: %d ", len(r.Pixels))
	output += fmt.Sprintf("Worker Address: %s}", r.WorkerAddress)
	return output
}
