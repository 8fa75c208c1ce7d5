package coordinator

import (
	"errors"
	"fmt"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/rpc"
	"mandelbrot/task"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// ErrAllTasksHandedOut tells a worker there is nothing left for it to do. Workers match on its text since errors
// cross the rpc boundary as strings.
var ErrAllTasksHandedOut = errors.New("all tasks handed out")

// Coordinator hands the bands of a single render out to remote workers and stitches their results into one buffer.
type Coordinator struct {
	bands          []task.Band
	done           chan struct{}
	ingested       map[int]bool
	logger         bslogger.Logger
	mutex          sync.Mutex
	options        mandelbrot.Options
	pixels         []byte
	remaining      int
	settings       Settings
	startTime      time.Time
	stopped        chan struct{}
	tasksHandedOut map[string]map[int]task.Task // keep track of all tasks workers have
	tasksTodo      chan task.Task
	workers        map[string]time.Time // last time each worker checked in

	Server *rpc.TcpServer
}

func NewCoordinator(settings Settings, options mandelbrot.Options) (*Coordinator, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	if err := options.Verify(); err != nil {
		return nil, err
	}

	bands := task.Partition(options, settings.Bands)
	coordinator := &Coordinator{
		bands:          bands,
		done:           make(chan struct{}),
		ingested:       make(map[int]bool),
		logger:         misc.NewLogger("Coordinator"),
		options:        options,
		pixels:         make([]byte, options.Bounds.Pixels()),
		settings:       settings,
		startTime:      time.Now(),
		stopped:        make(chan struct{}),
		tasksHandedOut: make(map[string]map[int]task.Task),
		tasksTodo:      make(chan task.Task, len(bands)),
		workers:        make(map[string]time.Time),
	}
	for _, band := range bands {
		if band.Empty() {
			continue
		}
		coordinator.tasksTodo <- task.NewTask(band)
		coordinator.remaining++
	}
	coordinator.logger.Debug(settings.String())
	coordinator.logger.Infof("Queued %d bands for %s", coordinator.remaining, options.String())

	// Start up the rpc tcp server to allow workers to communicate with the coordinator
	coordinator.Server = rpc.NewTcpServer(coordinator, settings.ServerAddress, "CoordinatorServer")
	if err := coordinator.Server.Run(); err != nil {
		return nil, err
	}

	go coordinator.tickers()
	return coordinator, nil
}

func (c *Coordinator) tickers() {
	rollCall := time.NewTicker(c.settings.RollCall)
	defer rollCall.Stop()
	heartBeat := time.NewTicker(c.settings.HeartBeat)
	defer heartBeat.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-c.stopped:
			return
		case now := <-rollCall.C:
			c.rollCall(now)
		case <-heartBeat.C:
			c.mutex.Lock()
			c.logger.Infof("Bands [Ingested: %d/%d] [Queued: %d] | Workers: %d", len(c.ingested), len(c.ingested)+c.remaining, len(c.tasksTodo), len(c.workers))
			c.mutex.Unlock()
		}
	}
}

// Address is where workers should connect.
func (c *Coordinator) Address() string {
	return c.Server.Address()
}

// Wait blocks until every band has come back and returns the assembled image buffer.
func (c *Coordinator) Wait() []byte {
	<-c.done
	return c.pixels
}

// Stop closes the server. Workers already connected can still finish their calls.
func (c *Coordinator) Stop() error {
	err := c.Server.Stop()
	if err == nil {
		close(c.stopped)
	}
	return err
}

// rollCall drops every worker that has not checked in for MissedRollCalls roll calls, which requeues the bands it
// was holding.
func (c *Coordinator) rollCall(now time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	limit := time.Duration(c.settings.MissedRollCalls) * c.settings.RollCall
	for workerAddress, lastSeen := range c.workers {
		if now.Sub(lastSeen) > limit {
			c.logger.Warningf("Worker %s missed roll call, last seen %s ago", workerAddress, now.Sub(lastSeen))
			c.deregister(workerAddress)
		}
	}
}

// RegisterWorker replies with how often the worker has to answer roll call.
func (c *Coordinator) RegisterWorker(workerAddress string, rollCall *time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.checkIn(workerAddress)
	*rollCall = c.settings.RollCall
	return nil
}

// checkIn must be called with the mutex held.
func (c *Coordinator) checkIn(workerAddress string) {
	if _, ok := c.workers[workerAddress]; !ok {
		c.tasksHandedOut[workerAddress] = make(map[int]task.Task)
		c.logger.Infof("Worker joined: %s", workerAddress)
	}
	c.workers[workerAddress] = time.Now()
}

// DeRegisterWorker forgets a worker and puts the bands it never returned back in the queue.
func (c *Coordinator) DeRegisterWorker(workerAddress string, reply *bool) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.workers[workerAddress]; !ok {
		return fmt.Errorf("unknown worker %s", workerAddress)
	}
	c.deregister(workerAddress)
	*reply = true
	return nil
}

// deregister must be called with the mutex held.
func (c *Coordinator) deregister(workerAddress string) {
	for _, v := range c.tasksHandedOut[workerAddress] {
		// The queue has room for every band so this never blocks
		v.WorkerAddress = ""
		c.tasksTodo <- v
		c.logger.Warningf("Requeued band %d from worker %s", v.Band.ID, workerAddress)
	}
	delete(c.tasksHandedOut, workerAddress)
	delete(c.workers, workerAddress)
	c.logger.Infof("Worker left: %s", workerAddress)
}

// RollCall is how a worker tells the coordinator it is still alive. A worker that was already dropped joins again.
func (c *Coordinator) RollCall(workerAddress string, present *bool) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.checkIn(workerAddress)
	*present = true
	return nil
}

// GetTask waits for a band to hand out. Once every band has been ingested it returns ErrAllTasksHandedOut.
func (c *Coordinator) GetTask(workerAddress string, reply *task.Task) error {
	for {
		select {
		case todo := <-c.tasksTodo:
			c.mutex.Lock()
			// A requeued band may have been returned late by the worker that dropped it
			if c.ingested[todo.Band.ID] {
				c.mutex.Unlock()
				continue
			}
			c.checkIn(workerAddress)
			todo.WorkerAddress = workerAddress
			c.tasksHandedOut[workerAddress][todo.Band.ID] = todo
			c.mutex.Unlock()

			c.logger.Debugf("Handed band %d to %s", todo.Band.ID, workerAddress)
			*reply = todo
			return nil
		case <-c.done:
			c.logger.Debugf("Telling worker %s that all tasks are handed out", workerAddress)
			return ErrAllTasksHandedOut
		}
	}
}

// ReturnTask copies a finished band into its own range of the image buffer. Results for unknown bands, bands already
// ingested or of the wrong size are rejected.
func (c *Coordinator) ReturnTask(result task.Result, reply *bool) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if result.BandID < 0 || result.BandID >= len(c.bands) {
		return fmt.Errorf("unknown band %d", result.BandID)
	}
	if c.ingested[result.BandID] {
		return fmt.Errorf("band %d already returned", result.BandID)
	}
	band := c.bands[result.BandID]
	if len(result.Pixels) != band.End()-band.Start() {
		return fmt.Errorf("band %d expects %d pixels but got %d", band.ID, band.End()-band.Start(), len(result.Pixels))
	}

	copy(c.pixels[band.Start():band.End()], result.Pixels)
	c.ingested[band.ID] = true
	for _, handedOut := range c.tasksHandedOut {
		delete(handedOut, band.ID)
	}
	c.remaining--
	c.logger.Debugf("Ingested band %d from %s", band.ID, result.WorkerAddress)

	if c.remaining == 0 {
		c.logger.Infof("Assembled %s pixels from %d bands in %s", misc.FormatCount(len(c.pixels)), len(c.ingested), time.Since(c.startTime))
		close(c.done)
	}
	*reply = true
	return nil
}
