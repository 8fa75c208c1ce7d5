package worker

import (
	"errors"
	"mandelbrot/misc"
	"mandelbrot/render"
	"mandelbrot/rpc"
	"mandelbrot/task"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// allTasksHandedOut is the text of the coordinator's ErrAllTasksHandedOut as it arrives over rpc.
const allTasksHandedOut = "all tasks handed out"

// Worker pulls bands from a coordinator, renders them locally and sends the pixels back.
type Worker struct {
	client         *rpc.TcpClient
	logger         bslogger.Logger
	rollCall       time.Duration
	settings       Settings
	tasksCompleted int
}

// NewWorker connects to the coordinator and registers with it.
func NewWorker(settings Settings) (*Worker, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	worker := &Worker{
		client:   rpc.NewTcpClient(settings.CoordinatorAddress, "WorkerClient "+settings.Name),
		logger:   misc.NewLogger("Worker " + settings.Name),
		settings: settings,
	}
	worker.logger.Debug(settings.String())

	if err := worker.client.Connect(); err != nil {
		return nil, err
	}
	if err := worker.client.Call("Coordinator.RegisterWorker", settings.Name, &worker.rollCall); err != nil {
		misc.CheckError(worker.client.Disconnect(), worker.logger, misc.Warning)
		return nil, err
	}
	worker.logger.Debugf("Answering roll call every %s", worker.rollCall)
	return worker, nil
}

// answerRollCall checks in with the coordinator until stop is closed so the bands this worker holds are not handed
// to someone else.
func (w *Worker) answerRollCall(stop <-chan struct{}) {
	rollCall := time.NewTicker(w.rollCall)
	defer rollCall.Stop()

	for {
		select {
		case <-stop:
			return
		case <-rollCall.C:
			var present bool
			if err := w.client.Call("Coordinator.RollCall", w.settings.Name, &present); err != nil {
				w.logger.Warningf("Missed roll call: %s", err)
			}
		}
	}
}

func (w *Worker) TasksCompleted() int {
	return w.tasksCompleted
}

// ProcessTasks renders bands until the coordinator has nothing left, then leaves.
func (w *Worker) ProcessTasks() error {
	w.logger.Info("Processing tasks")

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.answerRollCall(stop)
	}()

	var startTime = time.Now()
	var processErr error
	for {
		var taskTodo task.Task
		err := w.client.Call("Coordinator.GetTask", w.settings.Name, &taskTodo)
		if err != nil {
			// This is an expected error. No more work to do
			if err.Error() == allTasksHandedOut {
				break
			}
			processErr = err
			break
		}

		pixels := make([]byte, taskTodo.Band.End()-taskTodo.Band.Start())
		render.Band(pixels, taskTodo.Band)

		var ok bool
		err = w.client.Call("Coordinator.ReturnTask", task.NewResult(taskTodo, pixels), &ok)
		if err != nil {
			var serverErr rpc.ServerError
			if errors.As(err, &serverErr) {
				// Somebody else already delivered this band
				w.logger.Warningf("Coordinator refused band %d: %s", taskTodo.Band.ID, err)
				continue
			}
			processErr = err
			break
		}
		w.tasksCompleted++
	}

	close(stop)
	wg.Wait()
	w.logger.Infof("Processed %d tasks in %s", w.tasksCompleted, time.Since(startTime))

	var ok bool
	if processErr == nil {
		misc.CheckError(w.client.Call("Coordinator.DeRegisterWorker", w.settings.Name, &ok), w.logger, misc.Warning)
	}
	misc.CheckError(w.client.Disconnect(), w.logger, misc.Warning)
	return processErr
}
