package renderer

import (
	"image/color"
	"runtime"
	"sync"
)

// SpanTask is a horizontal run of pixels [X0, X1) on row Y
type SpanTask struct {
	TaskID int
	Y      int
	X0, X1 int
	Out    []color.RGBA // Destination for the span, len(Out) == X1-X0
}

// SpanResult is sent back once a span has been shaded
type SpanResult struct {
	TaskID  int
	Samples int // Primary rays traced for the span
}

// shadeFunc computes one pixel and reports how many samples it took
type shadeFunc func(x, y int) (color.RGBA, int)

// WorkerPool manages parallel span rendering
type WorkerPool struct {
	taskQueue   chan SpanTask
	resultQueue chan SpanResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual span rendering tasks
type Worker struct {
	ID          int
	shade       shadeFunc
	taskQueue   chan SpanTask
	resultQueue chan SpanResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds how many tasks can be in flight in one batch.
func NewWorkerPool(shade shadeFunc, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan SpanTask, queueSize),
		resultQueue: make(chan SpanResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			shade:       shade,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a span task to the worker pool
func (wp *WorkerPool) SubmitTask(task SpanTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed span result
func (wp *WorkerPool) GetResult() (SpanResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// RunBatch submits every task and blocks until all of them are done,
// returning the total number of samples taken
func (wp *WorkerPool) RunBatch(tasks []SpanTask) int {
	for _, task := range tasks {
		wp.SubmitTask(task)
	}
	samples := 0
	for range tasks {
		result, _ := wp.GetResult()
		samples += result.Samples
	}
	return samples
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Spans never overlap, so writing to the shared buffer is thread-safe
		samples := 0
		for x := task.X0; x < task.X1; x++ {
			c, n := w.shade(x, task.Y)
			task.Out[x-task.X0] = c
			samples += n
		}

		w.resultQueue <- SpanResult{
			TaskID:  task.TaskID,
			Samples: samples,
		}
	}
}

// splitRow divides a row of the given width into at most parts contiguous spans
func splitRow(y, width, parts int, out []color.RGBA) []SpanTask {
	if parts > width {
		parts = width
	}
	if parts < 1 {
		parts = 1
	}
	tasks := make([]SpanTask, 0, parts)
	for p := 0; p < parts; p++ {
		x0 := p * width / parts
		x1 := (p + 1) * width / parts
		tasks = append(tasks, SpanTask{
			TaskID: p,
			Y:      y,
			X0:     x0,
			X1:     x1,
			Out:    out[x0:x1],
		})
	}
	return tasks
}
