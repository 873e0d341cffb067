package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tradesim/pkg/logger"
)

// Task is a named recurring job. The scheduler fires Run on its own
// goroutine whenever the interval elapses while the task is active.
type Task struct {
	ID       string
	Name     string
	Interval time.Duration
	NextRun  time.Time
	Status   string // "active", "paused"
	Run      func()
}

type Scheduler struct {
	tasks  map[string]*Task
	mu     sync.RWMutex
	logger logger.Logger
	stop   chan struct{}
}

func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{
		tasks:  make(map[string]*Task),
		logger: log,
		stop:   make(chan struct{}),
	}
}

func (s *Scheduler) Schedule(task *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.NextRun.IsZero() {
		task.NextRun = time.Now().Add(task.Interval)
	}
	task.Status = "active"

	s.tasks[task.ID] = task
	s.logger.Info("Scheduled task", map[string]interface{}{
		"id":       task.ID,
		"name":     task.Name,
		"interval": task.Interval.String(),
	})
}

func (s *Scheduler) Pause(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.tasks[id]; ok {
		task.Status = "paused"
	}
}

func (s *Scheduler) Resume(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.tasks[id]; ok {
		task.Status = "active"
		task.NextRun = time.Now().Add(task.Interval)
	}
}

func (s *Scheduler) Start() {
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.processTasks()
			case <-s.stop:
				ticker.Stop()
				return
			}
		}
	}()
	s.logger.Info("Scheduler started", nil)
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) processTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, task := range s.tasks {
		if task.Status == "active" && now.After(task.NextRun) {
			// Run on its own goroutine so a slow task cannot stall the loop.
			go task.Run()
			task.NextRun = now.Add(task.Interval)
		}
	}
}
