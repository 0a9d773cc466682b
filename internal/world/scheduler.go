package world

import "sync"

// Scheduler откладывает задачи на следующий шаг планировщика хоста.
// Это единственная асинхронность аддона: задача выполняется ровно один раз при ближайшем Flush.
type Scheduler struct {
	mu    sync.Mutex
	queue []func()
}

// NewScheduler создает пустой планировщик
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RunLater ставит задачу в очередь следующего шага
func (s *Scheduler) RunLater(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// Flush выполняет задачи, поставленные до вызова.
// Задачи, добавленные во время Flush, ждут следующего шага.
func (s *Scheduler) Flush() int {
	s.mu.Lock()
	tasks := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Pending возвращает количество задач в очереди
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
