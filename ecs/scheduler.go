package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// storageBinder is implemented by Query and Singleton fields.
type storageBinder interface {
	Init(storage *Storage)
}

// executor is implemented by Query fields.
type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   SystemStats
}

// Scheduler runs systems against one Storage in registration order.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
	frames   int64
}

// NewScheduler creates a scheduler for storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends system to the run order and binds its Query and Singleton
// fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	entry := &registeredSystem{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	}
	entry.queries = s.bindFields(system)
	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) []executor {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	value = value.Elem()

	var queries []executor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		addr := field.Addr().Interface()
		binder, ok := addr.(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := addr.(executor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes every registered system once with delta time dt, refreshing
// each system's queries right before it runs, then flushes the frame's
// commands.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{
		DeltaTime: dt,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
	s.frames++
}

func (r *registeredSystem) record(d time.Duration) {
	st := &r.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
}

// Run executes Once at the given interval until ctx is done, passing the wall
// clock time between ticks as the delta.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of the execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		st := entry.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
