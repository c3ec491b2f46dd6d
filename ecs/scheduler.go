package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
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

// scheduled is one registered system with the queries it reads and its timings.
type scheduled struct {
	system  System
	queries []executor
	stats   SystemStats
}

func (e *scheduled) run(frame *UpdateFrame) {
	start := time.Now()
	for _, q := range e.queries {
		q.Execute()
	}
	e.system.Execute(frame)
	d := time.Since(start)

	st := &e.stats
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	st.MaxDuration = max(st.MaxDuration, d)
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// Scheduler runs systems against one world in registration order. Commands queued by the
// systems are flushed once all of them ran.
type Scheduler struct {
	world   *World
	entries []*scheduled
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{world: world}
}

// World returns the world the scheduler drives.
func (s *Scheduler) World() *World {
	return s.world
}

// Register adds a system named after its type and initializes its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.RegisterNamed(systemName(system), system)
}

// RegisterNamed adds a system under the given name, used by GetStats. Use it for
// SystemFunc values, which would all be reported under the same type name.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.entries = append(s.entries, &scheduled{
		system:  system,
		queries: bindFields(s.world, system),
		stats:   SystemStats{Name: name},
	})
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// bindFields initializes the exported Query and Singleton fields of a system struct and
// returns the queries so they can be refreshed before each run.
func bindFields(world *World, system System) []executor {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var queries []executor
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		init := field.Addr().MethodByName("Init")
		if !init.IsValid() {
			panic("ecs: no Init method on system field " + v.Type().Field(i).Name)
		}
		init.Call([]reflect.Value{reflect.ValueOf(world)})

		if exec, ok := field.Addr().Interface().(executor); ok && isQuery {
			queries = append(queries, exec)
		}
	}
	return queries
}

// Once executes all registered systems once with the given delta time,
// then flushes the deferred commands they queued.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.world)
	for _, e := range s.entries {
		e.run(frame)
	}
	frame.Commands.Flush()
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
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

// GetStats returns a snapshot of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, len(s.entries)),
	}
	for i, e := range s.entries {
		stats.Systems[i] = e.stats
		stats.TotalExecutions += e.stats.ExecutionCount
	}
	return stats
}
