package server

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Maintenance runs periodic housekeeping (currently only the chunk GC
// hook registered through ScheduleChunkGC) on a cron schedule, guarding
// against overlapping runs the way a scheduled backup job would.
type Maintenance struct {
	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewMaintenance builds a Maintenance scheduler with no jobs registered.
func NewMaintenance() *Maintenance {
	return &Maintenance{
		cron: cron.New(),
	}
}

// ScheduleChunkGC registers a job that asks sweep to drop chunk data the
// server isn't tracking a loaded viewer for anymore, at the given cron
// spec (a standard five-field cron expression or a descriptor such as
// "@every 5m").
func (m *Maintenance) ScheduleChunkGC(spec string, sweep func()) error {
	_, err := m.cron.AddFunc(spec, func() {
		m.runOnce("chunk-gc", sweep)
	})
	return err
}

func (m *Maintenance) runOnce(name string, fn func()) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		logrus.WithField("job", name).Warn("maintenance job still running, skipping this tick")
		return
	}
	m.running = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	start := time.Now()
	fn()
	logrus.WithField("job", name).WithField("duration", time.Since(start)).Debug("maintenance job completed")
}

// Start begins running scheduled jobs.
func (m *Maintenance) Start() { m.cron.Start() }

// Stop waits for any in-flight job to finish, then halts scheduling.
func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
}
