package refresh

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule runs a job on a wall-clock cadence for the headless front-end.
type Schedule struct {
	Cron *cron.Cron
}

func NewSchedule() *Schedule {
	return &Schedule{Cron: cron.New(cron.WithSeconds())}
}

// Every registers job to run once per interval. Intervals are rounded to
// whole seconds by cron.
func (s *Schedule) Every(interval time.Duration, job func()) error {
	if interval < time.Second {
		return fmt.Errorf("refresh interval %s is below one second", interval)
	}
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.Cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	return nil
}

func (s *Schedule) Start() {
	s.Cron.Start()
	log.Println("[INFO] refresh schedule started")
}

// Stop halts the schedule and waits for a running job to return.
func (s *Schedule) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] refresh schedule stopped")
}
