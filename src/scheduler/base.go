package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ScheduledTask runs a function on a cron schedule until cancelled. A tick
// that fires while the previous run is still going is skipped.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
	once   sync.Once
}

func NewScheduledTask(cronSpec string, logger *logrus.Logger, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logger)),
		cron.SkipIfStillRunning(cron.PrintfLogger(logger)),
	))
	cancel := make(chan struct{})
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
			taskFunc()
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Every schedules taskFunc at a fixed interval.
func Every(interval time.Duration, logger *logrus.Logger, taskFunc func()) (*ScheduledTask, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %s", interval)
	}
	return NewScheduledTask("@every "+interval.String(), logger, taskFunc)
}

// Cancel stops future runs and waits for a running one to finish.
func (s *ScheduledTask) Cancel() {
	s.once.Do(func() {
		close(s.cancel)
		s.cron.Remove(s.cronID)
		<-s.cron.Stop().Done()
	})
}
