package types

import (
	"context"
	"time"

	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

// Fetcher retrieves the task list. It must return within timeout; a request
// still running at that point is aborted and reported as a timeout.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (*model.TaskList, error)
}

// Listener receives the polling client's state changes. Calls happen on the
// polling goroutine, never while engine locks are held.
type Listener interface {
	PollStarted(trigger Trigger)
	TasksUpdated(tasks []model.Task)
	PollFailed(err error)
}

// Notifier drives the feedback devices.
type Notifier interface {
	Vibrate()
	Alert()
}

type Router interface {
	Replace(route Route)
}
