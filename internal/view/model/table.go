package model

import (
	"sync"
	"time"

	pmodel "github.com/xiaorui77/ifacex-watch/pkg/model"
)

const (
	StatusMark = "●"

	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Columns of the task table. The first column holds the status indicator.
var Columns = []string{"", "NAME", "RECORDS", "LAST EXECUTED"}

// TaskTable is the displayed task list in table form.
type TaskTable struct {
	mx      sync.RWMutex
	tasks   []pmodel.Task
	updated time.Time
}

func NewTaskTable() *TaskTable {
	return &TaskTable{}
}

// Update replaces the rows wholesale.
func (t *TaskTable) Update(tasks []pmodel.Task, at time.Time) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.tasks = append([]pmodel.Task(nil), tasks...)
	t.updated = at
}

func (t *TaskTable) Reset() {
	t.Update(nil, time.Time{})
}

func (t *TaskTable) GetColumns() int {
	return len(Columns)
}

func (t *TaskTable) GetRows() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return len(t.tasks)
}

func (t *TaskTable) GetRow(row int) []string {
	task, ok := t.Task(row)
	if !ok {
		return nil
	}
	return []string{StatusMark, task.Name, task.Records, task.LastExecuted}
}

func (t *TaskTable) Task(row int) (pmodel.Task, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()
	if row < 0 || row >= len(t.tasks) {
		return pmodel.Task{}, false
	}
	return t.tasks[row], true
}

func (t *TaskTable) Updated() time.Time {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.updated
}

// Failing counts the rows whose last run failed.
func (t *TaskTable) Failing() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	n := 0
	for _, task := range t.tasks {
		if task.Failed() {
			n++
		}
	}
	return n
}

// Status maps laststatus to the indicator state. Anything but the literal
// "true" is shown as failed.
func Status(task pmodel.Task) string {
	if task.Passed() {
		return StatusOK
	}
	return StatusFailed
}
