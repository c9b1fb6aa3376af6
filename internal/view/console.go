package view

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
	pmodel "github.com/xiaorui77/ifacex-watch/pkg/model"
)

const bell = "\a"

// Console is the headless front end: it prints every poll result as a
// table and rings the terminal bell on alerts.
type Console struct {
	mx  sync.Mutex
	out io.Writer
	now func() time.Time

	routes chan types.Route
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		now:    time.Now,
		routes: make(chan types.Route, 1),
	}
}

func (c *Console) PollStarted(trigger types.Trigger) {
	if trigger != types.TriggerInitial {
		logrus.Infof("[console] Reload...")
	}
}

func (c *Console) TasksUpdated(tasks []pmodel.Task) {
	c.mx.Lock()
	defer c.mx.Unlock()
	fmt.Fprintf(c.out, "-- %s, %d tasks\n", c.now().Format("2006-01-02 15:04:05"), len(tasks))
	writeTasks(c.out, tasks)
}

func (c *Console) PollFailed(err error) {
	c.mx.Lock()
	defer c.mx.Unlock()
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

func (c *Console) Vibrate() {
	logrus.Warnf("[console] failing tasks present")
}

func (c *Console) Alert() {
	c.mx.Lock()
	defer c.mx.Unlock()
	_, _ = io.WriteString(c.out, bell)
}

// Replace records the route; headless runs end when sent to Login.
func (c *Console) Replace(route types.Route) {
	logrus.Infof("[console] route to %v", route)
	select {
	case c.routes <- route:
	default:
	}
}

// Routes delivers route changes requested by the engine.
func (c *Console) Routes() <-chan types.Route {
	return c.routes
}

// PrintTasks writes tasks as an aligned table.
func PrintTasks(out io.Writer, tasks []pmodel.Task) {
	writeTasks(out, tasks)
}

func writeTasks(out io.Writer, tasks []pmodel.Task) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tNAME\tRECORDS\tLAST EXECUTED")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", statusText(t), t.Name, t.Records, t.LastExecuted)
	}
	_ = w.Flush()
}

func statusText(t pmodel.Task) string {
	if model.Status(t) == model.StatusOK {
		return "OK"
	}
	return "FAIL"
}
