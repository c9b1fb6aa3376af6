package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
	"github.com/xiaorui77/ifacex-watch/pkg/errs"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

var (
	ErrNoCredentials = errors.New(errs.MsgMissing)
	ErrStarted       = errors.New("poller already started or stopped")
)

type PollState int

const (
	PollLoading PollState = iota
	PollReady
	PollError
)

var PollStateStatus = map[PollState]string{
	PollLoading: "loading",
	PollReady:   "ready",
	PollError:   "error",
}

func (s PollState) String() string {
	return PollStateStatus[s]
}

// Poller is one main-view session: an immediate poll, a poll every interval
// and manual reloads, until Stop or Logout.
type Poller struct {
	fetcher  types.Fetcher
	store    storage.Store
	interval time.Duration
	timeout  time.Duration

	listener types.Listener
	notifier types.Notifier
	router   types.Router

	mu      sync.Mutex
	state   PollState
	creds   model.Credentials
	tasks   []model.Task
	err     error
	detail  string // id of the inspected task
	gen     uint64 // last issued poll
	applied uint64 // newest poll whose result was applied
	started bool
	closed  bool

	deliver sync.Mutex     // held while a poll applies and reports its result
	polls   sync.WaitGroup // manual polls in flight

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	done     chan struct{}
}

func NewPoller(fetcher types.Fetcher, store storage.Store, interval, timeout time.Duration) *Poller {
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		timeout:  timeout,
		listener: nopListener{},
		notifier: nopNotifier{},
		router:   nopRouter{},
		done:     make(chan struct{}),
	}
}

func (p *Poller) SetListener(l types.Listener) *Poller {
	p.listener = l
	return p
}

func (p *Poller) SetNotifier(n types.Notifier) *Poller {
	p.notifier = n
	return p
}

func (p *Poller) SetRouter(r types.Router) *Poller {
	p.router = r
	return p
}

// Start reads the credentials once for the whole session. Without them it
// routes to Login, schedules nothing and returns ErrNoCredentials.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return ErrStarted
	}
	p.started = true

	creds, err := p.store.Load()
	if err != nil || !creds.Present() {
		p.closed = true
		p.state, p.err = PollError, ErrNoCredentials
		close(p.done)
		p.mu.Unlock()
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			logrus.Warnf("[poller] load credentials failed: %v", err)
		}
		p.listener.PollFailed(ErrNoCredentials)
		p.router.Replace(types.RouteLogin)
		return ErrNoCredentials
	}
	p.creds = creds
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	logrus.Infof("[poller] session started for %v, every %v", creds.EndpointURL, p.interval)
	go p.run()
	return nil
}

// run in blocking mode until the session context ends. done is closed only
// after every manual poll has finished reporting.
func (p *Poller) run() {
	defer close(p.done)
	defer p.polls.Wait()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(types.TriggerInitial)
	for {
		select {
		case <-p.ctx.Done():
			// the parent context may end the session without Stop
			p.Stop()
			logrus.Infof("[poller] session stopped")
			return
		case <-ticker.C:
			p.poll(types.TriggerScheduled)
		}
	}
}

// Reload polls out of band; the schedule keeps its phase.
func (p *Poller) Reload() {
	p.mu.Lock()
	active := p.started && !p.closed
	if active {
		p.polls.Add(1)
	}
	p.mu.Unlock()
	if !active {
		return
	}
	go func() {
		defer p.polls.Done()
		p.poll(types.TriggerManual)
	}()
}

func (p *Poller) poll(trigger types.Trigger) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.gen++
	gen := p.gen
	p.state = PollLoading
	ctx := p.ctx
	url := types.TasksURL(p.creds.EndpointURL, p.creds.APIKey)
	p.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"catalog": "poller", "gen": gen})
	log.Debugf("%v poll", trigger)
	p.deliver.Lock()
	p.emit(gen, func() { p.listener.PollStarted(trigger) })
	p.deliver.Unlock()

	list, err := p.fetcher.Fetch(ctx, url, p.timeout)

	p.deliver.Lock()
	defer p.deliver.Unlock()
	p.mu.Lock()
	if p.closed || gen < p.applied {
		p.mu.Unlock()
		log.Debugf("result discarded")
		return
	}
	p.applied = gen
	if err != nil {
		p.state, p.err = PollError, err
		p.mu.Unlock()
		log.Warnf("poll failed: %v", err)
		p.emit(gen, func() { p.listener.PollFailed(err) })
		return
	}

	tasks := model.ActiveOnly(list.Tasks)
	p.state, p.err, p.tasks = PollReady, nil, tasks
	if p.detail != "" && !containsTask(tasks, p.detail) {
		p.detail = ""
	}
	failed := model.AnyFailed(tasks)
	p.mu.Unlock()

	log.Debugf("%d active tasks, failing: %v", len(tasks), failed)
	if !p.emit(gen, func() { p.listener.TasksUpdated(tasks) }) || !failed {
		return
	}
	if p.emit(gen, p.notifier.Vibrate) && trigger == types.TriggerManual {
		p.emit(gen, p.notifier.Alert)
	}
}

// emit runs fn unless the session has stopped or a newer result has been
// applied. The state is re-read before every callback, since a callback may
// itself stop the session.
func (p *Poller) emit(gen uint64, fn func()) bool {
	p.mu.Lock()
	live := !p.closed && gen >= p.applied
	p.mu.Unlock()
	if live {
		fn()
	}
	return live
}

// Stop ends the session: no poll is issued and no listener or notifier
// callback starts after it returns. It does not block, so callbacks may call
// it; Done reports when in-flight polls have finished. Calling it again is a
// no-op.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		cancel := p.cancel
		p.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
}

// Logout stops the session, clears the stored credentials and routes to
// Login. The route happens even when clearing fails; the StorageError is
// returned.
func (p *Poller) Logout() error {
	p.Stop()
	var err error
	if cerr := p.store.Clear(); cerr != nil {
		logrus.Errorf("[poller] clear credentials failed: %v", cerr)
		err = errs.Storage(cerr)
	}
	logrus.Infof("[poller] logged out")
	p.router.Replace(types.RouteLogin)
	return err
}

// Done is closed once the schedule loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Tasks returns the displayed list.
func (p *Poller) Tasks() []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Task(nil), p.tasks...)
}

func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Select marks a displayed task as inspected. Unknown ids are ignored.
func (p *Poller) Select(id string) (model.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.tasks {
		if t.ID == id {
			p.detail = id
			return t, true
		}
	}
	return model.Task{}, false
}

func (p *Poller) ClearSelection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.detail = ""
}

// Selected returns the inspected task, if any.
func (p *Poller) Selected() (model.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.detail == "" {
		return model.Task{}, false
	}
	for _, t := range p.tasks {
		if t.ID == p.detail {
			return t, true
		}
	}
	return model.Task{}, false
}

func containsTask(tasks []model.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

type nopListener struct{}

func (nopListener) PollStarted(types.Trigger) {}
func (nopListener) TasksUpdated([]model.Task) {}
func (nopListener) PollFailed(error)          {}

type nopNotifier struct{}

func (nopNotifier) Vibrate() {}
func (nopNotifier) Alert()   {}

type nopRouter struct{}

func (nopRouter) Replace(types.Route) {}
