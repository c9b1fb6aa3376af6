package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/config"
	"github.com/xiaorui77/ifacex-watch/internal/engine"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
	pmodel "github.com/xiaorui77/ifacex-watch/pkg/model"
)

const hintText = "[::b]r[::-] Reload  [::b]l[::-] Logout  [::b]Enter[::-] Details  [::b]:[::-] Command  [::b]q[::-] Quit"

// AppUI is the terminal front end. It is the Router and Listener of every
// polling session it starts.
type AppUI struct {
	conf      *config.Config
	login     *engine.Login
	newPoller func() *engine.Poller
	logs      *model.LogsBuffer

	ctx     context.Context
	initial types.Route

	mx     sync.Mutex
	poller *engine.Poller

	app  *tview.Application
	main *tview.Flex

	indicator *tview.TextView
	input     *InputWrap
	flash     *Flash
	content   *PageStack
	hint      *tview.TextView

	loginPage *LoginPage
	taskPage  *TaskPage
	logsPage  *LogsPage

	screen  tcell.Screen
	actions map[tcell.Key]*KeyAction
}

func NewUI(conf *config.Config, login *engine.Login, newPoller func() *engine.Poller, logs *model.LogsBuffer) *AppUI {
	return &AppUI{
		conf:      conf,
		login:     login,
		newPoller: newPoller,
		logs:      logs,
		ctx:       context.Background(),
		app:       tview.NewApplication(),
		actions:   map[tcell.Key]*KeyAction{},
	}
}

// Init builds the layout. initial is the route chosen by the session gate.
func (ui *AppUI) Init(initial types.Route) {
	ui.initial = initial
	ui.main = tview.NewFlex().SetDirection(tview.FlexRow)

	ui.indicator = tview.NewTextView()
	ui.indicator.SetTextAlign(tview.AlignCenter)
	ui.indicator.SetDynamicColors(true)
	ui.indicator.SetText("ifacex watch")

	ui.input = NewInputWrap(ui, ui.runCmd)
	ui.input.Init()
	ui.flash = NewFlash(ui, ui.conf.Poll.Flash)

	ui.loginPage = NewLoginPage(ui)
	ui.loginPage.Init()
	ui.taskPage = NewTaskPage(ui)
	ui.taskPage.Init()
	ui.logsPage = NewLogsPage(ui, ui.logs)
	ui.logsPage.Init()
	ui.content = NewPageStack(ui)
	ui.content.Init(ui.loginPage, ui.taskPage, ui.logsPage, NewNotFoundPage())

	ui.hint = tview.NewTextView().SetDynamicColors(true).SetText(hintText)

	ui.main.AddItem(ui.indicator, 1, 1, false)
	ui.main.AddItem(ui.input, 0, 0, false)
	ui.main.AddItem(ui.flash, 0, 0, false)
	ui.main.AddItem(ui.content, 0, 10, true)
	ui.main.AddItem(ui.hint, 0, 0, false)

	ui.bindKeys()
	ui.app.SetInputCapture(ui.keyboardHandler)
	ui.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		ui.screen = screen
		return false
	})

	ui.app.SetRoot(ui.main, true)
}

// Run in blocking mode until the user quits or ctx is done.
func (ui *AppUI) Run(ctx context.Context) {
	ui.ctx = ctx
	go func() {
		<-ctx.Done()
		ui.app.Stop()
	}()
	go ui.logsPage.Watch(ctx)

	ui.gotoRoute(ui.initial)
	if err := ui.app.Run(); err != nil {
		logrus.Fatalf("[view] application panic: %v", err)
	}
	ui.stopSession()
}

// BailOut exists the application.
func (ui *AppUI) BailOut() {
	ui.stopSession()
	ui.app.Stop()
}

// Replace implements types.Router. Safe to call from any goroutine.
func (ui *AppUI) Replace(route types.Route) {
	ui.app.QueueUpdateDraw(func() {
		ui.gotoRoute(route)
	})
}

// gotoRoute must run on the UI goroutine.
func (ui *AppUI) gotoRoute(route types.Route) {
	logrus.Infof("[view] route to %v", route)
	switch route {
	case types.RouteLogin:
		ui.stopSession()
		ui.taskPage.Reset()
		ui.showHint(false)
		ui.content.ChangePage(LoginPageName)
		ui.setIndicator("Login")
	case types.RouteMain:
		ui.showHint(true)
		ui.content.ChangePage(MainPageName)
		ui.startSession()
	default:
		ui.stopSession()
		ui.showHint(false)
		ui.content.ChangePage(NotFoundPageName)
		ui.setIndicator("Not found")
	}
}

func (ui *AppUI) startSession() {
	ui.stopSession()
	p := ui.newPoller().SetListener(ui).SetNotifier(NewFeedback(ui, ui.conf.UI.Sound)).SetRouter(ui)

	ui.mx.Lock()
	ui.poller = p
	ui.mx.Unlock()

	ui.setIndicator("Loading...")
	if err := p.Start(ui.ctx); err != nil {
		logrus.Warnf("[view] start session failed: %v", err)
	}
}

func (ui *AppUI) stopSession() {
	ui.mx.Lock()
	p := ui.poller
	ui.poller = nil
	ui.mx.Unlock()
	if p != nil {
		p.Stop()
	}
}

func (ui *AppUI) session() *engine.Poller {
	ui.mx.Lock()
	defer ui.mx.Unlock()
	return ui.poller
}

func (ui *AppUI) Reload() {
	if p := ui.session(); p != nil {
		p.Reload()
	}
}

// Logout runs off the UI goroutine; routing comes back through Replace.
func (ui *AppUI) Logout() {
	p := ui.session()
	if p == nil {
		return
	}
	go func() {
		if err := p.Logout(); err != nil {
			ui.app.QueueUpdateDraw(func() {
				ui.ShowError(err)
			})
		}
	}()
}

// PollStarted implements types.Listener.
func (ui *AppUI) PollStarted(trigger types.Trigger) {
	ui.app.QueueUpdateDraw(func() {
		if trigger != types.TriggerInitial {
			ui.flash.Show("Reload...")
		}
	})
}

// TasksUpdated implements types.Listener.
func (ui *AppUI) TasksUpdated(tasks []pmodel.Task) {
	now := time.Now()
	ui.app.QueueUpdateDraw(func() {
		ui.taskPage.Update(tasks, now)
		failing := ui.taskPage.data.Failing()
		status := fmt.Sprintf("%d tasks, updated %s", len(tasks), now.Format("15:04:05"))
		if failing > 0 {
			status += fmt.Sprintf(", [red]%d failing[-]", failing)
		}
		ui.setIndicator(status)
		ui.refreshDetails()
	})
}

// PollFailed implements types.Listener.
func (ui *AppUI) PollFailed(err error) {
	ui.app.QueueUpdateDraw(func() {
		if errors.Is(err, engine.ErrNoCredentials) {
			ui.loginPage.SetStatus(err.Error())
			return
		}
		ui.setIndicator("[red]Error[-]")
		ui.ShowError(err)
	})
}

// ShowError pushes the dismissible error dialog, or updates the one on top.
func (ui *AppUI) ShowError(err error) {
	if d, ok := ui.content.Top().(*Dialog); ok && d.Name() == ErrorDialogName {
		d.SetBody(err.Error())
		return
	}
	ui.content.Push(NewErrorDialog(err.Error(), ui.closeDialog))
}

// showDetails opens the details dialog for a table row.
func (ui *AppUI) showDetails(row int) {
	p := ui.session()
	task, ok := ui.taskPage.data.Task(row)
	if p == nil || !ok {
		return
	}
	if _, ok := p.Select(task.ID); !ok {
		return
	}
	ui.content.Push(NewDetailsDialog(task, func() {
		p.ClearSelection()
		ui.closeDialog()
	}))
}

// refreshDetails keeps an open details dialog in sync with the new poll,
// closing it when its task is gone.
func (ui *AppUI) refreshDetails() {
	d, ok := ui.content.Top().(*Dialog)
	if !ok || d.Name() != DetailsDialogName {
		return
	}
	p := ui.session()
	if p == nil {
		return
	}
	if task, ok := p.Selected(); ok {
		d.SetBody(detailsBody(task))
		return
	}
	ui.closeDialog()
}

func (ui *AppUI) closeDialog() {
	ui.content.Pop()
}

func (ui *AppUI) setIndicator(text string) {
	ui.indicator.SetText(text)
}

func (ui *AppUI) showHint(show bool) {
	if show {
		ui.main.ResizeItem(ui.hint, 1, 0)
		return
	}
	ui.main.ResizeItem(ui.hint, 0, 0)
}

// Alarm flashes the task list border. Used by the feedback notifier.
func (ui *AppUI) Alarm(on bool) {
	ui.taskPage.Alarm(on)
}

// Beep rings the terminal bell.
func (ui *AppUI) Beep() {
	if ui.screen != nil {
		_ = ui.screen.Beep()
	}
}

// AsKey converts rune to keyboard key.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	key := tcell.Key(evt.Rune())
	if evt.Modifiers() == tcell.ModAlt {
		key = tcell.Key(int16(evt.Rune()) * int16(evt.Modifiers()))
	}
	return key
}
