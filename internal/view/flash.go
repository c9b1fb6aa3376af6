package view

import (
	"sync"
	"time"

	"github.com/rivo/tview"
)

// Flash is a one-line banner that hides itself after a fixed duration,
// whatever happens to the operation that raised it.
type Flash struct {
	*tview.TextView
	app      *AppUI
	duration time.Duration

	mx    sync.Mutex
	timer *time.Timer
}

func NewFlash(app *AppUI, duration time.Duration) *Flash {
	tv := tview.NewTextView().SetTextAlign(tview.AlignCenter)
	tv.SetTextColor(PresetStyles.Status.FlashFgColor.Color())
	tv.SetBackgroundColor(PresetStyles.Status.FlashBgColor.Color())
	return &Flash{
		TextView: tv,
		app:      app,
		duration: duration,
	}
}

// Show must run on the UI goroutine.
func (f *Flash) Show(msg string) {
	f.SetText(msg)
	f.app.main.ResizeItem(f, 1, 0)

	f.mx.Lock()
	defer f.mx.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.duration, func() {
		f.app.app.QueueUpdateDraw(f.hide)
	})
}

func (f *Flash) hide() {
	f.SetText("")
	f.app.main.ResizeItem(f, 0, 0)
}
