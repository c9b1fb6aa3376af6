package view

import "time"

const alarmDuration = 600 * time.Millisecond

// Feedback is the terminal stand-in for the device feedback: vibration turns
// the task list border red for a moment, the alert rings the bell.
type Feedback struct {
	ui    *AppUI
	sound bool
}

func NewFeedback(ui *AppUI, sound bool) *Feedback {
	return &Feedback{ui: ui, sound: sound}
}

func (f *Feedback) Vibrate() {
	f.ui.app.QueueUpdateDraw(func() {
		f.ui.Alarm(true)
	})
	time.AfterFunc(alarmDuration, func() {
		f.ui.app.QueueUpdateDraw(func() {
			f.ui.Alarm(false)
		})
	})
}

func (f *Feedback) Alert() {
	if !f.sound {
		return
	}
	f.ui.app.QueueUpdate(f.ui.Beep)
}
