package view

import (
	"context"

	"github.com/rivo/tview"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
)

type LogsPage struct {
	*tview.Flex
	app *AppUI

	buffer *model.LogsBuffer
	logs   *tview.TextView
}

func NewLogsPage(app *AppUI, buffer *model.LogsBuffer) *LogsPage {
	return &LogsPage{
		Flex:   tview.NewFlex().SetDirection(tview.FlexRow),
		app:    app,
		buffer: buffer,
	}
}

func (l *LogsPage) Init() {
	l.logs = tview.NewTextView().SetScrollable(true)
	l.logs.SetBorder(true)
	l.logs.SetTitle(" " + LogsPageName + " (Esc to go back) ")
	l.logs.SetBorderColor(PresetStyles.Frame.BorderColor.Color())
	l.AddItem(l.logs, 0, 1, true)
}

func (l *LogsPage) Name() string {
	return LogsPageName
}

func (l *LogsPage) Start() {
	l.logs.ScrollToEnd()
}

func (l *LogsPage) Stop() {}

// Watch copies buffered log lines into the page until ctx is done.
func (l *LogsPage) Watch(ctx context.Context) {
	if l.buffer == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-l.buffer.LogChan:
			l.app.app.QueueUpdateDraw(func() {
				_, _ = l.logs.Write(item.Bytes)
			})
		}
	}
}
