package view

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
	pmodel "github.com/xiaorui77/ifacex-watch/pkg/model"
)

const (
	ErrorDialogName   = "ErrorDialog"
	DetailsDialogName = "DetailsDialog"

	dialogWidth  = 60
	dialogHeight = 11
)

// Dialog is a centered box with a text body and an OK button.
type Dialog struct {
	*tview.Flex
	name string

	frame *tview.Flex
	body  *tview.TextView
	form  *tview.Form
}

func NewDialog(name, title, body string, onOK func()) *Dialog {
	d := &Dialog{
		name: name,
		body: tview.NewTextView().SetDynamicColors(true).SetWordWrap(true),
		form: tview.NewForm(),
	}
	d.body.SetText(body)
	d.form.AddButton("OK", onOK)
	d.form.SetButtonsAlign(tview.AlignCenter)
	d.form.SetCancelFunc(onOK)

	d.frame = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.body, 0, 1, false).
		AddItem(d.form, 3, 0, true)
	d.frame.SetBorder(true)
	d.frame.SetTitle(" " + title + " ")
	d.frame.SetBorderColor(PresetStyles.Frame.BorderColor.Color())

	d.Flex = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(d.frame, dialogHeight, 0, true).
			AddItem(nil, 0, 1, false), dialogWidth, 0, true).
		AddItem(nil, 0, 1, false)
	return d
}

// NewErrorDialog is the dismissible error message.
func NewErrorDialog(msg string, onOK func()) *Dialog {
	d := NewDialog(ErrorDialogName, "Error", tview.Escape(msg), onOK)
	d.frame.SetTitleColor(PresetStyles.Status.FailedColor.Color())
	return d
}

// NewDetailsDialog shows one task with its status indicator.
func NewDetailsDialog(task pmodel.Task, onOK func()) *Dialog {
	return NewDialog(DetailsDialogName, "Task Details", detailsBody(task), onOK)
}

func detailsBody(task pmodel.Task) string {
	color := PresetStyles.Status.OkColor
	if model.Status(task) != model.StatusOK {
		color = PresetStyles.Status.FailedColor
	}
	return fmt.Sprintf("[%s]%s[-]\n\n[::b]Name[::-] : %s\n[::b]Records[::-] : %s\n[::b]Last executed[::-] : %s",
		color, model.StatusMark,
		tview.Escape(task.Name), tview.Escape(task.Records), tview.Escape(task.LastExecuted))
}

func (d *Dialog) Name() string {
	return d.name
}

func (d *Dialog) Body() string {
	return strings.TrimSuffix(d.body.GetText(false), "\n")
}

func (d *Dialog) SetBody(text string) {
	d.body.SetText(text)
}

func (d *Dialog) Start() {}
func (d *Dialog) Stop()  {}
