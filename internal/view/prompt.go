package view

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// InputWrap is the ":" command prompt.
type InputWrap struct {
	*tview.InputField
	app *AppUI

	active   bool
	callback func(string) error
}

func NewInputWrap(app *AppUI, callback func(string) error) *InputWrap {
	return &InputWrap{
		InputField: tview.NewInputField(),
		app:        app,
		callback:   callback,
	}
}

func (i *InputWrap) Init() {
	i.SetBorder(true)
	i.SetLabel(":")
	i.SetFieldBackgroundColor(PresetStyles.Prompt.BgColor.Color())
	i.SetFieldTextColor(PresetStyles.Prompt.FgColor.Color())
	i.SetInputCapture(i.keyboard)
	i.SetDoneFunc(i.OnComplete)
}

func (i *InputWrap) Active(activate bool) {
	if activate {
		i.active = true
		i.app.app.SetFocus(i)
		i.app.main.ResizeItem(i, 3, 0)
		return
	}

	i.active = false
	i.SetText("")
	i.app.main.ResizeItem(i, 0, 0)
	if page := i.app.content.GetPage(i.app.content.CurrentPage()); page != nil {
		i.app.app.SetFocus(page)
	}
}

func (i *InputWrap) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEsc {
		i.Active(false)
		return nil
	}
	return evt
}

func (i *InputWrap) OnComplete(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	str := strings.TrimSpace(i.GetText())
	if str == "" {
		i.Active(false)
		return
	}
	if err := i.callback(str); err != nil {
		i.SetBorderColor(PresetStyles.Frame.AlertColor.Color())
		i.SetTitle(" " + err.Error() + " ")
		return
	}
	i.SetBorderColor(tview.Styles.BorderColor)
	i.SetTitle("")
	i.Active(false)
}

// IsActivated returns true if command is active, false otherwise.
func (i *InputWrap) IsActivated() bool {
	return i.active
}

// runCmd executes one prompt command.
func (ui *AppUI) runCmd(cmd string) error {
	switch strings.ToLower(cmd) {
	case "reload", "r":
		if ui.content.CurrentPage() != MainPageName {
			return fmt.Errorf("nothing to reload")
		}
		ui.Reload()
	case "logout", "l":
		if ui.session() == nil {
			return fmt.Errorf("not logged in")
		}
		ui.Logout()
	case "logs":
		ui.content.ChangePage(LogsPageName)
	case "tasks":
		if ui.session() == nil {
			return fmt.Errorf("not logged in")
		}
		ui.content.ChangePage(MainPageName)
	case "quit", "q":
		ui.BailOut()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
