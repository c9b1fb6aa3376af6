package view

import (
	"errors"

	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/engine"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
)

const (
	urlLabel    = "URL"
	apiKeyLabel = "API Key"

	submitLabel  = "Login"
	loadingLabel = "Loading..."
)

type LoginPage struct {
	*tview.Flex
	app *AppUI

	form   *tview.Form
	status *tview.TextView
}

func NewLoginPage(app *AppUI) *LoginPage {
	return &LoginPage{
		Flex: tview.NewFlex().SetDirection(tview.FlexRow),
		app:  app,
	}
}

func (l *LoginPage) Init() {
	l.form = tview.NewForm().
		AddInputField(urlLabel, "", 48, nil, nil).
		AddPasswordField(apiKeyLabel, "", 48, '*', nil).
		AddButton(submitLabel, l.submit)
	l.form.SetBorder(true)
	l.form.SetTitle(" ifaceX Login ")
	l.form.SetBorderColor(PresetStyles.Frame.BorderColor.Color())
	l.form.SetFieldBackgroundColor(PresetStyles.Prompt.BgColor.Color())
	l.form.SetFieldTextColor(PresetStyles.Prompt.FgColor.Color())

	l.status = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)

	l.AddItem(nil, 0, 1, false)
	l.AddItem(tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(l.form, 64, 0, true).
		AddItem(nil, 0, 1, false), 9, 0, true)
	l.AddItem(l.status, 1, 0, false)
	l.AddItem(nil, 0, 1, false)
}

func (l *LoginPage) Name() string {
	return LoginPageName
}

func (l *LoginPage) Start() {
	l.form.SetFocus(0)
}

func (l *LoginPage) Stop() {}

// Values returns the raw field contents.
func (l *LoginPage) Values() (string, string) {
	return l.field(urlLabel).GetText(), l.field(apiKeyLabel).GetText()
}

func (l *LoginPage) SetValues(url, key string) {
	l.field(urlLabel).SetText(url)
	l.field(apiKeyLabel).SetText(key)
}

func (l *LoginPage) SetStatus(text string) {
	l.status.SetText("[red]" + tview.Escape(text) + "[-]")
}

// SetLoading swaps the button label; the click handler checks the login
// state itself, so a second click while loading does nothing.
func (l *LoginPage) SetLoading(loading bool) {
	label := submitLabel
	if loading {
		label = loadingLabel
	}
	if b := l.form.GetButton(0); b != nil {
		b.SetLabel(label)
	}
}

func (l *LoginPage) ButtonLabel() string {
	if b := l.form.GetButton(0); b != nil {
		return b.GetLabel()
	}
	return ""
}

func (l *LoginPage) field(label string) *tview.InputField {
	return l.form.GetFormItemByLabel(label).(*tview.InputField)
}

func (l *LoginPage) submit() {
	if !l.app.login.CanSubmit() {
		return
	}
	url, key := l.Values()
	l.status.SetText("")
	l.SetLoading(true)

	go func() {
		_, err := l.app.login.Submit(l.app.ctx, url, key)
		l.app.app.QueueUpdateDraw(func() {
			l.settle(err)
		})
	}()
}

func (l *LoginPage) settle(err error) {
	if errors.Is(err, engine.ErrBusy) {
		return
	}
	l.SetLoading(false)
	if err != nil {
		logrus.Infof("[view] login rejected: %v", err)
		l.app.ShowError(err)
		return
	}
	l.SetValues("", "")
	l.app.gotoRoute(types.RouteMain)
}
