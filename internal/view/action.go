package view

import "github.com/gdamore/tcell/v2"

type ActionHandler func(key *tcell.EventKey) *tcell.EventKey

type KeyAction struct {
	Key         tcell.Key
	Action      ActionHandler
	Description string
	// Rune actions are skipped while a text field has focus.
	Rune bool
}

func NewAction(key tcell.Key, description string, action ActionHandler) *KeyAction {
	return &KeyAction{
		Key:         key,
		Action:      action,
		Description: description,
		Rune:        key >= KeySpace && key < 127,
	}
}

func (ui *AppUI) keyboardHandler(event *tcell.EventKey) *tcell.EventKey {
	action, ok := ui.GetAction(event)
	if !ok {
		return event
	}
	if action.Rune && ui.typing() {
		return event
	}
	return action.Action(event)
}

func (ui *AppUI) bindKeys() {
	ui.actions[KeyColon] = NewAction(KeyColon, "Command", ui.activateCmd)
	ui.actions[KeyR] = NewAction(KeyR, "Reload", ui.reloadCmd)
	ui.actions[KeyL] = NewAction(KeyL, "Logout", ui.logoutCmd)
	ui.actions[KeyQ] = NewAction(KeyQ, "Quit", ui.exitCmd)
	ui.actions[tcell.KeyCtrlC] = NewAction(tcell.KeyCtrlC, "Quit", ui.exitCmd)
	ui.actions[tcell.KeyEsc] = NewAction(tcell.KeyEsc, "Back", ui.backCmd)
}

func (ui *AppUI) GetAction(key *tcell.EventKey) (*KeyAction, bool) {
	action, ok := ui.actions[AsKey(key)]
	return action, ok
}

// typing reports whether keystrokes belong to a text field or a dialog.
func (ui *AppUI) typing() bool {
	if ui.input.IsActivated() || ui.content.Top() != nil {
		return true
	}
	return ui.content.CurrentPage() == LoginPageName
}

// 激活命令窗口, with the Key ":"
func (ui *AppUI) activateCmd(evt *tcell.EventKey) *tcell.EventKey {
	if ui.input.IsActivated() {
		return evt
	}
	ui.input.Active(true)
	return nil
}

func (ui *AppUI) reloadCmd(evt *tcell.EventKey) *tcell.EventKey {
	if ui.content.CurrentPage() != MainPageName {
		return evt
	}
	ui.Reload()
	return nil
}

func (ui *AppUI) logoutCmd(evt *tcell.EventKey) *tcell.EventKey {
	if ui.content.CurrentPage() != MainPageName {
		return evt
	}
	ui.Logout()
	return nil
}

func (ui *AppUI) backCmd(evt *tcell.EventKey) *tcell.EventKey {
	if ui.input.IsActivated() || ui.content.Top() != nil {
		return evt
	}
	if ui.content.CurrentPage() == LogsPageName {
		ui.content.ChangePage(MainPageName)
		return nil
	}
	return evt
}

// 退出命令
func (ui *AppUI) exitCmd(evt *tcell.EventKey) *tcell.EventKey {
	ui.BailOut()
	return nil
}

// Defines char keystrokes.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyHelp  = 63
	KeySlash = 47
	KeyColon = 58
	KeySpace = 32
)
