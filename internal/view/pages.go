package view

import (
	"github.com/rivo/tview"
)

const (
	LoginPageName    = "Login"
	MainPageName     = "Tasks"
	LogsPageName     = "Logs"
	NotFoundPageName = "NotFound"
)

// PageStack shows one page at a time with a stack of dialogs above it.
type PageStack struct {
	*tview.Pages
	app *AppUI

	*Stack

	pages   []Component
	current string
}

func NewPageStack(app *AppUI) *PageStack {
	return &PageStack{
		app:   app,
		Stack: NewStack(),
	}
}

func (p *PageStack) Init(pages ...Component) {
	p.Pages = tview.NewPages()
	p.Stack.AddListener(p)

	for _, page := range pages {
		p.AddPage(page.Name(), page, true, false)
		p.pages = append(p.pages, page)
	}
}

// ChangePage switches the visible page and drops any open dialog.
func (p *PageStack) ChangePage(name string) {
	page := p.GetPage(name)
	if page == nil {
		return
	}
	p.Stack.Clear()
	if cur := p.GetPage(p.current); cur != nil && p.current != name {
		cur.Stop()
	}
	p.current = name
	p.SwitchToPage(page.Name())
	p.app.app.SetFocus(page)

	p.notify(page)
}

func (p *PageStack) CurrentPage() string {
	return p.current
}

func (p *PageStack) GetPage(name string) Component {
	for _, page := range p.pages {
		if page.Name() == name {
			return page
		}
	}
	return nil
}

func (p *PageStack) notify(c Component) {
	c.Start()
}

// StackPushed shows a dialog above the current page.
func (p *PageStack) StackPushed(c Component) {
	p.AddPage(c.Name(), c, true, true)
	p.app.app.SetFocus(c)
}

// StackPopped removes a dialog and gives focus back to the one below it, or
// to the page.
func (p *PageStack) StackPopped(c, top Component) {
	p.RemovePage(c.Name())
	if top != nil {
		p.app.app.SetFocus(top)
		return
	}
	if page := p.GetPage(p.current); page != nil {
		p.app.app.SetFocus(page)
	}
}

// NotFoundPage is shown for unknown routes.
type NotFoundPage struct {
	*tview.TextView
}

func NewNotFoundPage() *NotFoundPage {
	tv := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)
	tv.SetText("\n\n[::b]This screen doesn't exist.[::-]\n\nPress q to quit.")
	return &NotFoundPage{TextView: tv}
}

func (n *NotFoundPage) Name() string {
	return NotFoundPageName
}

func (n *NotFoundPage) Start() {}
func (n *NotFoundPage) Stop()  {}
