package view

import (
	"testing"
	"time"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
	pmodel "github.com/xiaorui77/ifacex-watch/pkg/model"
)

func TestTaskPage_Render(t *testing.T) {
	page := NewTaskPage(&AppUI{})
	page.Init()
	assert.Equal(t, 1, page.GetRowCount(), "header only")

	page.Update([]pmodel.Task{
		{ID: "1", Name: "import", LastStatus: "true", Records: "12"},
		{ID: "2", Name: "export [x]", LastStatus: "false", Records: "0"},
	}, time.Now())

	require.Equal(t, 3, page.GetRowCount())
	assert.Equal(t, "NAME", page.GetCell(0, 1).Text)
	assert.Equal(t, model.StatusMark, page.GetCell(1, 0).Text)
	assert.Equal(t, PresetStyles.Status.OkColor.Color(), page.GetCell(1, 0).Color)
	assert.Equal(t, PresetStyles.Status.FailedColor.Color(), page.GetCell(2, 0).Color)
	assert.Equal(t, tview.Escape("export [x]"), page.GetCell(2, 1).Text)

	row, _ := page.GetSelection()
	assert.Equal(t, 1, row)

	page.Update([]pmodel.Task{{ID: "2", Name: "export", LastStatus: "false"}}, time.Now())
	assert.Equal(t, 2, page.GetRowCount(), "stale rows disappear")

	page.Reset()
	assert.Equal(t, 1, page.GetRowCount())
}

func TestDetailsBody(t *testing.T) {
	body := detailsBody(pmodel.Task{Name: "import", Records: "12", LastExecuted: "2024-05-01 02:00", LastStatus: "false"})
	assert.Contains(t, body, "[red]"+model.StatusMark)
	assert.Contains(t, body, "Name[::-] : import")
	assert.Contains(t, body, "Records[::-] : 12")
	assert.Contains(t, body, "Last executed[::-] : 2024-05-01 02:00")

	body = detailsBody(pmodel.Task{LastStatus: "true"})
	assert.Contains(t, body, "[green]"+model.StatusMark)
}

func TestLoginPage_Fields(t *testing.T) {
	page := NewLoginPage(&AppUI{})
	page.Init()

	page.SetValues("example.com", "abc123")
	url, key := page.Values()
	assert.Equal(t, "example.com", url)
	assert.Equal(t, "abc123", key)

	assert.Equal(t, "Login", page.ButtonLabel())
	page.SetLoading(true)
	assert.Equal(t, "Loading...", page.ButtonLabel())
	page.SetLoading(false)
	assert.Equal(t, "Login", page.ButtonLabel())
}

type stubComponent struct {
	*tview.Box
	name    string
	started int
	stopped int
}

func (s *stubComponent) Name() string { return s.name }
func (s *stubComponent) Start()       { s.started++ }
func (s *stubComponent) Stop()        { s.stopped++ }

type stackEvents struct {
	pushed []string
	popped []string
}

func (e *stackEvents) StackPushed(c Component) { e.pushed = append(e.pushed, c.Name()) }
func (e *stackEvents) StackPopped(c, _ Component) {
	e.popped = append(e.popped, c.Name())
}

func TestStack(t *testing.T) {
	s := NewStack()
	events := &stackEvents{}
	s.AddListener(events)
	assert.Nil(t, s.Top())
	assert.Nil(t, s.Pop())

	a := &stubComponent{Box: tview.NewBox(), name: "a"}
	b := &stubComponent{Box: tview.NewBox(), name: "b"}
	s.Push(a)
	s.Push(b)
	assert.Equal(t, b, s.Top())
	assert.Equal(t, 1, a.stopped, "covered component is stopped")

	assert.Equal(t, b, s.Pop())
	assert.Equal(t, 2, a.started, "uncovered component restarts")

	s.Push(b)
	s.Clear()
	assert.True(t, s.Empty())
	assert.Equal(t, []string{"a", "b", "b"}, events.pushed)
	assert.Equal(t, []string{"b", "b", "a"}, events.popped)
}

func TestErrorDialog(t *testing.T) {
	closed := false
	d := NewErrorDialog("Invalid API Key or URL.", func() { closed = true })
	assert.Equal(t, ErrorDialogName, d.Name())
	assert.Equal(t, "Invalid API Key or URL.", d.Body())

	d.SetBody("Request timed out!")
	assert.Equal(t, "Request timed out!", d.Body())
	assert.False(t, closed)
}
