package view

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
	pmodel "github.com/xiaorui77/ifacex-watch/pkg/model"
)

type TaskPage struct {
	*tview.Table
	app *AppUI

	data *model.TaskTable
}

func NewTaskPage(app *AppUI) *TaskPage {
	return &TaskPage{
		Table: tview.NewTable(),
		app:   app,
		data:  model.NewTaskTable(),
	}
}

func (t *TaskPage) Init() {
	t.SetSelectable(true, false)
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetTitle(" " + MainPageName + " ")
	t.SetBorderColor(PresetStyles.Frame.BorderColor.Color())
	t.SetBackgroundColor(PresetStyles.Table.BgColor.Color())
	t.SetSelectedStyle(tcell.StyleDefault.
		Foreground(PresetStyles.Table.CursorFgColor.Color()).
		Background(PresetStyles.Table.CursorBgColor.Color()))
	t.SetSelectedFunc(func(row, _ int) {
		t.app.showDetails(row - 1)
	})
	t.render()
}

func (t *TaskPage) Name() string {
	return MainPageName
}

func (t *TaskPage) Start() {}
func (t *TaskPage) Stop()  {}

// Update replaces all rows with tasks, keeping the cursor where it was.
func (t *TaskPage) Update(tasks []pmodel.Task, at time.Time) {
	t.data.Update(tasks, at)
	t.render()
}

func (t *TaskPage) Reset() {
	t.data.Reset()
	t.Alarm(false)
	t.render()
}

// Alarm colors the border to signal failing tasks.
func (t *TaskPage) Alarm(on bool) {
	if on {
		t.SetBorderColor(PresetStyles.Frame.AlertColor.Color())
		return
	}
	t.SetBorderColor(PresetStyles.Frame.BorderColor.Color())
}

func (t *TaskPage) render() {
	selected, _ := t.GetSelection()
	t.Clear()

	for col, name := range model.Columns {
		t.SetCell(0, col, &tview.TableCell{
			Text:            name,
			Color:           PresetStyles.Table.Header.FgColor.Color(),
			BackgroundColor: PresetStyles.Table.Header.BgColor.Color(),
			NotSelectable:   true,
			Expansion:       columnExpansion(col),
		})
	}

	renderRows(t.Table, t.data, func(row, col int, cell *tview.TableCell) {
		bg := PresetStyles.Table.BgColor
		if row%2 == 1 {
			bg = PresetStyles.Table.AltBgColor
		}
		cell.SetBackgroundColor(bg.Color())
		cell.SetExpansion(columnExpansion(col))
		if col == 0 {
			task, _ := t.data.Task(row)
			cell.SetTextColor(PresetStyles.StatusColor(model.Status(task)))
		}
	})

	if rows := t.data.GetRows(); rows > 0 {
		if selected < 1 {
			selected = 1
		}
		if selected > rows {
			selected = rows
		}
		t.Select(selected, 0)
	}
}

// renderRows writes data below the header row, one cell per column.
func renderRows(table *tview.Table, data TableData, style func(row, col int, cell *tview.TableCell)) {
	for row := 0; row < data.GetRows(); row++ {
		for col, text := range data.GetRow(row) {
			cell := tview.NewTableCell(tview.Escape(text)).
				SetTextColor(PresetStyles.Table.FgColor.Color())
			if style != nil {
				style(row, col, cell)
			}
			table.SetCell(row+1, col, cell)
		}
	}
}

func columnExpansion(col int) int {
	if col == 1 {
		return 1
	}
	return 0
}
