package view

import "github.com/rivo/tview"

type TableData interface {
	GetColumns() int
	GetRows() int

	GetRow(row int) []string
}

// Component is a page or dialog managed by the PageStack.
type Component interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
	Start()
	Stop()
}
