package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
)

type Styles struct {
	Frame
	Table
	Prompt
	Status
}

type (
	Frame struct {
		BorderColor Color
		AlertColor  Color
		TitleColor  Color
	}
	Table struct {
		FgColor       Color
		BgColor       Color
		AltBgColor    Color
		CursorFgColor Color
		CursorBgColor Color
		Header        TableHeader
	}

	TableHeader struct {
		FgColor Color
		BgColor Color
	}

	Prompt struct {
		FgColor Color
		BgColor Color
	}

	Status struct {
		OkColor      Color
		FailedColor  Color
		FlashFgColor Color
		FlashBgColor Color
	}
)

type Color string

// Color returns a view color.
func (c Color) Color() tcell.Color {
	if c == "default" {
		return tcell.ColorDefault
	}

	return tcell.GetColor(string(c)).TrueColor()
}

var PresetStyles = Styles{
	Frame: Frame{
		BorderColor: "#0077bb",
		AlertColor:  "red",
		TitleColor:  "#ffffff",
	},
	Table: Table{
		FgColor:       "#ffffff",
		BgColor:       "#222222",
		AltBgColor:    "#333333",
		CursorFgColor: "#ffffff",
		CursorBgColor: "#bb7700",
		Header: TableHeader{
			FgColor: "#cccccc",
			BgColor: "#111111",
		},
	},
	Prompt: Prompt{
		FgColor: "#ffffff",
		BgColor: "#666666",
	},
	Status: Status{
		OkColor:      "green",
		FailedColor:  "red",
		FlashFgColor: "#ffffff",
		FlashBgColor: "#bb7700",
	},
}

// StatusColor is the indicator color for an ok or failed status.
func (s Styles) StatusColor(status string) tcell.Color {
	if status == model.StatusOK {
		return s.Status.OkColor.Color()
	}
	return s.Status.FailedColor.Color()
}
