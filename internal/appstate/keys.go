package appstate

import (
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/sketchpad/internal/tool"
)

// Binding maps a key combination to a named action.
type Binding struct {
	Keys   string
	Action string
	Help   string
}

var toolKeys = map[tool.Kind]string{
	tool.Pen:           "p",
	tool.Eraser:        "e",
	tool.Stamp:         "s",
	tool.Line:          "l",
	tool.Arrow:         "a",
	tool.RectStroke:    "r",
	tool.RectFill:      "R",
	tool.EllipseStroke: "o",
	tool.EllipseFill:   "O",
	tool.Star:          "t",
	tool.Fill:          "f",
}

var bindings = func() []Binding {
	out := []Binding{
		{"ctrl+z", "undo", "undo the last stroke"},
		{"ctrl+shift+z", "redo", "redo the last undone stroke"},
		{"ctrl+y", "redo", "redo the last undone stroke"},
		{"delete", "clear", "remove every stroke"},
		{"shift+delete", "reset", "remove every stroke and the background"},
		{"ctrl+s", "save", "save the drawing as PNG"},
		{"ctrl+c", "copy", "copy the drawing to the clipboard"},
		{"ctrl+v", "paste", "use the clipboard image as background"},
		{"escape", "cancel", "abandon the stroke in progress"},
		{"[", "thinner", "decrease the stroke width"},
		{"]", "thicker", "increase the stroke width"},
		{"b", "pen-type", "cycle pen type"},
		{"c", "next-color", "next palette colour"},
		{"C", "prev-color", "previous palette colour"},
		{"ctrl+q", "quit", "close the window"},
	}
	for _, k := range tool.Kinds() {
		out = append(out, Binding{toolKeys[k], "tool:" + k.String(), "select the " + k.String() + " tool"})
	}
	return out
}()

var keyAction = func() map[string]string {
	m := make(map[string]string, len(bindings))
	for _, b := range bindings {
		m[b.Keys] = b.Action
	}
	return m
}()

// Bindings lists the keyboard shortcuts of the drawing window.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}

// eventKeys names the combination of a key event in Binding.Keys form.
func eventKeys(e key.Event) string {
	ctrl := e.Modifiers&key.ModControl != 0
	shift := e.Modifiers&key.ModShift != 0
	if ctrl {
		name := codeName(e.Code)
		if name == "" {
			return ""
		}
		var sb strings.Builder
		sb.WriteString("ctrl+")
		if shift {
			sb.WriteString("shift+")
		}
		sb.WriteString(name)
		return sb.String()
	}
	switch e.Code {
	case key.CodeEscape:
		return "escape"
	case key.CodeDeleteForward:
		if shift {
			return "shift+delete"
		}
		return "delete"
	}
	if e.Rune > 0 {
		return string(e.Rune)
	}
	return ""
}

func codeName(c key.Code) string {
	if c >= key.CodeA && c <= key.CodeZ {
		return string(rune('a' + int(c-key.CodeA)))
	}
	return ""
}
