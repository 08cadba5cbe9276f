package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// exploreKeys are the keyboard bindings of the explorer. Node and menu
// bindings stand in for the mouse gestures they mirror.
type exploreKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Menu     key.Binding
	TreeMenu key.Binding
	Copy     key.Binding
	Close    key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	Quit     key.Binding

	MenuUp   key.Binding
	MenuDown key.Binding
	Choose   key.Binding
}

func defaultExploreKeys() exploreKeys {
	return exploreKeys{
		Next:     key.NewBinding(key.WithKeys("tab", "j"), key.WithHelp("tab", "select")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "k")),
		Menu:     key.NewBinding(key.WithKeys("enter", " ", "m"), key.WithHelp("⏎", "node menu")),
		TreeMenu: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "tree menu")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		PanUp:    key.NewBinding(key.WithKeys("up"), key.WithHelp("arrows", "pan")),
		PanDown:  key.NewBinding(key.WithKeys("down")),
		PanLeft:  key.NewBinding(key.WithKeys("left")),
		PanRight: key.NewBinding(key.WithKeys("right")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		MenuUp:   key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/↓", "choose")),
		MenuDown: key.NewBinding(key.WithKeys("down", "j", "tab")),
		Choose:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "select")),
	}
}

func (k exploreKeys) canvasHelp() string {
	return helpLine("click", k.Next, k.Menu, k.TreeMenu, k.Copy, k.PanUp, k.Quit)
}

func (k exploreKeys) menuHelp() string {
	return helpLine("", k.MenuUp, k.Choose, k.Close)
}

// helpLine joins the help text of bindings. A non-empty mouse hint is
// prefixed to the first entry.
func helpLine(mouse string, bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		entry := h.Key + " " + h.Desc
		if mouse != "" && len(parts) == 0 {
			entry = mouse + "/" + entry
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, " · ")
}
