package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/aiethics/selfcheck/internal/ui/theme"
)

// RadioGroup is a single-choice selector laid out horizontally. Chosen is
// -1 until an option is picked; once picked there is no way back to -1.
type RadioGroup struct {
	Options []string
	Cursor  int
	Chosen  int
}

// NewRadioGroup creates a RadioGroup with nothing chosen.
func NewRadioGroup(options []string) RadioGroup {
	return RadioGroup{Options: options, Chosen: -1}
}

// Update moves the cursor with ←/→ (or h/l) and chooses with space, enter
// or the option's 1-based digit. The returned bool reports whether Chosen
// changed.
func (r RadioGroup) Update(msg tea.Msg) (RadioGroup, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(r.Options) == 0 {
		return r, false
	}

	key := kmsg.String()
	switch key {
	case "left", "h":
		if r.Cursor > 0 {
			r.Cursor--
		}
		return r, false
	case "right", "l":
		if r.Cursor < len(r.Options)-1 {
			r.Cursor++
		}
		return r, false
	case "space", " ", "enter":
		return r.choose(r.Cursor)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(r.Options) {
			r.Cursor = i
			return r.choose(i)
		}
	}
	return r, false
}

func (r RadioGroup) choose(i int) (RadioGroup, bool) {
	changed := r.Chosen != i
	r.Chosen = i
	return r, changed
}

// View renders the options. The cursor is only highlighted when focused.
func (r RadioGroup) View(focused bool) string {
	parts := make([]string, 0, len(r.Options))
	for i, opt := range r.Options {
		mark := "( )"
		if i == r.Chosen {
			mark = "(•)"
		}
		line := mark + " " + opt

		style := theme.Unselected
		switch {
		case focused && i == r.Cursor:
			style = theme.Selected
		case i == r.Chosen:
			style = theme.Checked
		}
		parts = append(parts, style.Render(line))
	}
	return strings.Join(parts, "    ")
}
