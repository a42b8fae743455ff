package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestRadioGroupStartsUnchosen(t *testing.T) {
	r := NewRadioGroup([]string{"YES", "NO", "N/A"})
	if r.Chosen != -1 {
		t.Errorf("expected nothing chosen, got %d", r.Chosen)
	}
	if strings.Contains(r.View(false), "(•)") {
		t.Error("unchosen group should not render a filled mark")
	}
}

func TestRadioGroupDigitChooses(t *testing.T) {
	r := NewRadioGroup([]string{"YES", "NO", "N/A"})
	r, changed := r.Update(key('3'))
	if !changed || r.Chosen != 2 || r.Cursor != 2 {
		t.Errorf("expected option 3 chosen, got chosen=%d cursor=%d changed=%v", r.Chosen, r.Cursor, changed)
	}

	r, changed = r.Update(key('3'))
	if changed {
		t.Error("choosing the same option again should not report a change")
	}

	r, _ = r.Update(key('9'))
	if r.Chosen != 2 {
		t.Errorf("out of range digit should be ignored, got %d", r.Chosen)
	}
}

func TestRadioGroupArrowsThenSpace(t *testing.T) {
	r := NewRadioGroup([]string{"YES", "NO", "N/A"})
	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if r.Cursor != 2 {
		t.Errorf("cursor should clamp at last option, got %d", r.Cursor)
	}
	if r.Chosen != -1 {
		t.Error("moving the cursor must not choose")
	}

	r, changed := r.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !changed || r.Chosen != 2 {
		t.Errorf("space should choose the cursor option, got %d", r.Chosen)
	}

	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if r.Chosen != 2 || r.Cursor != 1 {
		t.Errorf("left should only move the cursor, got chosen=%d cursor=%d", r.Chosen, r.Cursor)
	}
}
