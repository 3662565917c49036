package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_DigitChoosesOption(t *testing.T) {
	mc := NewMultiChoice("", []string{"Japan", "China", "Nepal"})

	mc, _ = mc.Update(keyPress('2'))

	got, ok := mc.Chosen()
	if !ok || got != "China" {
		t.Errorf("Chosen() = %q, %v, want China", got, ok)
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice("", []string{"Japan", "China", "Nepal"})

	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	if mc.Selected != 2 {
		t.Errorf("Selected = %d, want 2 (clamped)", mc.Selected)
	}
	mc, _ = mc.Update(specialKey(tea.KeyUp))
	mc, _ = mc.Update(specialKey(tea.KeyEnter))

	got, ok := mc.Chosen()
	if !ok || got != "China" {
		t.Errorf("Chosen() = %q, %v, want China", got, ok)
	}
}

func TestMultiChoice_IgnoresKeysAfterSubmit(t *testing.T) {
	mc := NewMultiChoice("", []string{"Japan", "China", "Nepal"})
	mc, _ = mc.Update(keyPress('1'))
	mc, _ = mc.Update(keyPress('3'))

	if mc.ChosenIndex != 0 {
		t.Errorf("ChosenIndex = %d, want 0", mc.ChosenIndex)
	}
}

func TestMultiChoice_OutOfRangeDigit(t *testing.T) {
	mc := NewMultiChoice("", []string{"Japan", "China", "Nepal"})
	mc, _ = mc.Update(keyPress('4'))
	mc, _ = mc.Update(keyPress('0'))

	if mc.Submitted {
		t.Error("expected out-of-range digits to be ignored")
	}
}

func TestMultiChoice_ViewNumbersOptions(t *testing.T) {
	mc := NewMultiChoice("Which country?", []string{"Japan", "China", "Nepal"})
	view := mc.View()

	for _, want := range []string{"Which country?", "1)  Japan", "2)  China", "3)  Nepal"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenu_SkipsDisabledItems(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}

	m := NewMenu([]MenuItem{
		{Label: "RESUME", Disabled: true},
		{Label: "PLAY", Action: pick("PLAY")},
		{Label: "HISTORY", Action: pick("HISTORY")},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1 (disabled item skipped)", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	m.Update(specialKey(tea.KeyEnter))
	if chosen != "HISTORY" {
		t.Errorf("chosen = %q, want HISTORY", chosen)
	}
}

func TestMenu_ShortcutKeys(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "PLAY", Key: "p", Action: pick("PLAY")},
		{Label: "RESUME", Key: "r", Disabled: true, Action: pick("RESUME")},
		{Label: "HISTORY", Key: "h", Action: pick("HISTORY")},
	})

	m, _ = m.Update(keyPress('r'))
	if chosen != "" {
		t.Errorf("disabled shortcut ran %q", chosen)
	}

	m, _ = m.Update(keyPress('h'))
	if chosen != "HISTORY" || m.Selected != 2 {
		t.Errorf("chosen = %q, Selected = %d, want HISTORY at 2", chosen, m.Selected)
	}
	if !strings.Contains(m.View(), "PLAY (P)") {
		t.Errorf("view should show the shortcut: %q", m.View())
	}
}

func TestTextInput_TrimsValue(t *testing.T) {
	ti := NewTextInput("name", "  ada ", 16)
	if ti.Value() != "ada" {
		t.Errorf("Value() = %q, want ada", ti.Value())
	}
	if !ti.Focused() {
		t.Error("expected new input to be focused")
	}

	ti.Blur()
	if ti.Focused() {
		t.Error("expected input blurred")
	}
}

func TestMeter_ShowsPercent(t *testing.T) {
	m := NewMeter(0.3, true, 40)
	if !strings.Contains(m.View(), "30%") {
		t.Errorf("view %q missing 30%%", m.View())
	}
	if got := lipgloss.Width(m.View()); got != 40 {
		t.Errorf("width = %d, want 40", got)
	}
}

func TestMeter_ClampsFraction(t *testing.T) {
	for _, f := range []float64{-1, 2} {
		if got := lipgloss.Width(NewMeter(f, false, 20).View()); got != 20 {
			t.Errorf("fraction %v: width = %d, want 20", f, got)
		}
	}
}

func TestTrack_RendersOneCellPerMark(t *testing.T) {
	tr := Track{Marks: []Mark{MarkCorrect, MarkWrong, MarkCurrent, MarkPending}}
	view := tr.View()
	for _, glyph := range []string{"✓", "✗", "●", "○"} {
		if !strings.Contains(view, glyph) {
			t.Errorf("view %q missing %q", view, glyph)
		}
	}
	if n := strings.Count(view, " "); n < 3 {
		t.Errorf("view %q should separate cells", view)
	}
}

func TestContentWidth_Clamps(t *testing.T) {
	if got := ContentWidth(200); got != 60 {
		t.Errorf("ContentWidth(200) = %d, want 60", got)
	}
	if got := ContentWidth(10); got != 20 {
		t.Errorf("ContentWidth(10) = %d, want 20", got)
	}
}
