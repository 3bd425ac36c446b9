package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-kernel/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	s := core.NewScreen(4, 2)
	s.SetColored(0, 0, '@', core.ColorBrightYellow)
	s.SetColored(1, 0, '*', core.ColorBrightRed)
	s.SetColored(2, 0, '*', core.ColorBrightRed)
	s.Set(3, 1, '#')

	got := RenderScreen(s)
	expected := "@** \n   #"
	if got != expected {
		t.Errorf("RenderScreen() = %q, expected %q", got, expected)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("styleFor(200).Render() = %q, expected %q", got, "x")
	}
}
