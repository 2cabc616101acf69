package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"studyroutine/internal/ui/theme"
)

// Bar renders one labelled progress line:
//
//	민법        ████████░░░░░░░░  50.0% (39/78)
func Bar(label string, percent float64, done, total, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s %s",
		runewidth.FillRight(runewidth.Truncate(label, labelWidth, "…"), labelWidth),
		theme.Rate(percent).Render(bar),
		theme.Muted.Render(fmt.Sprintf("%5.1f%% (%d/%d)", percent, done, total)),
	)
}

const labelWidth = 12
