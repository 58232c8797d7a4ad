package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ScreenText reads a screen back as one string per row, trailing spaces trimmed
// Wide runes occupy two cells and are emitted once
func ScreenText(s tcell.Screen) []string {
	w, h := s.Size()
	rows := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; {
			ch, _, _, width := s.GetContent(x, y)
			if ch == 0 {
				ch = ' '
			}
			sb.WriteRune(ch)
			x += max(1, width)
		}
		rows[y] = strings.TrimRight(sb.String(), " ")
	}
	return rows
}
