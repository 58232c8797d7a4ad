package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/locale"
	"github.com/lixenwraith/gem-drift/vmath"
)

const (
	// blinkHz is the player blink rate while invulnerable
	blinkHz = 14.0

	// gemFadeSeconds is the remaining lifetime below which gems dim
	gemFadeSeconds = 1.5
)

// Glyphs
const (
	glyphPlayer = '@'
	glyphEnemy  = 'X'
	glyphGem    = '◆'
	glyphRare   = '✦'
	glyphGrid   = '·'
)

// Renderer draws snapshots to a tcell screen
// It never mutates game state; hosts pass a fresh snapshot each frame
type Renderer struct {
	screen     tcell.Screen
	width      int
	height     int
	fullscreen bool
	vp         Viewport
}

// NewRenderer creates a renderer sized to the screen
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize re-reads the screen size and recomputes the layout
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.vp = Layout(r.width, r.height, r.fullscreen)
}

// Viewport returns the current playfield mapping
func (r *Renderer) Viewport() Viewport {
	return r.vp
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(snap engine.Snapshot, t *locale.Table) {
	if snap.Flags.Fullscreen != r.fullscreen {
		r.fullscreen = snap.Flags.Fullscreen
		r.Resize()
	}

	base := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', base)

	r.drawHUD(snap, t, base)
	r.drawBorder(base)
	r.drawField(base)
	r.drawEntities(snap, base)
	r.drawFooter(snap, t, base)

	if title, lines, ok := PanelText(snap, t); ok {
		r.drawPanel(title, lines)
	}

	r.screen.Show()
}

// drawHUD writes the overlay lines above the field
func (r *Renderer) drawHUD(snap engine.Snapshot, t *locale.Table, base tcell.Style) {
	lines := HUDLines(snap, t)
	styles := []tcell.Style{
		base.Foreground(RgbHUDText).Bold(true),
		base.Foreground(RgbHUDHealth),
		base.Foreground(RgbHUDLabel),
	}
	for i, line := range lines {
		if i >= hudRows {
			break
		}
		r.drawText(1, i, line, styles[i%len(styles)])
	}
}

// drawFooter writes the settings line on the last row
func (r *Renderer) drawFooter(snap engine.Snapshot, t *locale.Table, base tcell.Style) {
	r.drawText(1, r.height-1, SettingsLine(snap, t), base.Foreground(RgbHUDHint))
}

// drawBorder frames the viewport
func (r *Renderer) drawBorder(base tcell.Style) {
	v := r.vp
	style := base.Foreground(RgbBorder)
	left, right := v.X-1, v.X+v.W
	top, bottom := v.Y-1, v.Y+v.H

	for x := v.X; x < right; x++ {
		r.screen.SetContent(x, top, '─', nil, style)
		r.screen.SetContent(x, bottom, '─', nil, style)
	}
	for y := v.Y; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, style)
		r.screen.SetContent(right, y, '│', nil, style)
	}
	r.screen.SetContent(left, top, '┌', nil, style)
	r.screen.SetContent(right, top, '┐', nil, style)
	r.screen.SetContent(left, bottom, '└', nil, style)
	r.screen.SetContent(right, bottom, '┘', nil, style)
}

// drawField lays a sparse dot grid so motion reads on an empty field
func (r *Renderer) drawField(base tcell.Style) {
	style := base.Foreground(RgbGrid)
	v := r.vp
	for y := v.Y + 1; y < v.Y+v.H; y += 4 {
		for x := v.X + 2; x < v.X+v.W; x += 8 {
			r.screen.SetContent(x, y, glyphGrid, nil, style)
		}
	}
}

// drawEntities draws gems, orbs and enemies, then the player on top
func (r *Renderer) drawEntities(snap engine.Snapshot, base tcell.Style) {
	for _, g := range snap.Gems {
		color := RgbGem
		if g.TTL < gemFadeSeconds {
			color = RgbGemFading
		}
		r.plot(vmath.V2(g.X, g.Y), glyphGem, base.Foreground(color).Bold(true))
	}
	for _, o := range snap.RareOrbs {
		r.plot(vmath.V2(o.X, o.Y), glyphRare, base.Foreground(RgbRareOrb).Bold(true))
	}
	for _, e := range snap.Enemies {
		r.plot(vmath.V2(e.X, e.Y), glyphEnemy, base.Foreground(RgbEnemy).Bold(true))
	}

	if !PlayerVisible(snap.Timers.InvulnerableFor) {
		return
	}
	color := RgbPlayer
	if snap.Timers.Flash > 0 {
		color = RgbPlayerHit
	}
	r.plot(vmath.V2(snap.Player.X, snap.Player.Y), glyphPlayer, base.Foreground(color).Bold(true))
}

// PlayerVisible applies the invulnerability blink
func PlayerVisible(invulnerableFor float64) bool {
	if invulnerableFor <= 0 {
		return true
	}
	return int(math.Floor(invulnerableFor*blinkHz))%2 == 0
}

// plot draws a glyph at a canvas point
func (r *Renderer) plot(p vmath.Vec2, ch rune, style tcell.Style) {
	col, row := r.vp.ToCell(p)
	r.screen.SetContent(col, row, ch, nil, style)
}

// drawPanel draws a centered framed box with a title and body lines
func (r *Renderer) drawPanel(title string, lines []string) {
	inner := runewidth.StringWidth(title)
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}
	boxW := min(inner+4, r.width)
	boxH := len(lines) + 4

	x0 := (r.width - boxW) / 2
	y0 := (r.height - boxH) / 2

	bg := tcell.StyleDefault.Background(RgbPanelBg)
	border := bg.Foreground(RgbPanelBorder)

	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			top, bottom := y == y0, y == y0+boxH-1
			left, right := x == x0, x == x0+boxW-1
			ch := ' '
			switch {
			case top && left:
				ch = '╔'
			case top && right:
				ch = '╗'
			case bottom && left:
				ch = '╚'
			case bottom && right:
				ch = '╝'
			case top || bottom:
				ch = '═'
			case left || right:
				ch = '║'
			}
			r.screen.SetContent(x, y, ch, nil, border)
		}
	}

	r.drawCentered(y0+1, title, bg.Foreground(RgbPanelTitle).Bold(true))
	for i, l := range lines {
		r.drawCentered(y0+3+i, l, bg.Foreground(RgbPanelText))
	}
}

// drawCentered writes text centered on the screen width
func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	x := (r.width - runewidth.StringWidth(text)) / 2
	r.drawText(max(0, x), y, text, style)
}

// drawText writes text from x, advancing by display width, clipped at the right edge
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= r.height {
		return
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if x+w > r.width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += w
	}
}
