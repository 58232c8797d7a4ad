package render

import "github.com/gdamore/tcell/v2"

// Playfield palette
var (
	RgbBackground = tcell.NewRGBColor(18, 24, 38)    // Night blue
	RgbBorder     = tcell.NewRGBColor(90, 110, 150)  // Muted steel
	RgbGrid       = tcell.NewRGBColor(28, 36, 54)    // Faint field dots
	RgbPlayer     = tcell.NewRGBColor(80, 200, 255)  // Bright cyan
	RgbPlayerHit  = tcell.NewRGBColor(255, 255, 255) // White hit flash
	RgbEnemy      = tcell.NewRGBColor(255, 90, 90)   // Red
	RgbGem        = tcell.NewRGBColor(90, 230, 140)  // Emerald
	RgbGemFading  = tcell.NewRGBColor(40, 120, 80)   // Dim emerald, last second of life
	RgbRareOrb    = tcell.NewRGBColor(255, 215, 0)   // Gold
)

// Overlay palette
var (
	RgbHUDText     = tcell.NewRGBColor(230, 230, 240) // Near white
	RgbHUDLabel    = tcell.NewRGBColor(140, 160, 200) // Soft blue
	RgbHUDHealth   = tcell.NewRGBColor(255, 120, 120) // Light red
	RgbHUDHint     = tcell.NewRGBColor(120, 130, 150) // Gray
	RgbPanelBg     = tcell.NewRGBColor(10, 12, 20)    // Near black
	RgbPanelBorder = tcell.NewRGBColor(255, 215, 0)   // Gold
	RgbPanelTitle  = tcell.NewRGBColor(255, 215, 0)   // Gold
	RgbPanelText   = tcell.NewRGBColor(220, 220, 230) // Light gray
)
