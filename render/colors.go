package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tank-arena/component"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFloor      = tcell.NewRGBColor(36, 40, 59)    // Slightly lifted floor
	RgbBorder     = tcell.NewRGBColor(120, 120, 140) // Muted frame
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbDim        = tcell.NewRGBColor(90, 90, 90)    // Wrecks and empty bars

	RgbHealthGreen  = tcell.NewRGBColor(0, 200, 0)
	RgbHealthYellow = tcell.NewRGBColor(255, 200, 0)
	RgbHealthRed    = tcell.NewRGBColor(220, 40, 40)

	RgbChargeBar = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPad       = tcell.NewRGBColor(80, 80, 110)   // Empty pad ring
	RgbBanner    = tcell.NewRGBColor(255, 255, 0)   // Round result
	RgbPaused    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
)

// slotColors are indexed by tank slot, wrapping for larger matches
var slotColors = []tcell.Color{
	tcell.NewRGBColor(100, 150, 255), // Blue
	tcell.NewRGBColor(255, 80, 80),   // Red
	tcell.NewRGBColor(50, 255, 50),   // Green
	tcell.NewRGBColor(220, 120, 255), // Violet
}

// SlotColor returns the identifying color of a tank slot
func SlotColor(slot int) tcell.Color {
	if slot < 0 {
		return RgbDim
	}
	return slotColors[slot%len(slotColors)]
}

// HealthColor returns the health bar band for a percentage in [0,100]
func HealthColor(percent float64) tcell.Color {
	switch {
	case percent > 60:
		return RgbHealthGreen
	case percent > 30:
		return RgbHealthYellow
	default:
		return RgbHealthRed
	}
}

// ItemColor returns the display color of a pickup kind
func ItemColor(kind component.EffectKind) tcell.Color {
	switch kind {
	case component.EffectHeal:
		return RgbHealthGreen
	case component.EffectSpeed:
		return tcell.NewRGBColor(0, 200, 200)
	case component.EffectBarrier:
		return tcell.NewRGBColor(140, 190, 255)
	default:
		return RgbHealthRed
	}
}

// ExplosionColor fades from white-yellow to dark red as life runs out
// life is the remaining fraction in [0,1]
func ExplosionColor(life float64) tcell.Color {
	if life < 0 {
		life = 0
	}
	if life > 1 {
		life = 1
	}
	r := int32(120 + 135*life)
	g := int32(20 + 200*life*life)
	b := int32(60 * life * life * life)
	return tcell.NewRGBColor(r, g, b)
}
