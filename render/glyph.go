package render

import (
	"math"

	"github.com/lixenwraith/tank-arena/component"
)

// facingGlyphs are ordered clockwise from +Z, which is drawn upward
var facingGlyphs = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

const (
	wreckGlyph     = '✕'
	shellGlyph     = '•'
	padGlyph       = '◇'
	explosionGlyph = '*'
	floorGlyph     = '·'
)

// FacingGlyph returns the arrow closest to yaw in degrees
func FacingGlyph(yaw float64) rune {
	idx := int(math.Round(yaw/45)) % len(facingGlyphs)
	if idx < 0 {
		idx += len(facingGlyphs)
	}
	return facingGlyphs[idx]
}

// ItemGlyph returns the marker drawn on a pad holding kind
func ItemGlyph(kind component.EffectKind) rune {
	switch kind {
	case component.EffectHeal:
		return '+'
	case component.EffectSpeed:
		return '»'
	case component.EffectBarrier:
		return '◈'
	default:
		return '!'
	}
}
