package render

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/engine"
	"github.com/lixenwraith/tank-arena/parameter"
	"github.com/lixenwraith/tank-arena/vmath"
)

const (
	statusBarHeight = 1
	borderSize      = 1
	barWidth        = 10
)

// ArenaRenderer draws arena snapshots onto a tcell screen
// The field keeps the floor aspect only as far as the terminal allows; each axis is scaled independently
type ArenaRenderer struct {
	screen tcell.Screen
	width  int
	height int

	// Field rectangle inside the border, recomputed per frame
	fieldX int
	fieldY int
	fieldW int
	fieldH int
}

// NewArenaRenderer creates a renderer bound to screen
func NewArenaRenderer(screen tcell.Screen) *ArenaRenderer {
	return &ArenaRenderer{screen: screen}
}

// RenderFrame renders the entire frame from one snapshot
func (r *ArenaRenderer) RenderFrame(snap engine.Snapshot, paused bool) {
	r.width, r.height = r.screen.Size()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	r.drawStatusBar(snap, paused, defaultStyle)

	if !r.layout(len(snap.Tanks)) {
		r.drawText(0, statusBarHeight, "terminal too small", defaultStyle.Foreground(RgbHealthRed))
		r.screen.Show()
		return
	}

	r.drawBorder(defaultStyle)
	r.drawFloor()
	r.drawPads(snap)
	r.drawExplosions(snap)
	r.drawShells(snap)
	r.drawTanks(snap)
	r.drawHUD(snap, defaultStyle)

	if snap.RoundOver {
		r.drawBanner(snap, defaultStyle)
	}

	r.screen.Show()
}

// layout sizes the field for the current terminal, false when nothing fits
func (r *ArenaRenderer) layout(tanks int) bool {
	r.fieldX = borderSize
	r.fieldY = statusBarHeight + borderSize
	r.fieldW = r.width - 2*borderSize
	r.fieldH = r.height - statusBarHeight - 2*borderSize - tanks
	return r.fieldW >= 4 && r.fieldH >= 2
}

// worldToCell maps a floor position to a screen cell, +Z drawn upward
func (r *ArenaRenderer) worldToCell(snap engine.Snapshot, p vmath.Vec3F) (int, int) {
	cx := int(p.X / snap.Width * float64(r.fieldW))
	cy := int((snap.Depth - p.Z) / snap.Depth * float64(r.fieldH))
	cx = max(0, min(cx, r.fieldW-1))
	cy = max(0, min(cy, r.fieldH-1))
	return r.fieldX + cx, r.fieldY + cy
}

// drawStatusBar draws the round header and pause indicator
func (r *ArenaRenderer) drawStatusBar(snap engine.Snapshot, paused bool, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbStatusBar).Bold(true)
	r.drawText(0, 0, fmt.Sprintf(" TANK ARENA  round %d  tick %d", snap.Round, snap.Tick), style)

	if paused {
		label := " PAUSED "
		r.drawText(r.width-len(label), 0, label, defaultStyle.Foreground(tcell.ColorBlack).Background(RgbPaused))
	}
}

// drawBorder frames the field
func (r *ArenaRenderer) drawBorder(defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbBorder)
	top := r.fieldY - 1
	bottom := r.fieldY + r.fieldH
	left := r.fieldX - 1
	right := r.fieldX + r.fieldW

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, '─', nil, style)
		r.screen.SetContent(x, bottom, '─', nil, style)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, style)
		r.screen.SetContent(right, y, '│', nil, style)
	}
	r.screen.SetContent(left, top, '┌', nil, style)
	r.screen.SetContent(right, top, '┐', nil, style)
	r.screen.SetContent(left, bottom, '└', nil, style)
	r.screen.SetContent(right, bottom, '┘', nil, style)
}

// drawFloor shades the field with a sparse dot grid
func (r *ArenaRenderer) drawFloor() {
	style := tcell.StyleDefault.Background(RgbFloor).Foreground(RgbPad)
	for y := 0; y < r.fieldH; y++ {
		for x := 0; x < r.fieldW; x++ {
			ch := ' '
			if x%4 == 0 && y%2 == 0 {
				ch = floorGlyph
			}
			r.screen.SetContent(r.fieldX+x, r.fieldY+y, ch, nil, style)
		}
	}
}

func (r *ArenaRenderer) drawPads(snap engine.Snapshot) {
	for _, pad := range snap.Pads {
		x, y := r.worldToCell(snap, pad.Position)
		if pad.HasItem {
			style := tcell.StyleDefault.Background(RgbFloor).Foreground(ItemColor(pad.Kind)).Bold(true)
			r.screen.SetContent(x, y, ItemGlyph(pad.Kind), nil, style)
			continue
		}
		r.screen.SetContent(x, y, padGlyph, nil, tcell.StyleDefault.Background(RgbFloor).Foreground(RgbPad))
	}
}

// drawExplosions fills each blast ellipse with a fading color
func (r *ArenaRenderer) drawExplosions(snap engine.Snapshot) {
	for _, ex := range snap.Explosions {
		life := float64(ex.Remaining) / float64(parameter.ExplosionVisualDuration)
		style := tcell.StyleDefault.Background(ExplosionColor(life)).Foreground(RgbBanner)

		cx, cy := r.worldToCell(snap, ex.Position)
		rx := ex.Radius / snap.Width * float64(r.fieldW)
		ry := ex.Radius / snap.Depth * float64(r.fieldH)
		if rx < 0.5 || ry < 0.5 {
			r.screen.SetContent(cx, cy, explosionGlyph, nil, style)
			continue
		}

		for dy := -int(math.Ceil(ry)); dy <= int(math.Ceil(ry)); dy++ {
			for dx := -int(math.Ceil(rx)); dx <= int(math.Ceil(rx)); dx++ {
				nx := float64(dx) / rx
				ny := float64(dy) / ry
				if nx*nx+ny*ny > 1 {
					continue
				}
				x, y := cx+dx, cy+dy
				if !r.inField(x, y) {
					continue
				}
				ch := ' '
				if dx == 0 && dy == 0 {
					ch = explosionGlyph
				}
				r.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}
}

func (r *ArenaRenderer) drawShells(snap engine.Snapshot) {
	for _, s := range snap.Shells {
		x, y := r.worldToCell(snap, s.Position)
		r.screen.SetContent(x, y, shellGlyph, nil, tcell.StyleDefault.Background(RgbFloor).Foreground(SlotColor(s.Owner)).Bold(true))
	}
}

// drawTanks draws wrecks first so live tanks stay on top
func (r *ArenaRenderer) drawTanks(snap engine.Snapshot) {
	for _, ts := range snap.Tanks {
		if ts.State.Active {
			continue
		}
		x, y := r.worldToCell(snap, ts.State.Transform.Position)
		r.screen.SetContent(x, y, wreckGlyph, nil, tcell.StyleDefault.Background(RgbFloor).Foreground(RgbDim))
	}

	for _, ts := range snap.Tanks {
		if !ts.State.Active {
			continue
		}
		x, y := r.worldToCell(snap, ts.State.Transform.Position)
		style := tcell.StyleDefault.Background(RgbFloor).Foreground(SlotColor(ts.State.Slot)).Bold(true)
		if ts.State.Effects.BarrierActive() {
			style = style.Reverse(true)
		}
		r.screen.SetContent(x, y, FacingGlyph(ts.State.Transform.Yaw), nil, style)
	}
}

// drawHUD draws one status line per tank below the field
func (r *ArenaRenderer) drawHUD(snap engine.Snapshot, defaultStyle tcell.Style) {
	y := r.fieldY + r.fieldH + borderSize
	for i, ts := range snap.Tanks {
		st := ts.State
		x := 0

		label := fmt.Sprintf("P%d ", st.Slot+1)
		x = r.drawText(x, y+i, label, defaultStyle.Foreground(SlotColor(st.Slot)).Bold(true))

		percent := st.Health.Fraction() * 100
		x = r.drawBar(x, y+i, st.Health.Fraction(), HealthColor(percent), defaultStyle)
		x = r.drawText(x, y+i, fmt.Sprintf(" %3.0f ", math.Max(st.Health.Current, 0)), defaultStyle.Foreground(HealthColor(percent)))

		x = r.drawBar(x, y+i, ChargeFraction(ts), RgbChargeBar, defaultStyle)

		if st.Effects.SpeedActive() {
			x = r.drawText(x, y+i, " SPD "+formatSeconds(st.Effects.SpeedRemaining), defaultStyle.Foreground(ItemColor(component.EffectSpeed)))
		}
		if st.Effects.BarrierActive() {
			x = r.drawText(x, y+i, " BAR "+formatSeconds(st.Effects.BarrierRemaining), defaultStyle.Foreground(ItemColor(component.EffectBarrier)))
		}
		if !st.Active {
			x = r.drawText(x, y+i, " destroyed", defaultStyle.Foreground(RgbDim))
		}

		if st.Slot < len(snap.Score) {
			r.drawText(x, y+i, fmt.Sprintf("  wins %d", snap.Score[st.Slot]), defaultStyle.Foreground(RgbStatusBar))
		}
	}
}

// drawBanner announces the round result centred on the field
func (r *ArenaRenderer) drawBanner(snap engine.Snapshot, defaultStyle tcell.Style) {
	result := "DRAW"
	if snap.Winner >= 0 {
		result = fmt.Sprintf("P%d WINS", snap.Winner+1)
	}
	text := fmt.Sprintf(" %s  next round in %s ", result, formatSeconds(snap.RestartIn))

	x := r.fieldX + (r.fieldW-len([]rune(text)))/2
	y := r.fieldY + r.fieldH/2
	r.drawText(max(x, r.fieldX), y, text, defaultStyle.Foreground(tcell.ColorBlack).Background(RgbBanner).Bold(true))
}

// drawBar draws a bracketed bar filled to frac in [0,1], returns the next column
func (r *ArenaRenderer) drawBar(x, y int, frac float64, color tcell.Color, defaultStyle tcell.Style) int {
	filled := int(math.Round(frac * barWidth))
	filled = max(0, min(filled, barWidth))

	x = r.drawText(x, y, "[", defaultStyle.Foreground(RgbBorder))
	for i := 0; i < barWidth; i++ {
		style := defaultStyle.Foreground(RgbDim)
		ch := '░'
		if i < filled {
			style = defaultStyle.Foreground(color)
			ch = '█'
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
	return r.drawText(x+barWidth, y, "]", defaultStyle.Foreground(RgbBorder))
}

// drawText writes s from column x, clipped to the screen, returns the next column
func (r *ArenaRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= 0 && x < r.width && y >= 0 && y < r.height {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

func (r *ArenaRenderer) inField(x, y int) bool {
	return x >= r.fieldX && x < r.fieldX+r.fieldW && y >= r.fieldY && y < r.fieldY+r.fieldH
}

// ChargeFraction returns the charge bar fill for a tank in [0,1]
func ChargeFraction(ts engine.TankSnapshot) float64 {
	span := ts.MaxForce - ts.MinForce
	if ts.State.Charge.State != component.ChargeCharging || span <= 0 {
		return 0
	}
	f := (ts.State.Charge.CurrentForce - ts.MinForce) / span
	return math.Max(0, math.Min(f, 1))
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
