package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/motion/levels"
	"github.com/milk9111/motion/sim"
)

// levelView draws a level and the simulated character. World units are scaled by ppu
// and Y is flipped so up is up on screen.
type levelView struct {
	level  *levels.Level
	ppu    float64
	layers []*ebiten.Image
	hazard *ebiten.Image
}

func newLevelView(lvl *levels.Level, ppu float64) *levelView {
	size := int(ppu)
	v := &levelView{
		level:  lvl,
		ppu:    ppu,
		hazard: triangleImage(size, color.RGBA{R: 0xff, A: 0xff}),
	}
	for i := range lvl.Layers {
		hex := "#3c78ff"
		if i < len(lvl.LayerMeta) && lvl.LayerMeta[i].Color != "" {
			hex = lvl.LayerMeta[i].Color
		}
		v.layers = append(v.layers, layerImageFromHex(size, hex))
	}
	return v
}

func (v *levelView) Size() (int, int) {
	return int(float64(v.level.Width) * v.ppu), int(float64(v.level.Height) * v.ppu)
}

// toScreen maps a world point to screen pixels.
func (v *levelView) toScreen(x, y float64) (float32, float32) {
	return float32(x * v.ppu), float32((float64(v.level.Height) - y) * v.ppu)
}

func (v *levelView) Draw(screen *ebiten.Image, s *sim.Sim) {
	screen.Fill(colornames.Black)

	for i, layer := range v.level.Layers {
		if len(layer) != v.level.Width*v.level.Height {
			continue
		}
		for y := 0; y < v.level.Height; y++ {
			for x := 0; x < v.level.Width; x++ {
				img := v.layers[i]
				switch layer[y*v.level.Width+x] {
				case levels.TileSolid:
				case levels.TileHazard:
					img = v.hazard
				default:
					continue
				}
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(x)*v.ppu, float64(y)*v.ppu)
				screen.DrawImage(img, op)
			}
		}
	}

	for _, e := range v.level.Entities {
		x, y := float32(float64(e.X)*v.ppu), float32(float64(e.Y)*v.ppu)
		size := float32(v.ppu)
		switch e.Type {
		case levels.EntityDashRefill:
			vector.FillRect(screen, x+size/4, y+size/4, size/2, size/2, colornames.Limegreen, false)
		case levels.EntityDashTarget:
			vector.StrokeRect(screen, x+2, y+2, size-4, size-4, 2, colornames.Gold, false)
		}
	}

	for _, bb := range s.World.PlatformBounds() {
		l, t := v.toScreen(bb.L, bb.T)
		r, b := v.toScreen(bb.R, bb.B)
		vector.FillRect(screen, l, t, r-l, b-t, colornames.Slategray, false)
	}

	bb := s.Character.Bounds()
	l, t := v.toScreen(bb.L, bb.T)
	r, b := v.toScreen(bb.R, bb.B)
	st := s.Controller.State()
	body := color.Color(colornames.White)
	switch {
	case st.Dashing:
		body = colornames.Orange
	case st.Grabbing:
		body = colornames.Violet
	case st.Sliding:
		body = colornames.Skyblue
	}
	vector.FillRect(screen, l, t, r-l, b-t, body, false)

	// facing marker
	cx := (l + r) / 2
	eye := cx + float32(st.Facing.X())*(r-l)/4
	vector.FillRect(screen, eye-2, t+4, 4, 4, colornames.Black, false)
}

// DrawDebug overlays the contact probes and the velocity vector.
func (v *levelView) DrawDebug(screen *ebiten.Image, s *sim.Sim) {
	cfg := s.Config()
	pos := s.Character.Position()
	contacts := s.Controller.Contacts()

	gx, gy := v.toScreen(pos.X(), pos.Y()+cfg.GrounderOffset)
	gr := float32(cfg.GrounderRadius * v.ppu)
	grounder := colornames.Red
	if contacts.Grounded {
		grounder = colornames.Lime
	}
	vector.StrokeRect(screen, gx-gr, gy-gr, gr*2, gr*2, 1, grounder, false)

	for _, w := range contacts.Walls {
		if !w.Against {
			continue
		}
		px, py := v.toScreen(w.Point.X(), w.Point.Y())
		nx, ny := v.toScreen(w.Point.X()+w.Normal.X(), w.Point.Y()+w.Normal.Y())
		col := colornames.Yellow
		if w.Pushing {
			col = colornames.Cyan
		}
		vector.StrokeLine(screen, px, py, nx, ny, 2, col, true)
	}

	vel := s.Character.Velocity()
	cx, cy := v.toScreen(pos.X(), pos.Y())
	vx, vy := v.toScreen(pos.X()+vel.X()*0.1, pos.Y()+vel.Y()*0.1)
	vector.StrokeLine(screen, cx, cy, vx, vy, 2, colornames.Magenta, true)

	_, h := v.Size()
	st := s.Controller.State()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("vel=(%.2f, %.2f) lerp=%.1f jumped=%t double=%t dashed=%t",
		vel.X(), vel.Y(), st.ControlLerp, st.HasJumped, st.HasDoubleJumped, st.HasDashed), 4, h-16)
}

// layerImageFromHex creates an image filled with the provided hex color ("#rrggbb").
func layerImageFromHex(size int, hex string) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.Fill(parseHexColor(hex))
	return img
}

// triangleImage builds an upward-pointing triangle for hazard tiles.
func triangleImage(size int, col color.RGBA) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	for y := 0; y < size; y++ {
		rowWidth := float64(y) / float64(size-1) * float64(size)
		left := cx - rowWidth/2
		right := cx + rowWidth/2
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			if fx >= left && fx <= right {
				rgba.Set(x, y, col)
			}
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

// parseHexColor parses a color in the form #rrggbb. Returns opaque blue if parse fails.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0x00, 0x00, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r = uint8(ri)
			g = uint8(gi)
			b = uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
