package treemorph

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/golang/geo/r3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	defaultCameraDistance = 22.0
	defaultCameraY        = 1.5
	defaultFocal          = 1.2
	defaultPointSize      = 0.06
	nearPlane             = 0.1

	// maxQuadsPerCall keeps each DrawTriangles32 call under 65536 vertices.
	maxQuadsPerCall = 16384
)

// Renderer is a reference ebiten renderer for a Scene. It orients the
// cloud by the scene rotation, projects each particle with a pinhole
// camera and draws it as a small additive quad.
type Renderer struct {
	// CameraDistance is the distance from the camera to the rotation center.
	CameraDistance float64
	// CameraY is the height the camera looks at.
	CameraY float64
	// Focal is the focal length as a fraction of the screen height.
	Focal float64
	// PointSize is the particle size in world units.
	PointSize float64
	// Blend is the compositing mode for particles.
	Blend BlendMode
	// Twinkle modulates ornament brightness within the theme's range.
	Twinkle bool
	// ShowFPS draws an FPS and mode readout in the top-left corner.
	ShowFPS bool

	noise *perlin.Perlin
	verts []ebiten.Vertex
	inds  []uint32
	drawn int
}

// NewRenderer returns a renderer with default camera settings.
func NewRenderer() *Renderer {
	return &Renderer{
		CameraDistance: defaultCameraDistance,
		CameraY:        defaultCameraY,
		Focal:          defaultFocal,
		PointSize:      defaultPointSize,
		Blend:          BlendAdd,
		Twinkle:        true,
		noise:          perlin.NewPerlin(2, 2, 3, 7),
	}
}

var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Orient applies the scene rotation to p: pitch (rot.X) about the X axis
// after yaw (rot.Y) about the Y axis.
func Orient(p r3.Vector, rot Rotation) r3.Vector {
	sy, cy := math.Sincos(rot.Y)
	x := p.X*cy + p.Z*sy
	z := -p.X*sy + p.Z*cy
	sx, cx := math.Sincos(rot.X)
	return r3.Vector{
		X: x,
		Y: p.Y*cx - z*sx,
		Z: p.Y*sx + z*cx,
	}
}

// Project maps an oriented point to screen coordinates on a w by h
// target. scale is the screen size of one world unit at that depth. ok is
// false for points behind the near plane.
func (r *Renderer) Project(p r3.Vector, w, h float64) (sx, sy, scale float64, ok bool) {
	depth := p.Z + r.CameraDistance
	if depth < nearPlane {
		return 0, 0, 0, false
	}
	scale = h * r.Focal / depth
	sx = w/2 + p.X*scale
	sy = h/2 - (p.Y-r.CameraY)*scale
	return sx, sy, scale, true
}

// Drawn returns the number of particles submitted by the last Draw.
func (r *Renderer) Drawn() int {
	return r.drawn
}

// Draw clears screen to the scene's ambient tint and draws every visible
// particle. Particles without a heart target are hidden in ModeHeart.
func (r *Renderer) Draw(screen *ebiten.Image, s *Scene) {
	screen.Fill(s.Ambient().toRGBA())

	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rot := s.state.Rotation()
	mode := s.state.Mode()
	theme := s.theme

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	r.drawn = 0

	for gi := range s.groups {
		g := &s.groups[gi]
		twinkle := r.Twinkle && g.Kind == GroupOrnament && theme.Brightness.Max > 0
		for i := range g.Particles {
			p := &g.Particles[i]
			if !HasTarget(p, mode) {
				continue
			}
			sx, sy, scale, ok := r.Project(Orient(p.Current, rot), w, h)
			if !ok {
				continue
			}
			c := p.Color
			if twinkle {
				n := r.noise.Noise2D(float64(i)*0.37, s.elapsed*1.5)
				c = c.Scale(theme.Brightness.Lerp(clamp01(n*0.5+0.5)) / theme.Brightness.Max)
			}
			r.appendQuad(sx, sy, math.Max(1, r.PointSize*scale), c)
			if len(r.verts) >= maxQuadsPerCall*4 {
				r.flush(screen)
			}
		}
	}
	r.flush(screen)

	if r.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nmode: %s\ntheme: %s",
			ebiten.ActualFPS(), mode, theme.Name))
	}
	s.flushScreenshots(screen)
}

func (r *Renderer) appendQuad(x, y, size float64, c Color) {
	half := size / 2
	x0, y0 := float32(x-half), float32(y-half)
	x1, y1 := float32(x+half), float32(y+half)
	cr, cg, cb := float32(c.R), float32(c.G), float32(c.B)

	base := uint32(len(r.verts))
	for j := 0; j < 4; j++ {
		v := ebiten.Vertex{SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1}
		if j&1 == 0 {
			v.DstX = x0
		} else {
			v.DstX = x1
		}
		if j < 2 {
			v.DstY = y0
		} else {
			v.DstY = y1
		}
		r.verts = append(r.verts, v)
	}
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	r.drawn++
}

func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = r.Blend.EbitenBlend()
	screen.DrawTriangles32(r.verts, r.inds, ensureWhitePixel(), &op)
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}
