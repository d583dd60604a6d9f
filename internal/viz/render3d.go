package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera manages 3D projection to a 2D plane. World coordinates are shifted
// by Target, multiplied by Scale*Zoom and then rotated, so a scene that fits
// in a unit sphere fills about two thirds of the smaller screen side.
type Camera struct {
	Target           mgl64.Vec3
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Scale            float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, Scale: 1, Zoom: 1.0}
}

// FitTo scales the view so a cube of half-width extent is visible.
func (c *Camera) FitTo(extent float64) {
	if extent > 0 && !math.IsInf(extent, 0) {
		c.Scale = 1 / extent
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(100, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.01, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p mgl64.Vec3) mgl64.Vec3 {
	rot := mgl64.Rotate3DZ(c.RotZ).Mul3(mgl64.Rotate3DY(c.RotY)).Mul3(mgl64.Rotate3DX(c.RotX))
	return rot.Mul3x1(p)
}

// Project converts 3D world coordinates to 2D sub-pixel coordinates on a
// sw x sh surface. Returns x, y, depth, and visibility.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p.Sub(c.Target).Mul(c.Scale * c.Zoom))
	dist := c.Distance
	if rot.Z() >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z())
	pScale := float64(min(sw, sh)) / 3.0
	sx := int(rot.X()*scale*pScale) + sw/2
	sy := int(-rot.Y()*scale*pScale) + sh/2
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End mgl64.Vec3
	Color      string
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                         { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3, c string) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p mgl64.Vec3, c string)   { w.Edges = append(w.Edges, Edge{p, p, c}) }
func (w *Wireframe) Clear()                            { w.Edges = w.Edges[:0] }

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Color          string
}

// Render3D draws the wireframe to the canvas using a simple painter's
// algorithm: far edges first, so nearer colours win shared cells.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.SetColor(e.X1, e.Y1, e.Color)
		} else {
			c.DrawLineColor(e.X1, e.Y1, e.X2, e.Y2, e.Color)
		}
	}
}

// CreateBoundsWireframe outlines a cube of half-width s centred on the origin.
func CreateBoundsWireframe(s float64, color string) *Wireframe {
	w := NewWireframe()
	v := []mgl64.Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], color)
	}
	return w
}

func CreateAxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), mgl64.Vec3{}
	w.AddEdge(o, mgl64.Vec3{l, 0, 0}, "#ff5555")
	w.AddEdge(o, mgl64.Vec3{0, l, 0}, "#55ff55")
	w.AddEdge(o, mgl64.Vec3{0, 0, l}, "#5555ff")
	return w
}
