// Package render turns simulation states into colored braille frames.
//
// All backend coordinates are world pixels with the origin at the top
// left, x growing right and y growing down; the canvas shares that
// orientation so no axis flip is needed, only uniform scaling.
package render

import (
	"math"
	"time"

	"github.com/san-kum/roboviz/internal/world"
)

// collisionFlash keeps the robot tinted in the collision color for a
// short window after contact so a single colliding frame stays visible.
const collisionFlash = 300 * time.Millisecond

var defaultVisual = world.Visual{
	Background:     "#0f172a",
	Wall:           "#334155",
	Obstacle:       "#1f2937",
	Robot:          "#22c55e",
	RobotCollision: "#ef4444",
	Ray:            "#38bdf8",
	Goal:           "#ef4444",
}

// Viewport maps world coordinates onto the canvas sub-pixel grid with a
// single uniform scale, letterboxing the shorter axis.
type Viewport struct {
	Scale            float64
	OffsetX, OffsetY float64
}

// NewViewport fits a world extent into a sub-pixel area.
func NewViewport(worldW, worldH float64, pxW, pxH int) Viewport {
	if worldW <= 0 || worldH <= 0 {
		return Viewport{Scale: 1}
	}
	scale := math.Min(float64(pxW)/worldW, float64(pxH)/worldH)
	return Viewport{
		Scale:   scale,
		OffsetX: (float64(pxW) - worldW*scale) / 2,
		OffsetY: (float64(pxH) - worldH*scale) / 2,
	}
}

// Project converts a world point to canvas sub-pixels.
func (v Viewport) Project(x, y float64) (int, int) {
	return int(math.Round(x*v.Scale + v.OffsetX)),
		int(math.Round(y*v.Scale + v.OffsetY))
}

// Pipeline draws frames onto an owned canvas. Not safe for concurrent
// use; the render loop owns it.
type Pipeline struct {
	canvas        *Canvas
	lastCollision time.Time
	inContact     bool
	now           func() time.Time
}

// NewPipeline allocates a pipeline with a canvas of the given character
// dimensions.
func NewPipeline(cols, rows int) *Pipeline {
	return &Pipeline{
		canvas: NewCanvas(cols, rows),
		now:    time.Now,
	}
}

// Canvas exposes the backing canvas for size queries and tests.
func (p *Pipeline) Canvas() *Canvas {
	return p.canvas
}

// Resize reallocates the canvas, e.g. after a terminal resize.
func (p *Pipeline) Resize(cols, rows int) {
	if cols == p.canvas.Width && rows == p.canvas.Height {
		return
	}
	p.canvas = NewCanvas(cols, rows)
}

// Frame renders one simulation state and returns the styled string.
func (p *Pipeline) Frame(st world.SimulationState) string {
	c := p.canvas
	c.Clear()
	if st.World.Width <= 0 || st.World.Height <= 0 {
		return c.String()
	}

	vis := defaultVisual
	if st.Visual != nil {
		vis = mergeVisual(*st.Visual)
	}
	vp := NewViewport(st.World.Width, st.World.Height, c.Width*2, c.Height*4)

	p.drawWalls(st, vis, vp)
	p.drawObstacles(st, vis, vp)
	p.drawGoal(st, vis, vp)
	p.drawRays(st, vis, vp)
	p.drawRobot(st, vis, vp)
	p.drawFlash(st, vis)

	return c.String()
}

// drawFlash frames the whole canvas in the collision color for a short
// window after a collision rising edge. Sustained contact does not
// re-arm the window; the flash is an impact cue, not a contact state.
func (p *Pipeline) drawFlash(st world.SimulationState, vis world.Visual) {
	if st.Collision && !p.inContact {
		p.lastCollision = p.now()
	}
	p.inContact = st.Collision
	if p.now().Sub(p.lastCollision) >= collisionFlash {
		return
	}
	c := p.canvas
	c.SetPen(vis.RobotCollision)
	c.DrawRect(0, 0, c.Width*2-1, c.Height*4-1)
}

// mergeVisual fills unset palette entries with the defaults so a sparse
// backend visual block never draws invisible geometry.
func mergeVisual(v world.Visual) world.Visual {
	if v.Background == "" {
		v.Background = defaultVisual.Background
	}
	if v.Wall == "" {
		v.Wall = defaultVisual.Wall
	}
	if v.Obstacle == "" {
		v.Obstacle = defaultVisual.Obstacle
	}
	if v.Robot == "" {
		v.Robot = defaultVisual.Robot
	}
	if v.RobotCollision == "" {
		v.RobotCollision = defaultVisual.RobotCollision
	}
	if v.Ray == "" {
		v.Ray = defaultVisual.Ray
	}
	if v.Goal == "" {
		v.Goal = defaultVisual.Goal
	}
	return v
}

func (p *Pipeline) drawWalls(st world.SimulationState, vis world.Visual, vp Viewport) {
	c := p.canvas
	c.SetPen(vis.Wall)

	x0, y0 := vp.Project(0, 0)
	x1, y1 := vp.Project(st.World.Width, st.World.Height)
	c.DrawRect(x0, y0, x1-1, y1-1)

	m := st.World.WallMargin
	if m > 0 {
		mx0, my0 := vp.Project(m, m)
		mx1, my1 := vp.Project(st.World.Width-m, st.World.Height-m)
		c.DrawRect(mx0, my0, mx1, my1)
	}
}

func (p *Pipeline) drawObstacles(st world.SimulationState, vis world.Visual, vp Viewport) {
	c := p.canvas
	c.SetPen(vis.Obstacle)
	for _, o := range st.Obstacles {
		x0, y0 := vp.Project(o.X, o.Y)
		x1, y1 := vp.Project(o.X+o.Width, o.Y+o.Height)
		c.FillRect(x0, y0, x1, y1)
	}
}

func (p *Pipeline) drawGoal(st world.SimulationState, vis world.Visual, vp Viewport) {
	if st.Goal == nil {
		return
	}
	c := p.canvas
	c.SetPen(vis.Goal)
	cx, cy := vp.Project(st.Goal.X, st.Goal.Y)
	r := st.Goal.Radius * vp.Scale
	p.drawCircle(cx, cy, r)
	// Outer glow ring plus a cross marker so the goal reads at a glance
	// even when the body circle collapses to a dot.
	p.drawCircle(cx, cy, r*1.5)
	c.Set(cx, cy)
	c.Set(cx-1, cy)
	c.Set(cx+1, cy)
	c.Set(cx, cy-1)
	c.Set(cx, cy+1)
}

func (p *Pipeline) drawRays(st world.SimulationState, vis world.Visual, vp Viewport) {
	if st.RayLength <= 0 || len(st.SensorDistances) == 0 {
		return
	}
	c := p.canvas
	c.SetPen(vis.Ray)

	angles := st.SensorAngles()
	if len(angles) != len(st.SensorDistances) {
		return
	}
	ox, oy := vp.Project(st.Pose.X, st.Pose.Y)
	for i, d := range st.SensorDistances {
		if d < 0 {
			d = 0
		} else if d > 1 {
			d = 1
		}
		rad := (st.Pose.AngleDegrees + angles[i]) * math.Pi / 180
		ex := st.Pose.X + math.Cos(rad)*d*st.RayLength
		ey := st.Pose.Y + math.Sin(rad)*d*st.RayLength
		px, py := vp.Project(ex, ey)
		c.DrawLine(ox, oy, px, py)
		// Endpoint dot.
		c.Set(px+1, py)
		c.Set(px-1, py)
		c.Set(px, py+1)
		c.Set(px, py-1)
	}
}

// robotShapes maps shape tags to draw routines. The tag comes from the
// visual override when set, else the movement model; unknown tags fall
// back to the circle.
var robotShapes = map[string]func(*Pipeline, world.SimulationState, Viewport){
	"circle":       (*Pipeline).drawBodyCircle,
	"differential": (*Pipeline).drawBodyCircle,
	"oval":         (*Pipeline).drawBodyOval,
	"square":       (*Pipeline).drawBodySquare,
	"rectangle":    (*Pipeline).drawBodyRectangle,
	"triangle":     (*Pipeline).drawBodyTriangle,
	"pentagon":     (*Pipeline).drawBodyPentagon,
	"hexagon":      (*Pipeline).drawBodyHexagon,
	"tracked":      (*Pipeline).drawBodyTracked,
	"ackermann":    (*Pipeline).drawBodyAckermann,
	"rover":        (*Pipeline).drawBodyRover,
}

func shapeTag(st world.SimulationState) string {
	if st.Visual != nil && st.Visual.RobotShape != "" {
		return st.Visual.RobotShape
	}
	return string(st.MovementModel)
}

func (p *Pipeline) drawRobot(st world.SimulationState, vis world.Visual, vp Viewport) {
	c := p.canvas

	color := vis.Robot
	if st.Collision {
		color = vis.RobotCollision
	}
	c.SetPen(color)

	draw := robotShapes[shapeTag(st)]
	if draw == nil {
		draw = (*Pipeline).drawBodyCircle
	}
	draw(p, st, vp)

	// Heading indicator pokes past the body.
	rad := st.Pose.AngleDegrees * math.Pi / 180
	r := st.RobotRadius
	ox, oy := vp.Project(st.Pose.X, st.Pose.Y)
	hx, hy := vp.Project(st.Pose.X+math.Cos(rad)*r*1.6, st.Pose.Y+math.Sin(rad)*r*1.6)
	c.DrawLine(ox, oy, hx, hy)
}

func (p *Pipeline) drawBodyCircle(st world.SimulationState, vp Viewport) {
	cx, cy := vp.Project(st.Pose.X, st.Pose.Y)
	p.drawCircle(cx, cy, st.RobotRadius*vp.Scale)
	p.canvas.Set(cx, cy)
}

func (p *Pipeline) drawBodyOval(st world.SimulationState, vp Viewport) {
	r := st.RobotRadius
	rad := st.Pose.AngleDegrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	steps := int(math.Max(16, r*vp.Scale*4))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		lx := math.Cos(a) * r * 1.3
		ly := math.Sin(a) * r * 0.8
		px, py := vp.Project(st.Pose.X+lx*cos-ly*sin, st.Pose.Y+lx*sin+ly*cos)
		p.canvas.Set(px, py)
	}
	cx, cy := vp.Project(st.Pose.X, st.Pose.Y)
	p.canvas.Set(cx, cy)
}

func (p *Pipeline) drawBodySquare(st world.SimulationState, vp Viewport) {
	p.drawOrientedBox(st, vp, 0.9, 0.9)
}

func (p *Pipeline) drawBodyRectangle(st world.SimulationState, vp Viewport) {
	p.drawOrientedBox(st, vp, 1.4, 0.8)
}

func (p *Pipeline) drawBodyTriangle(st world.SimulationState, vp Viewport) {
	p.drawRegularPolygon(st, vp, 3)
}

func (p *Pipeline) drawBodyPentagon(st world.SimulationState, vp Viewport) {
	p.drawRegularPolygon(st, vp, 5)
}

func (p *Pipeline) drawBodyHexagon(st world.SimulationState, vp Viewport) {
	p.drawRegularPolygon(st, vp, 6)
}

// drawBodyTracked draws a box with full-length tracks along both sides.
func (p *Pipeline) drawBodyTracked(st world.SimulationState, vp Viewport) {
	p.drawOrientedBox(st, vp, 1.2, 0.9)
	p.drawSideBars(st, vp, 1.2, 1.1)
}

// drawBodyAckermann draws a car-like rectangle with stub wheels at the
// corners.
func (p *Pipeline) drawBodyAckermann(st world.SimulationState, vp Viewport) {
	p.drawOrientedBox(st, vp, 1.4, 0.9)
	p.drawCornerWheels(st, vp, 1.1, 1.1)
}

// drawBodyRover draws a wider skid-steer box with corner wheels.
func (p *Pipeline) drawBodyRover(st world.SimulationState, vp Viewport) {
	p.drawOrientedBox(st, vp, 1.2, 1.2)
	p.drawCornerWheels(st, vp, 0.9, 1.4)
}

// drawOrientedBox draws a rectangle of half-extents (lenFactor*r,
// widFactor*r) rotated to the heading.
func (p *Pipeline) drawOrientedBox(st world.SimulationState, vp Viewport, lenFactor, widFactor float64) {
	r := st.RobotRadius
	corners := [4][2]float64{
		{+r * lenFactor, +r * widFactor},
		{+r * lenFactor, -r * widFactor},
		{-r * lenFactor, -r * widFactor},
		{-r * lenFactor, +r * widFactor},
	}
	var px [4]int
	var py [4]int
	for i, corner := range corners {
		px[i], py[i] = p.projectLocal(st, vp, corner[0], corner[1])
	}
	c := p.canvas
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		c.DrawLine(px[i], py[i], px[j], py[j])
	}
	cx, cy := vp.Project(st.Pose.X, st.Pose.Y)
	c.Set(cx, cy)
}

// drawRegularPolygon draws an n-gon with its first vertex on the heading.
func (p *Pipeline) drawRegularPolygon(st world.SimulationState, vp Viewport, n int) {
	r := st.RobotRadius
	px := make([]int, n)
	py := make([]int, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		px[i], py[i] = p.projectLocal(st, vp, math.Cos(a)*r, math.Sin(a)*r)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		p.canvas.DrawLine(px[i], py[i], px[j], py[j])
	}
	cx, cy := vp.Project(st.Pose.X, st.Pose.Y)
	p.canvas.Set(cx, cy)
}

// drawSideBars draws track lines parallel to the heading on both sides.
func (p *Pipeline) drawSideBars(st world.SimulationState, vp Viewport, lenFactor, offFactor float64) {
	r := st.RobotRadius
	for _, side := range []float64{-1, 1} {
		x0, y0 := p.projectLocal(st, vp, -r*lenFactor, side*r*offFactor)
		x1, y1 := p.projectLocal(st, vp, +r*lenFactor, side*r*offFactor)
		p.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// drawCornerWheels draws short heading-aligned stubs at the four corners.
func (p *Pipeline) drawCornerWheels(st world.SimulationState, vp Viewport, lenFactor, offFactor float64) {
	r := st.RobotRadius
	wheel := r * 0.35
	for _, lx := range []float64{-r * lenFactor, +r * lenFactor} {
		for _, side := range []float64{-1, 1} {
			ly := side * r * offFactor
			x0, y0 := p.projectLocal(st, vp, lx-wheel, ly)
			x1, y1 := p.projectLocal(st, vp, lx+wheel, ly)
			p.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
}

// projectLocal maps a robot-frame point (x forward, y right) onto the
// canvas.
func (p *Pipeline) projectLocal(st world.SimulationState, vp Viewport, lx, ly float64) (int, int) {
	rad := st.Pose.AngleDegrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return vp.Project(st.Pose.X+lx*cos-ly*sin, st.Pose.Y+lx*sin+ly*cos)
}

// drawCircle plots a parametric circle in sub-pixel space.
func (p *Pipeline) drawCircle(cx, cy int, radius float64) {
	if radius < 1 {
		p.canvas.Set(cx, cy)
		return
	}
	steps := int(math.Max(12, radius*4))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p.canvas.Set(cx+int(math.Round(math.Cos(a)*radius)), cy+int(math.Round(math.Sin(a)*radius)))
	}
}
