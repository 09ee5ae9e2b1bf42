// Package telemetry aggregates per-frame statistics for the stats panel.
package telemetry

import "github.com/san-kum/roboviz/internal/world"

// Metric observes simulation frames and reduces them to one value.
type Metric interface {
	Name() string
	Observe(st world.SimulationState)
	Value() float64
	Reset()
}

// historyCapacity bounds the reward sparkline buffer.
const historyCapacity = 600

// RewardHistory keeps a rolling window of reward values for charting.
type RewardHistory struct {
	name   string
	values []float64
}

func NewRewardHistory() *RewardHistory {
	return &RewardHistory{
		name:   "reward",
		values: make([]float64, 0, historyCapacity),
	}
}

func (r *RewardHistory) Name() string { return r.name }

func (r *RewardHistory) Observe(st world.SimulationState) {
	r.values = append(r.values, st.Reward)
	if len(r.values) > historyCapacity {
		r.values = r.values[1:]
	}
}

// Value returns the most recent reward.
func (r *RewardHistory) Value() float64 {
	if len(r.values) == 0 {
		return 0
	}
	return r.values[len(r.values)-1]
}

// Series returns the buffered window, oldest first. The slice is shared;
// callers must not mutate it.
func (r *RewardHistory) Series() []float64 {
	return r.values
}

func (r *RewardHistory) Reset() {
	r.values = r.values[:0]
}

// CollisionCount counts frames that entered the colliding state. Frames
// that stay in contact count once per contact, not per frame.
type CollisionCount struct {
	name      string
	count     int
	inContact bool
}

func NewCollisionCount() *CollisionCount {
	return &CollisionCount{name: "collisions"}
}

func (c *CollisionCount) Name() string { return c.name }

func (c *CollisionCount) Observe(st world.SimulationState) {
	if st.Collision && !c.inContact {
		c.count++
	}
	c.inContact = st.Collision
}

func (c *CollisionCount) Value() float64 {
	return float64(c.count)
}

func (c *CollisionCount) Reset() {
	c.count = 0
	c.inContact = false
}

// MinClearance tracks the smallest normalized sensor reading in the
// current frame, a proxy for how close the robot is to hitting something.
type MinClearance struct {
	name    string
	current float64
}

func NewMinClearance() *MinClearance {
	return &MinClearance{name: "clearance", current: 1}
}

func (m *MinClearance) Name() string { return m.name }

func (m *MinClearance) Observe(st world.SimulationState) {
	min := 1.0
	for _, d := range st.SensorDistances {
		if d < min {
			min = d
		}
	}
	m.current = min
}

func (m *MinClearance) Value() float64 {
	return m.current
}

func (m *MinClearance) Reset() {
	m.current = 1
}

// Tracker fans one frame out to a fixed metric set.
type Tracker struct {
	Reward     *RewardHistory
	Collisions *CollisionCount
	Clearance  *MinClearance
}

func NewTracker() *Tracker {
	return &Tracker{
		Reward:     NewRewardHistory(),
		Collisions: NewCollisionCount(),
		Clearance:  NewMinClearance(),
	}
}

func (t *Tracker) Observe(st world.SimulationState) {
	t.Reward.Observe(st)
	t.Collisions.Observe(st)
	t.Clearance.Observe(st)
}

func (t *Tracker) Reset() {
	t.Reward.Reset()
	t.Collisions.Reset()
	t.Clearance.Reset()
}
