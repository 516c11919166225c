package components

// PositionMemory is a fixed-size ring of past positions.
// Oldest always points at the next slot to overwrite, which holds the
// position recorded len(Slots) ticks ago.
type PositionMemory struct {
	Slots  []Position `inspect:"skip"`
	Oldest int        `inspect:"skip"`
}

// NewPositionMemory returns a ring of size slots all set to (x, y).
func NewPositionMemory(size int, x, y float32) PositionMemory {
	slots := make([]Position, size)
	for i := range slots {
		slots[i] = Position{X: x, Y: y}
	}
	return PositionMemory{Slots: slots}
}

// Record overwrites the oldest slot and advances the cursor.
func (m *PositionMemory) Record(x, y float32) {
	m.Slots[m.Oldest] = Position{X: x, Y: y}
	m.Oldest = (m.Oldest + 1) % len(m.Slots)
}

// OldestPosition returns the breadcrumb position used for trail writes.
func (m *PositionMemory) OldestPosition() Position {
	return m.Slots[m.Oldest]
}

// Chronological returns the stored positions from oldest to newest.
func (m *PositionMemory) Chronological() []Position {
	n := len(m.Slots)
	out := make([]Position, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, m.Slots[(m.Oldest+i)%n])
	}
	return out
}
