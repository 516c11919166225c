package grid

// FeatureKind identifies the variant held by a Feature.
type FeatureKind uint8

const (
	KindFood FeatureKind = iota
	KindHome
	KindGrass
	KindObstacle
	KindTeleporter
)

func (k FeatureKind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindHome:
		return "home"
	case KindGrass:
		return "grass"
	case KindObstacle:
		return "obstacle"
	case KindTeleporter:
		return "teleporter"
	default:
		return "unknown"
	}
}

// FeatureID indexes a placed feature in the grid. Zero means none.
type FeatureID uint32

// Feature is a placeable map element occupying at most one tile.
// Kind selects which of the kind-specific fields are meaningful.
type Feature struct {
	ID   FeatureID
	Kind FeatureKind
	X, Y float32 // Placement point in world coordinates

	Passable bool
	Friction float32

	// Food
	Storage    int
	Capacity   int
	Infinite   bool
	RegenEvery int64 // Ticks per refilled unit, 0 disables regrowth

	// Home
	Collected int

	// Teleporter
	Link  FeatureID
	Color uint8

	col, row int
	placed   bool
}

// NewFood creates a finite food source.
func NewFood(x, y float32, storage int) *Feature {
	return &Feature{Kind: KindFood, X: x, Y: y, Passable: true, Friction: 1, Storage: storage, Capacity: storage}
}

// NewInfiniteFood creates a food source that never runs out.
func NewInfiniteFood(x, y float32) *Feature {
	f := NewFood(x, y, 0)
	f.Infinite = true
	return f
}

// NewHome creates a home base.
func NewHome(x, y float32) *Feature {
	return &Feature{Kind: KindHome, X: x, Y: y, Passable: true, Friction: 1}
}

// NewGrass creates a passable tile that slows ants down.
func NewGrass(x, y, friction float32) *Feature {
	return &Feature{Kind: KindGrass, X: x, Y: y, Passable: true, Friction: friction}
}

// NewObstacle creates an impassable block.
func NewObstacle(x, y float32) *Feature {
	return &Feature{Kind: KindObstacle, X: x, Y: y, Passable: false, Friction: 1}
}

// NewTeleporter creates an unlinked teleporter.
func NewTeleporter(x, y float32) *Feature {
	return &Feature{Kind: KindTeleporter, X: x, Y: y, Passable: true, Friction: 1}
}

// Placed reports whether the feature is currently linked into a tile.
func (f *Feature) Placed() bool {
	return f.placed
}

// TileIndex returns the tile the feature was placed into.
func (f *Feature) TileIndex() (col, row int) {
	return f.col, f.row
}

// Take consumes one unit of food. Returns false when nothing is left.
func (f *Feature) Take() bool {
	if f.Kind != KindFood {
		return false
	}
	if f.Infinite {
		return true
	}
	if f.Storage > 0 {
		f.Storage--
		return true
	}
	return false
}

// IsEmpty reports whether a finite food source has run out.
func (f *Feature) IsEmpty() bool {
	return f.Kind == KindFood && !f.Infinite && f.Storage <= 0
}

// Deposit records one unit of food delivered to a home.
func (f *Feature) Deposit() {
	if f.Kind == KindHome {
		f.Collected++
	}
}

// advance applies per-tick behavior.
func (f *Feature) advance(tick int64) {
	switch f.Kind {
	case KindFood:
		if f.RegenEvery > 0 && !f.Infinite && f.Storage < f.Capacity && tick%f.RegenEvery == 0 {
			f.Storage++
		}
	case KindHome, KindGrass, KindObstacle, KindTeleporter:
	}
}
