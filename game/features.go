package game

import "github.com/pthm-cable/formica/grid"

// newFeature builds a feature of the given kind as the tool layer places it.
func (g *Game) newFeature(kind grid.FeatureKind, x, y float32) *grid.Feature {
	switch kind {
	case grid.KindFood:
		f := grid.NewFood(x, y, g.cfg.Features.ToolFoodStorage)
		f.RegenEvery = int64(g.cfg.Features.FoodRegenEvery)
		return f
	case grid.KindHome:
		return grid.NewHome(x, y)
	case grid.KindGrass:
		return grid.NewGrass(x, y, float32(g.cfg.Features.GrassFriction))
	case grid.KindObstacle:
		return grid.NewObstacle(x, y)
	case grid.KindTeleporter:
		f := grid.NewTeleporter(x, y)
		f.Color = g.nextPortalColor
		g.nextPortalColor++
		return f
	default:
		return nil
	}
}

// PlaceFeature puts a new feature of kind on the tile under (x, y).
// Returns nil if the point is outside the world or the tile already
// holds a feature.
func (g *Game) PlaceFeature(kind grid.FeatureKind, x, y float32) *grid.Feature {
	t := g.grid.TileAt(x, y)
	if t == nil || t.Feature() != nil {
		return nil
	}
	f := g.newFeature(kind, x, y)
	if f == nil || !g.grid.PlaceFeature(f) {
		return nil
	}
	return f
}

// RemoveFeatureAt removes the feature on the tile under (x, y). A removed
// teleporter leaves its partner unlinked. Returns false if there was none.
func (g *Game) RemoveFeatureAt(x, y float32) bool {
	f := g.grid.FeatureAt(x, y)
	if f == nil {
		return false
	}
	if f.ID == g.pendingTeleporter {
		g.pendingTeleporter = 0
		if g.tools != nil {
			g.tools.PendingTeleporter = false
		}
	}
	g.grid.RemoveFeature(f)
	return true
}

// LinkTeleporters pairs two placed teleporters.
func (g *Game) LinkTeleporters(a, b grid.FeatureID) bool {
	return g.grid.Link(a, b)
}

// PlaceTeleporter places one end of a teleporter pair at (x, y). The first
// call leaves the pair pending; the second links both ends. Returns the
// placed feature, or nil if nothing was placed.
func (g *Game) PlaceTeleporter(x, y float32) *grid.Feature {
	f := g.PlaceFeature(grid.KindTeleporter, x, y)
	if f == nil {
		return nil
	}
	if first := g.grid.Feature(g.pendingTeleporter); first != nil && first.Kind == grid.KindTeleporter {
		g.grid.Link(first.ID, f.ID)
		g.pendingTeleporter = 0
		g.nextPortalColor--
		return f
	}
	g.pendingTeleporter = f.ID
	return f
}

// PendingTeleporter returns the first end of an incomplete pair, or nil.
func (g *Game) PendingTeleporter() *grid.Feature {
	return g.grid.Feature(g.pendingTeleporter)
}
