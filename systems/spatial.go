// Package systems provides the physics systems driving the orb cluster.
package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid.
//
// Contract: the grid must be cleared and fully repopulated once per frame
// before QueryNearbyInto is called for that frame. Cell size is twice the
// largest orb radius, so any truly overlapping pair shares a cell or borders
// one; a 3x3 neighborhood query therefore has zero false negatives.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat grid of entity lists, reused across frames
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Add inserts an entity into the grid at the given position.
func (g *SpatialGrid) Add(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], e)
}

// QueryNearbyInto appends all entities in the 3x3 cell neighborhood around
// the given position to dst, excluding the given entity, and returns the
// updated slice. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryNearbyInto(dst []ecs.Entity, x, y float32, exclude ecs.Entity) []ecs.Entity {
	centerCol := g.clampCol(int(x / g.cellSize))
	centerRow := g.clampRow(int(y / g.cellSize))

	for dr := -1; dr <= 1; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, e := range g.cells[row*g.cols+col] {
				if e == exclude {
					continue
				}
				dst = append(dst, e)
			}
		}
	}

	return dst
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col := g.clampCol(int(x / g.cellSize))
	row := g.clampRow(int(y / g.cellSize))
	return row*g.cols + col
}

func (g *SpatialGrid) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

func (g *SpatialGrid) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}
