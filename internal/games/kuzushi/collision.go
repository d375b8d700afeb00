package kuzushi

import "github.com/vovakirdan/kuzushi/internal/core"

// CircleIntersectsRect reports whether a circle touches or overlaps r.
// Uses the distance from the centre to the closest point of r.
func CircleIntersectsRect(center core.Vec2, radius float64, r core.RectF) bool {
	closest := r.ClosestPoint(center)
	dx := center.X - closest.X
	dy := center.Y - closest.Y
	return dx*dx+dy*dy <= radius*radius
}

// ResolveBallBlock resolves at most one block collision for b.
//
// Active blocks are scanned in row-major order and the first overlapping one
// loses a health point. A block reaching zero is deactivated and awards
// points through the tracker. The ball's vertical velocity is flipped
// regardless of the contact side. Returns the index of the block hit, or -1.
func ResolveBallBlock(b *Ball, radius float64, grid *Grid, tracker *Tracker) int {
	for i := range grid.Blocks {
		blk := &grid.Blocks[i]
		if !blk.Active || !CircleIntersectsRect(b.Pos, radius, blk.Rect) {
			continue
		}
		if grid.damage(i) {
			tracker.AwardBlock()
		}
		b.Vel.Y = -b.Vel.Y
		return i
	}
	return -1
}
