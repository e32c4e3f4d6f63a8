package xsect

import (
	"github.com/unixpickle/model3d/model2d"
)

// segmentEpsilon widens 2D segments by this fraction of their length at both
// ends so that rays through a shared section vertex hit both neighboring
// edges.
const segmentEpsilon = 1e-9

// raySegmentHit finds where a ray crosses seg, treating the ray as the
// segment from its origin to origin+direction.
func raySegmentHit(ray *model2d.Ray, seg *model2d.Segment) (model2d.Coord, bool) {
	slack := seg[1].Sub(seg[0]).Scale(segmentEpsilon)
	widened := &model2d.Segment{seg[0].Sub(slack), seg[1].Add(slack)}
	collision, ok := widened.FirstRayCollision(ray)
	if !ok || collision.Scale > 1 {
		return model2d.Coord{}, false
	}
	return ray.Origin.Add(ray.Direction.Scale(collision.Scale)), true
}
