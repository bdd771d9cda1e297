package physics

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/motion/motion"
)

var _ motion.SpatialQuery = (*World)(nil)

func queryFilter(mask motion.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

func (w *World) surfaceOf(shape *cp.Shape) motion.SurfaceID {
	return w.shapeToID[shape]
}

// Overlap returns every shape on mask within radius of center, nearest first.
func (w *World) Overlap(center mgl64.Vec3, radius float64, mask motion.LayerMask) []motion.Contact {
	if w == nil || w.space == nil {
		return nil
	}
	p := toVector(center)
	var out []motion.Contact
	w.space.BBQuery(cp.NewBBForCircle(p, radius), queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		info := shape.PointQuery(p)
		if info.Distance > radius {
			return
		}
		out = append(out, motion.Contact{
			Point:    fromVector(info.Point),
			Distance: info.Distance,
			Surface:  w.surfaceOf(shape),
		})
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// Raycast returns the first solid hit along dir.
func (w *World) Raycast(origin, dir mgl64.Vec3, distance float64, mask motion.LayerMask) (motion.Hit, bool) {
	if w == nil || w.space == nil || distance <= 0 {
		return motion.Hit{}, false
	}
	start := toVector(origin)
	d := toVector(dir)
	if d.LengthSq() == 0 {
		return motion.Hit{}, false
	}
	end := start.Add(d.Normalize().Mult(distance))
	info := w.space.SegmentQueryFirst(start, end, 0, queryFilter(mask))
	if info.Shape == nil {
		return motion.Hit{}, false
	}
	return motion.Hit{
		Point:    fromVector(info.Point),
		Normal:   fromVector(info.Normal),
		Origin:   fromVector(info.Shape.BB().Center()),
		Distance: info.Alpha * distance,
		Surface:  w.surfaceOf(info.Shape),
	}, true
}

// CapsuleCast sweeps the bounding box of the capsule a-b along dir and returns every
// shape it touches, sensors included, nearest to the capsule centre first.
func (w *World) CapsuleCast(a, b mgl64.Vec3, radius float64, dir mgl64.Vec3, distance float64, mask motion.LayerMask) []motion.Hit {
	if w == nil || w.space == nil {
		return nil
	}
	pa, pb := toVector(a), toVector(b)
	sweep := cp.Vector{}
	if d := toVector(dir); d.LengthSq() > 0 {
		sweep = d.Normalize().Mult(distance)
	}
	bb := cp.NewBBForCircle(pa, radius).
		Merge(cp.NewBBForCircle(pb, radius)).
		Merge(cp.NewBBForCircle(pa.Add(sweep), radius)).
		Merge(cp.NewBBForCircle(pb.Add(sweep), radius))
	mid := pa.Lerp(pb, 0.5)

	var out []motion.Hit
	w.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		center := shape.BB().Center()
		info := shape.PointQuery(mid)
		out = append(out, motion.Hit{
			Point:    fromVector(info.Point),
			Normal:   fromVector(info.Gradient),
			Origin:   fromVector(center),
			Distance: center.Distance(mid),
			Surface:  w.surfaceOf(shape),
		})
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
