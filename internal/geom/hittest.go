package geom

// segmentsCross reports whether segment p→r crosses segment a→b.
// Parallel segments never cross, and touching at an endpoint of either
// segment does not count.
func segmentsCross(p, r, a, b Point) bool {
	d1 := r.Sub(p)
	d2 := b.Sub(a)

	det := d1.Cross(d2)
	if det == 0 {
		return false
	}

	ap := a.Sub(p)
	t := ap.Cross(d2) / det
	u := ap.Cross(d1) / det

	return t > 0 && t < 1 && u > 0 && u < 1
}

// RayCastParity reports whether p lies inside the polygon using the
// even-odd rule. A horizontal ray is cast from p towards +X and crossings
// are counted over every edge, including the closing edge from the last
// vertex back to the first.
func RayCastParity(p Point, vertices []Point) bool {
	if len(vertices) < 3 {
		return false
	}

	// The ray only has to reach past every vertex.
	far := p.X
	for _, v := range vertices {
		far = max(far, v.X)
	}
	end := Pt(far+1, p.Y)

	crossings := 0
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		if segmentsCross(p, end, a, b) {
			crossings++
		}
	}

	return crossings%2 == 1
}

// PointInCircle reports whether p is strictly inside the circle centered at
// center that passes through rim.
func PointInCircle(p, center, rim Point) bool {
	return Distance(p, center) < Distance(center, rim)
}

// PointNearSegment reports whether p falls inside the bounding box of a→b
// grown by tolerance on every side.
func PointNearSegment(p, a, b Point, tolerance float64) bool {
	box := BoundsOf([]Point{a, b}).Expand(tolerance)
	return RayCastParity(p, box.Corners())
}
