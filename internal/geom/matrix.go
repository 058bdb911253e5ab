package geom

import "math"

// Matrix is a 3x3 homogeneous transformation matrix, indexed [row][col].
// Points are column vectors, so a matrix is applied as M · p:
//
//	| a  b  tx |   | x |
//	| c  d  ty | · | y |
//	| 0  0  1  |   | z |
type Matrix [3][3]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{
		{1, 0, tx},
		{0, 1, ty},
		{0, 0, 1},
	}
}

// Scale returns a scale matrix with independent factors per axis.
func Scale(sx, sy float64) Matrix {
	return Matrix{
		{sx, 0, 0},
		{0, sy, 0},
		{0, 0, 1},
	}
}

// Rotate returns a counter-clockwise rotation matrix (angle in radians).
func Rotate(radians float64) Matrix {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Matrix{
		{cos, -sin, 0},
		{sin, cos, 0},
		{0, 0, 1},
	}
}

// RotateDegrees returns a rotation matrix (angle in degrees).
func RotateDegrees(degrees float64) Matrix {
	return Rotate(degrees * math.Pi / 180.0)
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*other[0][j] + m[i][1]*other[1][j] + m[i][2]*other[2][j]
		}
	}
	return r
}

// Compose multiplies the matrices left to right, starting from the identity.
// Compose(A, B, C) applied to p is A · B · C · p, so C acts first.
func Compose(ms ...Matrix) Matrix {
	result := Identity()
	for _, m := range ms {
		result = result.Multiply(m)
	}
	return result
}

// Apply transforms a point: result = m · p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z,
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z,
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z,
	}
}

// ApplyAll transforms every point into a new slice.
func (m Matrix) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

// AboutPivot conjugates m with a translation so that it acts around pivot
// instead of the origin: T(+pivot) · m · T(-pivot).
func AboutPivot(m Matrix, pivot Point) Matrix {
	return Compose(
		Translate(pivot.X, pivot.Y),
		m,
		Translate(-pivot.X, -pivot.Y),
	)
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-id[i][j]) >= eps {
				return false
			}
		}
	}
	return true
}
