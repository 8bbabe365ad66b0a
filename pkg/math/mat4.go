package math

// Mat4 is a 4x4 matrix stored column by column: the element in row r,
// column c is m[c*4+r]. Points are column vectors, so a.Mul(b) applies b
// first.
type Mat4 [16]float32

// At returns the element in the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// fromRows builds a matrix from its rows as written on paper.
func fromRows(r0, r1, r2, r3 [4]float32) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		m[c*4+0] = r0[c]
		m[c*4+1] = r1[c]
		m[c*4+2] = r2[c]
		m[c*4+3] = r3[c]
	}
	return m
}

// Ortho maps the view-space box [left,right]x[bottom,top]x[-near,-far] onto
// normalized device coordinates [-1,1] on every axis.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	w, h, d := right-left, top-bottom, far-near
	return fromRows(
		[4]float32{2 / w, 0, 0, -(right + left) / w},
		[4]float32{0, 2 / h, 0, -(top + bottom) / h},
		[4]float32{0, 0, -2 / d, -(far + near) / d},
		[4]float32{0, 0, 0, 1},
	)
}

// LookAt returns the view matrix of an eye at eye looking at target. In view
// space x points right, y points up and the eye looks down -z, so a larger z
// is nearer the eye.
func LookAt(eye, target, up Vec3) Mat4 {
	back := eye.Sub(target).Normalize()
	right := up.Cross(back).Normalize()
	trueUp := back.Cross(right)
	return fromRows(
		[4]float32{right.X, right.Y, right.Z, -right.Dot(eye)},
		[4]float32{trueUp.X, trueUp.Y, trueUp.Z, -trueUp.Dot(eye)},
		[4]float32{back.X, back.Y, back.Z, -back.Dot(eye)},
		[4]float32{0, 0, 0, 1},
	)
}

// Viewport maps normalized device coordinates onto a width x height pixel
// canvas whose y axis points down. z passes through unchanged.
func Viewport(width, height float32) Mat4 {
	return fromRows(
		[4]float32{width / 2, 0, 0, width / 2},
		[4]float32{0, -height / 2, 0, height / 2},
		[4]float32{0, 0, 1, 0},
		[4]float32{0, 0, 0, 1},
	)
}

// Mul returns m*o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.At(r, k) * o.At(k, c)
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Apply transforms the point v (w = 1), dividing by w when it is not 1.
func (m Mat4) Apply(v Vec3) Vec3 {
	var p [4]float32
	for r := 0; r < 4; r++ {
		p[r] = m.At(r, 0)*v.X + m.At(r, 1)*v.Y + m.At(r, 2)*v.Z + m.At(r, 3)
	}
	if p[3] != 0 && p[3] != 1 {
		return Vec3{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
	}
	return Vec3{p[0], p[1], p[2]}
}
