// Package geometry builds the polyhedra and synthetic scan data shown in the
// animation.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/scangif/pkg/math"
)

// Face is an ordered loop of vertices. The order is the winding used when the
// polygon is filled and outlined.
type Face []math.Vec3

// Mesh is an ordered list of faces. Generators return fresh slices on every
// call; callers never modify a mesh in place.
type Mesh []Face

// Shape selects which polyhedron is the scanned object.
type Shape string

// Supported shapes.
const (
	ShapeCube    Shape = "cube"
	ShapePyramid Shape = "pyramid"
	ShapePrism   Shape = "prism"
)

// Valid reports whether s names a known shape.
func (s Shape) Valid() bool {
	switch s {
	case ShapeCube, ShapePyramid, ShapePrism:
		return true
	}
	return false
}

// Cube returns an axis-aligned cube as 6 quads. Each quad lists its corners
// in cyclic order around the face.
func Cube(center math.Vec3, half float32) Mesh {
	cx, cy, cz := center.X, center.Y, center.Z
	r := half
	v := [8]math.Vec3{
		{X: cx - r, Y: cy - r, Z: cz - r}, {X: cx + r, Y: cy - r, Z: cz - r},
		{X: cx + r, Y: cy + r, Z: cz - r}, {X: cx - r, Y: cy + r, Z: cz - r},
		{X: cx - r, Y: cy - r, Z: cz + r}, {X: cx + r, Y: cy - r, Z: cz + r},
		{X: cx + r, Y: cy + r, Z: cz + r}, {X: cx - r, Y: cy + r, Z: cz + r},
	}
	return Mesh{
		{v[0], v[1], v[5], v[4]},
		{v[1], v[2], v[6], v[5]},
		{v[2], v[3], v[7], v[6]},
		{v[3], v[0], v[4], v[7]},
		{v[4], v[5], v[6], v[7]},
		{v[0], v[3], v[2], v[1]},
	}
}

// Pyramid returns a square pyramid whose base sits at center.Z and whose apex
// rises 1.5*half above it.
func Pyramid(center math.Vec3, half float32) Mesh {
	cx, cy, cz := center.X, center.Y, center.Z
	r := half
	v := [5]math.Vec3{
		{X: cx - r, Y: cy - r, Z: cz}, {X: cx + r, Y: cy - r, Z: cz},
		{X: cx + r, Y: cy + r, Z: cz}, {X: cx - r, Y: cy + r, Z: cz},
		{X: cx, Y: cy, Z: cz + r*1.5},
	}
	return Mesh{
		{v[0], v[1], v[2], v[3]},
		{v[0], v[1], v[4]},
		{v[1], v[2], v[4]},
		{v[2], v[3], v[4]},
		{v[3], v[0], v[4]},
	}
}

// prismSides is the number of sides of the prism cross-section.
const prismSides = 6

// Prism returns a hexagonal prism standing on the Z axis: a bottom and top
// hexagon plus one quad per side.
func Prism(center math.Vec3, radius, height float32) Mesh {
	h := height / 2
	bottom := make(Face, prismSides)
	top := make(Face, prismSides)
	for k := 0; k < prismSides; k++ {
		a := 2 * gomath.Pi * float64(k) / prismSides
		x := center.X + radius*float32(gomath.Cos(a))
		y := center.Y + radius*float32(gomath.Sin(a))
		bottom[k] = math.Vec3{X: x, Y: y, Z: center.Z - h}
		top[k] = math.Vec3{X: x, Y: y, Z: center.Z + h}
	}

	mesh := Mesh{bottom, top}
	for i := 0; i < prismSides; i++ {
		j := (i + 1) % prismSides
		mesh = append(mesh, Face{bottom[i], bottom[j], top[j], top[i]})
	}
	return mesh
}

// ForShape returns the scene object for a shape, sized to sit inside the
// point-cloud shell around the origin. Unknown shapes fall back to the cube.
func ForShape(s Shape) Mesh {
	switch s {
	case ShapePyramid:
		return Pyramid(math.Vec3{Z: -0.3}, 0.5)
	case ShapePrism:
		return Prism(math.Vec3{}, 0.5, 1.0)
	default:
		return Cube(math.Vec3{}, 0.5)
	}
}

// lineupSlots are the floor positions of the two decoys standing either side
// of the target during identification.
var lineupSlots = [2]math.Vec3{{X: 1.2}, {X: -1.2}}

// decoy returns a shape sized and placed as a bystander at slot.
func decoy(s Shape, slot math.Vec3) Mesh {
	switch s {
	case ShapePyramid:
		return Pyramid(slot.Add(math.Vec3{Z: -0.2}), 0.5)
	case ShapePrism:
		return Prism(slot, 0.4, 0.8)
	default:
		return Cube(slot, 0.4)
	}
}

// Lineup returns the target object at the origin and the other two shapes as
// decoys to its right and left.
func Lineup(target Shape) (Mesh, []Mesh) {
	if !target.Valid() {
		target = ShapeCube
	}
	var decoys []Mesh
	for _, s := range []Shape{ShapePyramid, ShapePrism, ShapeCube} {
		if s == target {
			continue
		}
		decoys = append(decoys, decoy(s, lineupSlots[len(decoys)]))
	}
	return ForShape(target), decoys
}

// Vertices returns the distinct vertices of the mesh in first-seen order.
func (m Mesh) Vertices() []math.Vec3 {
	seen := make(map[math.Vec3]struct{})
	var out []math.Vec3
	for _, f := range m {
		for _, v := range f {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// Center returns the mean of the face's vertices.
func (f Face) Center() math.Vec3 {
	return math.Centroid(f)
}
