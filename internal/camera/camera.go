// Package camera provides view poses, the scanning camera's orbit, and the
// orthographic projector that maps the scene onto the canvas.
package camera

import (
	gomath "math"

	"github.com/Faultbox/scangif/pkg/math"
)

// ViewPose is the direction the scene is viewed from, in degrees. Azimuth is
// measured in the floor plane from +X towards +Y; elevation is the angle above
// the floor.
type ViewPose struct {
	Elevation float64
	Azimuth   float64
}

// Direction returns the unit vector from the origin towards the viewer.
func (v ViewPose) Direction() math.Vec3 {
	return math.Spherical(v.Elevation, v.Azimuth)
}

// FloorDirection returns the view direction's floor-plane components
// (cos φ cos θ, cos φ sin θ). The vertical component is left out on purpose:
// path occlusion is judged on the floor plane only.
func (v ViewPose) FloorDirection() math.Vec2 {
	return v.Direction().XY()
}

// IsFront reports whether a floor-plane point lies on the viewer's side of the
// object center, i.e. its dot product with the floor direction is positive.
func (v ViewPose) IsFront(p math.Vec2) bool {
	return p.Dot(v.FloorDirection()) > 0
}

// Pose is a camera placed in the scene, looking at Target.
type Pose struct {
	Position math.Vec3
	Target   math.Vec3
}

// NewPose returns a pose at position looking at the origin.
func NewPose(position math.Vec3) Pose {
	return Pose{Position: position}
}

// Orbit is a descending helix around the Z axis. At local time 0 the camera
// is at angle Offset and height TopZ; the angle decreases by Sweep radians and
// the height falls to BottomZ by local time 1.
type Orbit struct {
	Radius  float32
	Sweep   float64 // total angle travelled, radians
	Offset  float64 // starting angle, radians
	TopZ    float32
	BottomZ float32
}

// ScanOrbit returns the three-revolution helix used while scanning.
func ScanOrbit() Orbit {
	return Orbit{
		Radius:  1.45,
		Sweep:   6 * gomath.Pi,
		Offset:  gomath.Pi / 4,
		TopZ:    0.8,
		BottomZ: -0.8,
	}
}

// Angle returns the azimuthal angle at local time t, in radians.
func (o Orbit) Angle(t float64) float64 {
	return -t*o.Sweep + o.Offset
}

// Position returns the camera position at local time t.
func (o Orbit) Position(t float64) math.Vec3 {
	a := o.Angle(t)
	return math.Vec3{
		X: o.Radius * float32(gomath.Cos(a)),
		Y: o.Radius * float32(gomath.Sin(a)),
		Z: o.TopZ - float32(t)*(o.TopZ-o.BottomZ),
	}
}

// Samples returns n evenly spaced positions from local time 0 to upTo
// inclusive. n below 2 is raised to 2.
func (o Orbit) Samples(upTo float64, n int) []math.Vec3 {
	if n < 2 {
		n = 2
	}
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = o.Position(upTo * float64(i) / float64(n-1))
	}
	return out
}
