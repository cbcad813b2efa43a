package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera is aimed at
	Up          core.Vec3 // World up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
	NearClip    float64   // Rays start at this distance (0 = at the eye)
	FarClip     float64   // Rays end at this distance (0 = unbounded)
}

// Camera generates primary rays from normalized film coordinates
type Camera struct {
	position core.Vec3
	frame    core.Frame // Camera-to-world basis; the view direction is -N
	tanHalfH float64
	tanHalfV float64
	nearClip float64
	farClip  float64
	config   CameraConfig
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1
	}
	if config.VFov <= 0 {
		config.VFov = 40
	}
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}

	// Right-handed basis looking down -w
	w := config.Position.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	tanHalfV := math.Tan(config.VFov * math.Pi / 360)
	farClip := config.FarClip
	if farClip <= 0 {
		farClip = math.Inf(1)
	}

	return &Camera{
		position: config.Position,
		frame:    core.Frame{T: u, B: v, N: w},
		tanHalfV: tanHalfV,
		tanHalfH: tanHalfV * config.AspectRatio,
		nearClip: config.NearClip,
		farClip:  farClip,
		config:   config,
	}
}

// GenerateRay returns the ray through film coordinates (u, v) in [0,1]^2,
// where (0,0) is the bottom-left corner. The ray's interval is set to the
// clip distances.
func (c *Camera) GenerateRay(u, v float64) core.Ray {
	local := core.NewVec3((2*u-1)*c.tanHalfH, (2*v-1)*c.tanHalfV, -1)
	direction := c.frame.ToWorld(local).Normalize()

	ray := core.NewRay(c.position, direction)
	ray.MinT = c.nearClip
	ray.MaxT = c.farClip
	return ray
}

// HFov returns the horizontal field of view in degrees
func (c *Camera) HFov() float64 {
	return 2 * math.Atan(c.tanHalfH) * 180 / math.Pi
}

// Config returns the configuration the camera was built from, with defaults applied
func (c *Camera) Config() CameraConfig {
	return c.config
}
