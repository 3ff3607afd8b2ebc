package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape is a geometric primitive that can be hit by rays.
// Every shape exclusively owns its material.
type Shape interface {
	// Collide returns the nearest intersection with parameter strictly inside (tMin, tMax)
	Collide(ray Ray, tMin, tMax float64) (*Collision, bool)
	// NormalAt returns the unit outward normal at a surface position
	NormalAt(position Vec3) Vec3
	// TextureCoordsAt returns the shape's own parametrization of a surface position
	TextureCoordsAt(position Vec3) Vec2
	// Material returns the owned material
	Material() Material
}

// Material computes the local color contribution and the next path segment at a collision
type Material interface {
	// Scatter returns the deterministic local light contribution at the collision
	Scatter(rayIn Ray, hit *Collision) Vec3
	// Bounce returns the continuation ray; false terminates the path at this vertex
	Bounce(rayIn Ray, hit *Collision, sampler Sampler) (Ray, bool)
}

// Collision describes a ray hit. It only lives while the hit is being shaded.
type Collision struct {
	Distance float64 // Ray parameter of the hit
	Position Vec3    // World-space hit position
	Shape    Shape   // Shape that was hit
}

// NewCollision creates a collision record
func NewCollision(distance float64, position Vec3, shape Shape) *Collision {
	return &Collision{Distance: distance, Position: position, Shape: shape}
}

// Normal returns the outward normal of the hit shape at the hit position
func (c *Collision) Normal() Vec3 {
	return c.Shape.NormalAt(c.Position)
}

// TextureCoords returns the texture coordinates of the hit position
func (c *Collision) TextureCoords() Vec2 {
	return c.Shape.TextureCoordsAt(c.Position)
}

// Color returns the local color contribution of the hit shape's material
func (c *Collision) Color(rayIn Ray) Vec3 {
	return c.Shape.Material().Scatter(rayIn, c)
}

// Bounce asks the hit shape's material for the next path segment
func (c *Collision) Bounce(rayIn Ray, sampler Sampler) (Ray, bool) {
	return c.Shape.Material().Bounce(rayIn, c, sampler)
}
