package scene

import (
	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/geometry"
	"github.com/df07/go-anytime-raytracer/pkg/material"
	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

// NewDefaultScene creates a diffuse sphere resting on a large ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Origin:      core.NewVec3(-1.8, 1, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 40.0,
		AspectRatio: 16.0 / 9.0,
	}

	s := newScene("default", defaultCameraConfig, cameraOverrides)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		NewGroundSphere(material.NewLambertianFromHex(0x007070)),
	)

	return s
}

// NewMirrorScene creates three perfect mirrors: a sphere, a small satellite and a mirrored ground
func NewMirrorScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Origin:      core.NewVec3(0, 0.2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 40.0,
		AspectRatio: 16.0 / 9.0,
	}

	s := newScene("mirrors", defaultCameraConfig, cameraOverrides)
	s.SamplingConfig.MaxDepth = 20

	silver := core.NewVec3(0.8, 0.8, 0.8)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMetal(silver, 0)),
		NewGroundSphere(material.NewMetal(silver, 0)),
		geometry.NewSphere(core.NewVec3(0.5, -0.4, -0.85), 0.1, material.NewMetal(silver, 0)),
	)

	return s
}
