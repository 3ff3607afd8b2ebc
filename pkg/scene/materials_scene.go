package scene

import (
	"fmt"

	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/geometry"
	"github.com/df07/go-anytime-raytracer/pkg/loaders"
	"github.com/df07/go-anytime-raytracer/pkg/material"
	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

// LoadTexture loads an image file as a texture material
func LoadTexture(path string, scale float64) (*material.Texture, error) {
	data, err := loaders.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture: %w", err)
	}
	return material.NewTexture(data.Width, data.Height, data.Pixels, scale), nil
}

// textureOrChecker loads the texture at path, or builds a checkerboard when path is empty
func textureOrChecker(path string) (*material.Texture, error) {
	if path == "" {
		return material.NewCheckerboardTexture(256, 128, 16,
			core.NewVec3(0.9, 0.9, 0.9),
			core.NewVec3(0.2, 0.2, 0.8),
			1.0,
		), nil
	}
	return LoadTexture(path, 1.0)
}

// NewMaterialsScene lines up a tinted glass sphere, a textured sphere and a brushed metal sphere.
// texturePath selects the image on the middle sphere; an empty path uses a checkerboard.
func NewMaterialsScene(texturePath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	texture, err := textureOrChecker(texturePath)
	if err != nil {
		return nil, err
	}

	defaultCameraConfig := renderer.CameraConfig{
		Origin:      core.NewVec3(0, 0.3, 1.5),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 40.0,
		AspectRatio: 16.0 / 9.0,
	}

	s := newScene("materials", defaultCameraConfig, cameraOverrides)

	s.Add(
		geometry.NewSphere(core.NewVec3(-1.01, 0, -1), 0.5, material.NewTintedDielectric(core.NewVec3(1, 0.8, 0.8), 1.05)),
		NewGroundSphere(material.NewLambertianFromHex(0x007070)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1)),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, texture),
	)

	return s, nil
}

// NewTextureScene shows textures on both shape kinds: a panel behind a sphere.
// texturePath selects the panel image; an empty path uses a checkerboard.
func NewTextureScene(texturePath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	panelTexture, err := textureOrChecker(texturePath)
	if err != nil {
		return nil, err
	}

	defaultCameraConfig := renderer.CameraConfig{
		Origin:      core.NewVec3(0, 0.5, 2),
		LookAt:      core.NewVec3(0, 0.3, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 50.0,
		AspectRatio: 16.0 / 9.0,
	}

	s := newScene("texture", defaultCameraConfig, cameraOverrides)

	gradient := material.NewGradientTexture(64, 64,
		core.NewVec3(1.0, 0.2, 0.2),
		core.NewVec3(0.2, 1.0, 0.2),
		1.0,
	)

	s.Add(
		geometry.NewQuad(
			core.NewVec3(-1.6, -0.5, -2),
			core.NewVec3(3.2, 0, 0),
			core.NewVec3(0, 1.8, 0),
			panelTexture,
		),
		geometry.NewSphere(core.NewVec3(-0.6, 0, -1), 0.5, gradient),
		geometry.NewSphere(core.NewVec3(0.6, 0, -1), 0.5, material.NewDielectric(1.5)),
		NewGroundSphere(material.NewLambertianFromHex(0x007070)),
	)

	return s, nil
}
