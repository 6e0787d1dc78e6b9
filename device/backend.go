package device

import (
	"image"
	"image/color"

	"github.com/mokiat/gomath/sprec"
)

// Backend is the graphics toolkit the resources manager drives.
type Backend interface {
	// CreateDevice acquires the device. It is called again after a loss.
	CreateDevice() error
	// ReleaseDevice drops the device and everything created from it.
	ReleaseDevice()
	// CheckShaderSupport reports ErrShaderUnsupported (wrapped) when the
	// device cannot run the sprite shaders.
	CheckShaderSupport() error
	// NewTexture uploads img to the device.
	NewTexture(img image.Image) (Texture, error)
	// Surface is the render target for the current frame, or nil.
	Surface() Surface
	// Present shows the frame drawn to Surface.
	Present() error
	// WaitForGPU blocks until submitted work completes.
	WaitForGPU()
}

// Texture is a device-owned image.
type Texture interface {
	Size() (width, height int)
	Dispose()
}

// Surface is a render target for one frame.
type Surface interface {
	Clear(c color.Color)
	DrawSprite(tex Texture, sprite Sprite)
}

// Sprite describes one textured quad. Position is where Origin (in texture
// pixels) lands on the surface; Rotation is in radians around Origin.
type Sprite struct {
	Position sprec.Vec2
	Origin   sprec.Vec2
	Rotation float32
	Tint     color.Color
}

// TextureSize returns the size of tex as a vector.
func TextureSize(tex Texture) sprec.Vec2 {
	w, h := tex.Size()
	return sprec.NewVec2(float32(w), float32(h))
}
