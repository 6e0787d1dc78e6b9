package device

import (
	"fmt"
	"image"
	"image/color"
)

// HeadlessBackend is a CPU-only Backend that records what it is asked to do.
// It backs tests and the soak tool.
type HeadlessBackend struct {
	// ShaderUnsupported makes CheckShaderSupport fail.
	ShaderUnsupported bool
	// CreateErr, when set, is returned by CreateDevice.
	CreateErr error

	Generation int
	Clears     []color.Color
	Draws      []DrawCall
	Presents   int
	GPUWaits   int

	created  bool
	surface  headlessSurface
	textures []*HeadlessTexture
}

// DrawCall is one recorded sprite draw.
type DrawCall struct {
	Texture *HeadlessTexture
	Sprite  Sprite
}

// HeadlessTexture is a texture that only remembers its size.
type HeadlessTexture struct {
	Width, Height int
	Generation    int
	Disposed      bool
}

// Size implements Texture.
func (t *HeadlessTexture) Size() (int, int) { return t.Width, t.Height }

// Dispose implements Texture.
func (t *HeadlessTexture) Dispose() { t.Disposed = true }

type headlessSurface struct {
	backend *HeadlessBackend
}

func (s headlessSurface) Clear(c color.Color) {
	s.backend.Clears = append(s.backend.Clears, c)
}

func (s headlessSurface) DrawSprite(tex Texture, sprite Sprite) {
	ht, _ := tex.(*HeadlessTexture)
	s.backend.Draws = append(s.backend.Draws, DrawCall{Texture: ht, Sprite: sprite})
}

// NewHeadlessBackend returns a backend with no device created yet.
func NewHeadlessBackend() *HeadlessBackend {
	b := &HeadlessBackend{}
	b.surface = headlessSurface{backend: b}
	return b
}

// CreateDevice implements Backend.
func (b *HeadlessBackend) CreateDevice() error {
	if b.CreateErr != nil {
		return b.CreateErr
	}
	b.created = true
	b.Generation++
	return nil
}

// ReleaseDevice implements Backend. Every texture from the current
// generation is disposed.
func (b *HeadlessBackend) ReleaseDevice() {
	b.created = false
	for _, tex := range b.textures {
		tex.Dispose()
	}
	b.textures = nil
}

// CheckShaderSupport implements Backend.
func (b *HeadlessBackend) CheckShaderSupport() error {
	if b.ShaderUnsupported {
		return fmt.Errorf("headless: %w", ErrShaderUnsupported)
	}
	return nil
}

// NewTexture implements Backend.
func (b *HeadlessBackend) NewTexture(img image.Image) (Texture, error) {
	if !b.created {
		return nil, Check("headless: new texture", StatusDeviceRemoved)
	}
	bounds := img.Bounds()
	tex := &HeadlessTexture{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Generation: b.Generation,
	}
	b.textures = append(b.textures, tex)
	return tex, nil
}

// Surface implements Backend.
func (b *HeadlessBackend) Surface() Surface {
	if !b.created {
		return nil
	}
	return b.surface
}

// Present implements Backend.
func (b *HeadlessBackend) Present() error {
	b.Presents++
	return nil
}

// WaitForGPU implements Backend.
func (b *HeadlessBackend) WaitForGPU() {
	b.GPUWaits++
}

// LiveTextures returns the textures that have not been disposed.
func (b *HeadlessBackend) LiveTextures() []*HeadlessTexture {
	var live []*HeadlessTexture
	for _, tex := range b.textures {
		if !tex.Disposed {
			live = append(live, tex)
		}
	}
	return live
}

// ResetRecording clears recorded clears, draws and presents.
func (b *HeadlessBackend) ResetRecording() {
	b.Clears = b.Clears[:0]
	b.Draws = b.Draws[:0]
	b.Presents = 0
}
