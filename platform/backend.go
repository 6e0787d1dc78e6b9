// Package platform runs the game on ebiten: the device backend, input
// sampling and the ebiten.Game adapter.
package platform

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/catjump/device"
)

const spriteShaderSource = `//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return imageSrc0At(srcPos) * color
}
`

// Backend implements device.Backend on ebiten. ebiten owns the graphics
// context and swap chain; the backend tracks what was created from them.
type Backend struct {
	screen   *ebiten.Image
	shader   *ebiten.Shader
	created  bool
	textures []*Texture
}

// NewBackend returns a backend with no device created.
func NewBackend() *Backend {
	return &Backend{}
}

// Bind sets the screen the next frame draws to.
func (b *Backend) Bind(screen *ebiten.Image) {
	b.screen = screen
}

func (b *Backend) CreateDevice() error {
	b.created = true
	return nil
}

func (b *Backend) ReleaseDevice() {
	for _, tex := range b.textures {
		tex.Dispose()
	}
	b.textures = nil
	if b.shader != nil {
		b.shader.Deallocate()
		b.shader = nil
	}
	b.created = false
}

// CheckShaderSupport compiles the sprite shader.
func (b *Backend) CheckShaderSupport() error {
	if b.shader != nil {
		return nil
	}
	shader, err := ebiten.NewShader([]byte(spriteShaderSource))
	if err != nil {
		return fmt.Errorf("%w: %v", device.ErrShaderUnsupported, err)
	}
	b.shader = shader
	return nil
}

func (b *Backend) NewTexture(img image.Image) (device.Texture, error) {
	if !b.created {
		return nil, device.Check("platform: new texture", device.StatusDeviceRemoved)
	}
	tex := &Texture{image: ebiten.NewImageFromImage(img)}
	b.textures = append(b.textures, tex)
	return tex, nil
}

func (b *Backend) Surface() device.Surface {
	if !b.created || b.screen == nil {
		return nil
	}
	return &surface{screen: b.screen, shader: b.shader}
}

// Present is a no-op: ebiten presents the screen after Draw returns.
func (b *Backend) Present() error {
	return nil
}

// WaitForGPU is a no-op: ebiten flushes its command queue itself.
func (b *Backend) WaitForGPU() {}

// Texture is an ebiten image owned by the backend.
type Texture struct {
	image *ebiten.Image
}

func (t *Texture) Size() (int, int) {
	b := t.image.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Texture) Dispose() {
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
}

type surface struct {
	screen *ebiten.Image
	shader *ebiten.Shader
}

func (s *surface) Clear(c color.Color) {
	s.screen.Fill(c)
}

func (s *surface) DrawSprite(tex device.Texture, sprite device.Sprite) {
	t, ok := tex.(*Texture)
	if !ok || t.image == nil {
		return
	}

	var geoM ebiten.GeoM
	geoM.Translate(-float64(sprite.Origin.X), -float64(sprite.Origin.Y))
	geoM.Rotate(float64(sprite.Rotation))
	geoM.Translate(float64(sprite.Position.X), float64(sprite.Position.Y))

	if s.shader == nil {
		opts := &ebiten.DrawImageOptions{GeoM: geoM}
		if sprite.Tint != nil {
			opts.ColorScale.ScaleWithColor(sprite.Tint)
		}
		s.screen.DrawImage(t.image, opts)
		return
	}

	w, h := t.Size()
	opts := &ebiten.DrawRectShaderOptions{GeoM: geoM}
	opts.Images[0] = t.image
	if sprite.Tint != nil {
		opts.ColorScale.ScaleWithColor(sprite.Tint)
	}
	s.screen.DrawRectShader(w, h, s.shader, opts)
}
