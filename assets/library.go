// Package assets loads the game's files through an ebitengine-resource loader.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2/audio"
	resource "github.com/quasilyte/ebitengine-resource"
)

// CatTexturePath is the sprite texture, relative to the asset root.
const CatTexturePath = "cat.png"

const (
	_ resource.RawID = iota
	RawCatTexture
)

// openError travels through the loader as a panic value, since
// OpenAssetFunc cannot return an error.
type openError struct {
	path string
	err  error
}

func (e *openError) Error() string {
	return fmt.Sprintf("open %s: %v", e.path, e.err)
}

func (e *openError) Unwrap() error {
	return e.err
}

// Library resolves asset IDs to decoded data.
type Library struct {
	loader *resource.Loader
}

// NewLibrary creates a library reading from fsys. audioContext may be nil
// when no sounds are loaded.
func NewLibrary(fsys fs.FS, audioContext *audio.Context) *Library {
	loader := resource.NewLoader(audioContext)
	loader.OpenAssetFunc = func(path string) io.ReadCloser {
		f, err := fsys.Open(path)
		if err != nil {
			panic(&openError{path: path, err: err})
		}
		return f
	}

	loader.RawRegistry.Assign(map[resource.RawID]resource.RawInfo{
		RawCatTexture: {Path: CatTexturePath},
	})

	return &Library{loader: loader}
}

// Raw returns the bytes of a registered raw asset.
func (l *Library) Raw(id resource.RawID) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			var oe *openError
			if e, ok := r.(error); ok && errors.As(e, &oe) {
				err = oe
				return
			}
			err = fmt.Errorf("assets: load raw %d: %v", id, r)
		}
	}()
	return l.loader.LoadRaw(id).Data, nil
}

// CatImage decodes the sprite texture. The file is read once; later calls
// decode the cached bytes again, which is what device restoration needs.
func (l *Library) CatImage() (image.Image, error) {
	data, err := l.Raw(RawCatTexture)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", CatTexturePath, err)
	}
	return img, nil
}
