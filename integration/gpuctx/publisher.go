// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuctx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sysfont"
)

// Common errors returned by Publisher operations.
var (
	// ErrPublisherClosed is returned when operations are attempted on a
	// closed publisher.
	ErrPublisherClosed = errors.New("gpuctx: publisher is closed")

	// ErrNilCreator is returned when a nil TextureCreator is passed.
	ErrNilCreator = errors.New("gpuctx: nil TextureCreator")

	// ErrUnknownTexture is returned when drawing a handle that has not been
	// published.
	ErrUnknownTexture = errors.New("gpuctx: texture not published")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// premultipliedSetter is implemented by textures that can blend
// premultiplied alpha.
type premultipliedSetter interface {
	SetPremultiplied(bool)
}

// Publisher uploads labels through a gpucontext.TextureCreator.
// It is safe for concurrent use.
type Publisher struct {
	mu       sync.Mutex
	creator  gpucontext.TextureCreator
	textures map[sysfont.TextureID]gpucontext.Texture
	closed   bool
}

// New creates a Publisher that creates textures with creator.
func New(creator gpucontext.TextureCreator) (*Publisher, error) {
	if creator == nil {
		return nil, ErrNilCreator
	}
	return &Publisher{
		creator:  creator,
		textures: make(map[sysfont.TextureID]gpucontext.Texture),
	}, nil
}

// NewFromDrawer creates a Publisher using the texture creator of dc.
func NewFromDrawer(dc gpucontext.TextureDrawer) (*Publisher, error) {
	if dc == nil {
		return nil, ErrInvalidDrawContext
	}
	return New(dc.TextureCreator())
}

// Publish implements sysfont.Publisher.
func (p *Publisher) Publish(u *sysfont.Upload) error {
	if err := u.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}

	old := p.textures[u.Texture]
	if old != nil && old.Width() == u.Width && old.Height() == u.Height {
		if updater, ok := old.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(u.Pixels); err != nil {
				return fmt.Errorf("gpuctx: texture %d update failed: %w", u.Texture, err)
			}
			return nil
		}
	}

	tex, err := p.creator.NewTextureFromRGBA(u.Width, u.Height, u.Pixels)
	if err != nil {
		return fmt.Errorf("gpuctx: NewTextureFromRGBA failed for texture %d: %w", u.Texture, err)
	}
	if pt, ok := tex.(premultipliedSetter); ok {
		pt.SetPremultiplied(u.Premultiplied)
	}
	p.textures[u.Texture] = tex

	// The replacement exists, so the old texture is no longer needed.
	if old != nil {
		destroyTexture(old)
		sysfont.Logger().Debug("gpuctx: label texture replaced",
			"texture", uint64(u.Texture),
			"width", u.Width,
			"height", u.Height)
	}
	return nil
}

// Texture returns the texture published for id.
func (p *Publisher) Texture(id sysfont.TextureID) (gpucontext.Texture, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tex, ok := p.textures[id]
	return tex, ok
}

// Len returns the number of published textures.
func (p *Publisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.textures)
}

// Release destroys the texture of id.
func (p *Publisher) Release(id sysfont.TextureID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if tex, ok := p.textures[id]; ok {
		destroyTexture(tex)
		delete(p.textures, id)
	}
}

// Close destroys every texture. Close is idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for id, tex := range p.textures {
		destroyTexture(tex)
		delete(p.textures, id)
	}
	return nil
}

func destroyTexture(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}
