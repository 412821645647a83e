// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuctx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sysfont"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned for a nil gpucontext.TextureDrawer.
	ErrInvalidDrawContext = errors.New("gpuctx: nil TextureDrawer")

	// ErrNotReady is returned by DrawRequest before the request has been
	// rendered.
	ErrNotReady = errors.New("gpuctx: request not rendered")
)

// DrawTo draws the texture published for id with its top-left corner at
// (x, y).
func (p *Publisher) DrawTo(dc gpucontext.TextureDrawer, id sysfont.TextureID, x, y float32) error {
	if dc == nil {
		return ErrInvalidDrawContext
	}

	p.mu.Lock()
	closed := p.closed
	tex, ok := p.textures[id]
	p.mu.Unlock()

	if closed {
		return ErrPublisherClosed
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	if err := dc.DrawTexture(tex, x, y); err != nil {
		return fmt.Errorf("gpuctx: DrawTexture failed: %w", err)
	}
	return nil
}

// DrawRequest draws the texture of a rendered request at (x, y).
func (p *Publisher) DrawRequest(dc gpucontext.TextureDrawer, req *sysfont.Request, x, y float32) error {
	if !req.IsReady() {
		return ErrNotReady
	}
	return p.DrawTo(dc, req.Texture(), x, y)
}
