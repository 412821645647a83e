// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuctx

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sysfont"
)

// mockTexture implements the texture interfaces for testing.
type mockTexture struct {
	width         int
	height        int
	data          []byte
	destroyed     bool
	updated       int
	premultiplied bool
	failUpdate    bool
}

func (m *mockTexture) Width() int  { return m.width }
func (m *mockTexture) Height() int { return m.height }

func (m *mockTexture) UpdateData(data []byte) error {
	if m.failUpdate {
		return errors.New("mock update failed")
	}
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

func (m *mockTexture) SetPremultiplied(v bool) { m.premultiplied = v }

func (m *mockTexture) Destroy() { m.destroyed = true }

// mockCreator implements gpucontext.TextureCreator for testing.
type mockCreator struct {
	textures []*mockTexture
	failNext bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{
		width:  width,
		height: height,
		data:   append([]byte(nil), data...),
	}
	m.textures = append(m.textures, tex)
	return tex, nil
}

// mockDrawContext implements gpucontext.TextureDrawer for testing.
type mockDrawContext struct {
	creator      *mockCreator
	drawnTexture gpucontext.Texture
	drawnX       float32
	drawnY       float32
	drawCount    int
}

func (m *mockDrawContext) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.drawnTexture = tex
	m.drawnX = x
	m.drawnY = y
	m.drawCount++
	return nil
}

func (m *mockDrawContext) TextureCreator() gpucontext.TextureCreator {
	return m.creator
}

func upload(id sysfont.TextureID, w, h int, fill byte) *sysfont.Upload {
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = fill
	}
	return &sysfont.Upload{Texture: id, Width: w, Height: h, Pixels: pix, Premultiplied: true}
}

func TestNew(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilCreator) {
		t.Errorf("New(nil) = %v, want ErrNilCreator", err)
	}
	if _, err := NewFromDrawer(nil); !errors.Is(err, ErrInvalidDrawContext) {
		t.Errorf("NewFromDrawer(nil) = %v, want ErrInvalidDrawContext", err)
	}
	dc := &mockDrawContext{creator: &mockCreator{}}
	if _, err := NewFromDrawer(dc); err != nil {
		t.Errorf("NewFromDrawer() = %v", err)
	}
}

func TestPublishCreatesTexture(t *testing.T) {
	creator := &mockCreator{}
	p, _ := New(creator)

	if err := p.Publish(upload(1, 4, 2, 7)); err != nil {
		t.Fatalf("Publish() = %v", err)
	}
	if len(creator.textures) != 1 {
		t.Fatalf("created %d textures, want 1", len(creator.textures))
	}
	tex := creator.textures[0]
	if tex.width != 4 || tex.height != 2 || tex.data[0] != 7 {
		t.Errorf("texture = %dx%d data[0]=%d", tex.width, tex.height, tex.data[0])
	}
	if !tex.premultiplied {
		t.Error("texture not marked premultiplied")
	}
	if got, ok := p.Texture(1); !ok || got != tex {
		t.Error("Texture(1) does not return the created texture")
	}
}

func TestTextureReuse(t *testing.T) {
	creator := &mockCreator{}
	p, _ := New(creator)

	_ = p.Publish(upload(1, 4, 4, 1))
	if err := p.Publish(upload(1, 4, 4, 2)); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 1 {
		t.Fatalf("same-size publish created %d textures, want 1", len(creator.textures))
	}
	tex := creator.textures[0]
	if tex.updated != 1 || tex.data[0] != 2 {
		t.Errorf("texture updated %d times, data[0] = %d", tex.updated, tex.data[0])
	}
}

func TestTextureReplacedOnResize(t *testing.T) {
	creator := &mockCreator{}
	p, _ := New(creator)

	_ = p.Publish(upload(1, 4, 4, 1))
	if err := p.Publish(upload(1, 8, 4, 1)); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 2 {
		t.Fatalf("resize created %d textures in total, want 2", len(creator.textures))
	}
	if !creator.textures[0].destroyed {
		t.Error("old texture not destroyed after resize")
	}
	if creator.textures[1].destroyed {
		t.Error("new texture destroyed")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPublishErrors(t *testing.T) {
	creator := &mockCreator{failNext: true}
	p, _ := New(creator)

	if err := p.Publish(upload(1, 2, 2, 0)); err == nil {
		t.Error("creation failure not reported")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after failed creation", p.Len())
	}

	if err := p.Publish(upload(sysfont.InvalidTexture, 2, 2, 0)); !errors.Is(err, sysfont.ErrInvalidTexture) {
		t.Errorf("Publish(invalid handle) = %v", err)
	}

	_ = p.Publish(upload(2, 2, 2, 0))
	creator.textures[0].failUpdate = true
	if err := p.Publish(upload(2, 2, 2, 1)); err == nil {
		t.Error("update failure not reported")
	}
}

func TestReleaseAndClose(t *testing.T) {
	creator := &mockCreator{}
	p, _ := New(creator)
	_ = p.Publish(upload(1, 2, 2, 0))
	_ = p.Publish(upload(2, 2, 2, 0))

	p.Release(1)
	if !creator.textures[0].destroyed {
		t.Error("Release did not destroy the texture")
	}
	if _, ok := p.Texture(1); ok {
		t.Error("texture 1 still present")
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !creator.textures[1].destroyed {
		t.Error("Close did not destroy remaining textures")
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := p.Publish(upload(3, 2, 2, 0)); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("Publish after Close = %v, want ErrPublisherClosed", err)
	}
}

func TestDrawTo(t *testing.T) {
	creator := &mockCreator{}
	dc := &mockDrawContext{creator: creator}
	p, _ := NewFromDrawer(dc)
	_ = p.Publish(upload(5, 2, 2, 0))

	if err := p.DrawTo(dc, 5, 10, 20); err != nil {
		t.Fatalf("DrawTo() = %v", err)
	}
	if dc.drawCount != 1 || dc.drawnX != 10 || dc.drawnY != 20 {
		t.Errorf("drawn %d times at (%v, %v)", dc.drawCount, dc.drawnX, dc.drawnY)
	}
	if dc.drawnTexture != gpucontext.Texture(creator.textures[0]) {
		t.Error("wrong texture drawn")
	}

	if err := p.DrawTo(dc, 6, 0, 0); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("DrawTo(unknown) = %v, want ErrUnknownTexture", err)
	}
	if err := p.DrawTo(nil, 5, 0, 0); !errors.Is(err, ErrInvalidDrawContext) {
		t.Errorf("DrawTo(nil) = %v, want ErrInvalidDrawContext", err)
	}
}

func TestDrawRequest(t *testing.T) {
	creator := &mockCreator{}
	dc := &mockDrawContext{creator: creator}
	p, _ := New(creator)

	r := sysfont.NewRenderer(p, sysfont.WithFlipY(false))
	req := r.NewRequest("[FFCC00]Score", sysfont.Style{FontSize: 16}, 128, 32, 9)

	if err := p.DrawRequest(dc, req, 0, 0); !errors.Is(err, ErrNotReady) {
		t.Errorf("DrawRequest before Render = %v, want ErrNotReady", err)
	}
	if err := req.Render(); err != nil {
		t.Fatal(err)
	}
	if err := p.DrawRequest(dc, req, 3, 4); err != nil {
		t.Fatalf("DrawRequest() = %v", err)
	}
	tex := dc.drawnTexture
	if tex.Width() != req.TextureWidth() || tex.Height() != req.TextureHeight() {
		t.Errorf("drawn texture %dx%d, want %dx%d", tex.Width(), tex.Height(), req.TextureWidth(), req.TextureHeight())
	}
}
