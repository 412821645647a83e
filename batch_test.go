package sysfont

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRenderAllMatchesRender(t *testing.T) {
	batchPub := NewMemoryPublisher()
	batch := newTestRenderer(t, batchPub, WithWorkers(3))
	singlePub := NewMemoryPublisher()
	single := newTestRenderer(t, singlePub)

	var reqs []*Request
	for i := 1; i <= 8; i++ {
		raw := fmt.Sprintf("[FF%02X00]label %d %s", i*16, i, strings.Repeat("x", i))
		style := Style{FontSize: float64(10 + i)}
		reqs = append(reqs, batch.NewRequest(raw, style, 200, testBound, TextureID(i)))

		if err := single.NewRequest(raw, style, 200, testBound, TextureID(i)).Render(); err != nil {
			t.Fatal(err)
		}
	}

	if err := batch.RenderAll(reqs...); err != nil {
		t.Fatalf("RenderAll() = %v", err)
	}
	for _, q := range reqs {
		if !q.IsReady() {
			t.Errorf("texture %d not ready", q.Texture())
		}
		got, ok := batchPub.Texture(q.Texture())
		if !ok {
			t.Fatalf("texture %d not published", q.Texture())
		}
		want, _ := singlePub.Texture(q.Texture())
		if got.Width != want.Width || got.Height != want.Height {
			t.Errorf("texture %d: %dx%d, want %dx%d", q.Texture(), got.Width, got.Height, want.Width, want.Height)
		}
		if !bytes.Equal(got.Pixels, want.Pixels) {
			t.Errorf("texture %d: pixels differ from Render", q.Texture())
		}
	}
	if batchPub.Uploads() != len(reqs) {
		t.Errorf("Uploads() = %d, want %d", batchPub.Uploads(), len(reqs))
	}
}

func TestRenderAllUploadsInOrder(t *testing.T) {
	var order []TextureID
	pub := PublisherFunc(func(u *Upload) error {
		order = append(order, u.Texture)
		return nil
	})
	r := newTestRenderer(t, pub, WithWorkers(4))

	var reqs []*Request
	for i := 1; i <= 6; i++ {
		reqs = append(reqs, r.NewRequest("abc", Style{}, testBound, testBound, TextureID(i)))
	}
	if err := r.RenderAll(reqs...); err != nil {
		t.Fatal(err)
	}
	for i, id := range order {
		if id != TextureID(i+1) {
			t.Fatalf("upload order = %v", order)
		}
	}
}

func TestRenderAllErrors(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	other := newTestRenderer(t, NewMemoryPublisher())

	good := r.NewRequest("ok", Style{}, testBound, testBound, 1)
	invalid := r.NewRequest("bad", Style{}, testBound, testBound, InvalidTexture)
	foreign := other.NewRequest("foreign", Style{}, testBound, testBound, 2)

	err := r.RenderAll(good, nil, invalid, foreign)
	if !errors.Is(err, ErrInvalidTexture) {
		t.Errorf("RenderAll() = %v, want ErrInvalidTexture", err)
	}
	if err == nil || !strings.Contains(err.Error(), "another renderer") {
		t.Errorf("RenderAll() = %v, want foreign request error", err)
	}
	if !good.IsReady() {
		t.Error("valid request not rendered")
	}
	if invalid.IsReady() || foreign.IsReady() {
		t.Error("failed requests marked ready")
	}

	if err := r.RenderAll(); err != nil {
		t.Errorf("RenderAll() with no requests = %v", err)
	}

	noPub := newTestRenderer(t, nil)
	if err := noPub.RenderAll(noPub.NewRequest("x", Style{}, testBound, testBound, 1)); !errors.Is(err, ErrNoPublisher) {
		t.Errorf("RenderAll() without publisher = %v, want ErrNoPublisher", err)
	}
}

func TestRenderAllPublishError(t *testing.T) {
	boom := errors.New("boom")
	pub := PublisherFunc(func(u *Upload) error {
		if u.Texture == 2 {
			return boom
		}
		return nil
	})
	r := newTestRenderer(t, pub)

	a := r.NewRequest("a", Style{}, testBound, testBound, 1)
	b := r.NewRequest("b", Style{}, testBound, testBound, 2)
	err := r.RenderAll(a, b)
	if !errors.Is(err, boom) {
		t.Fatalf("RenderAll() = %v, want boom", err)
	}
	if !a.IsReady() || b.IsReady() {
		t.Errorf("ready = %v/%v, want true/false", a.IsReady(), b.IsReady())
	}
}
