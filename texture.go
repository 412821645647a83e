package sysfont

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
)

// TextureID is a texture handle owned by the caller. Publishers map it to
// their own GPU resources. The zero value is InvalidTexture.
type TextureID uint64

// InvalidTexture is the zero texture handle. It is never published.
const InvalidTexture TextureID = 0

// Upload is one label image handed to a Publisher.
type Upload struct {
	// Texture is the destination handle.
	Texture TextureID

	// Width and Height are the texture dimensions, both powers of two.
	Width, Height int

	// Pixels holds Width*Height RGBA8 pixels, row-major with a stride of
	// Width*4.
	Pixels []byte

	Format gputypes.TextureFormat

	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode

	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode

	// Premultiplied reports whether color channels are multiplied by alpha.
	Premultiplied bool
}

// Validate checks the handle and that Pixels matches the dimensions.
func (u *Upload) Validate() error {
	if u.Texture == InvalidTexture {
		return ErrInvalidTexture
	}
	if u.Width <= 0 || u.Height <= 0 {
		return fmt.Errorf("sysfont: invalid upload size %dx%d", u.Width, u.Height)
	}
	if want := u.Width * u.Height * 4; len(u.Pixels) != want {
		return fmt.Errorf("sysfont: upload has %d bytes, want %d", len(u.Pixels), want)
	}
	return nil
}

// Publisher uploads label images to textures.
//
// Publish must not retain u.Pixels after it returns.
type Publisher interface {
	Publish(u *Upload) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(u *Upload) error

// Publish calls f(u).
func (f PublisherFunc) Publish(u *Upload) error {
	return f(u)
}

// MemoryPublisher keeps the latest upload of every texture in memory.
// It is safe for concurrent use.
type MemoryPublisher struct {
	mu       sync.RWMutex
	textures map[TextureID]*Upload
	uploads  int
}

// NewMemoryPublisher creates an empty MemoryPublisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{textures: make(map[TextureID]*Upload)}
}

// Publish implements Publisher. It stores a copy of u.
func (p *MemoryPublisher) Publish(u *Upload) error {
	if err := u.Validate(); err != nil {
		return err
	}
	c := *u
	c.Pixels = append([]byte(nil), u.Pixels...)

	p.mu.Lock()
	p.textures[u.Texture] = &c
	p.uploads++
	p.mu.Unlock()
	return nil
}

// Texture returns the latest upload for id.
func (p *MemoryPublisher) Texture(id TextureID) (*Upload, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.textures[id]
	return u, ok
}

// Bitmap returns the latest upload for id as a Bitmap.
func (p *MemoryPublisher) Bitmap(id TextureID) (*Bitmap, bool) {
	u, ok := p.Texture(id)
	if !ok {
		return nil, false
	}
	b := NewBitmap(u.Width, u.Height)
	copy(b.Data(), u.Pixels)
	return b, true
}

// Uploads returns the number of successful Publish calls.
func (p *MemoryPublisher) Uploads() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.uploads
}

// Release forgets the texture id.
func (p *MemoryPublisher) Release(id TextureID) {
	p.mu.Lock()
	delete(p.textures, id)
	p.mu.Unlock()
}
