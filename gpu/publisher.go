//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sysfont"
)

var (
	// ErrNilDevice is returned by NewPublisher without a device or queue.
	ErrNilDevice = errors.New("gpu: nil device or queue")

	// ErrPublisherDestroyed is returned by Publish after Destroy.
	ErrPublisherDestroyed = errors.New("gpu: publisher destroyed")
)

// labelUsage lets labels be written by the queue and sampled by shaders.
const labelUsage = gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding

// samplerKey is the part of an upload that determines its sampler.
type samplerKey struct {
	minFilter gputypes.FilterMode
	magFilter gputypes.FilterMode
	addressU  gputypes.AddressMode
	addressV  gputypes.AddressMode
}

// slot holds the GPU resources of one texture handle.
type slot struct {
	tex     hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	width  uint32
	height uint32
	format gputypes.TextureFormat
	key    samplerKey
}

// Publisher uploads labels to textures on a HAL device.
// It is safe for concurrent use.
type Publisher struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	slots  map[sysfont.TextureID]*slot

	// created counts texture allocations.
	created   int
	destroyed bool
}

// NewPublisher creates a Publisher on device and queue. The device stays
// owned by the caller; Destroy frees only the resources the publisher
// created.
func NewPublisher(device hal.Device, queue hal.Queue) (*Publisher, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Publisher{
		device: device,
		queue:  queue,
		slots:  make(map[sysfont.TextureID]*slot),
	}, nil
}

// Publish implements sysfont.Publisher.
func (p *Publisher) Publish(u *sysfont.Upload) error {
	if err := u.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return ErrPublisherDestroyed
	}

	s := p.slots[u.Texture]
	if s == nil {
		s = &slot{}
	}
	if err := p.ensureResources(s, u); err != nil {
		// A handle whose resources could not be built has none at all.
		p.destroySlot(s)
		delete(p.slots, u.Texture)
		return err
	}
	p.slots[u.Texture] = s

	//nolint:gosec // G115: dimensions are validated positive
	w, h := uint32(u.Width), uint32(u.Height)
	err := p.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  s.tex,
			MipLevel: 0,
			Aspect:   gputypes.TextureAspectAll,
		},
		u.Pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("gpu: write texture %d: %w", u.Texture, err)
	}
	return nil
}

func (p *Publisher) ensureResources(s *slot, u *sysfont.Upload) error {
	if err := p.ensureTexture(s, u); err != nil {
		return err
	}
	return p.ensureSampler(s, u)
}

// ensureTexture creates or recreates the texture and view of s if the
// upload size or format differs from the current one.
func (p *Publisher) ensureTexture(s *slot, u *sysfont.Upload) error {
	//nolint:gosec // G115: dimensions are validated positive
	w, h := uint32(u.Width), uint32(u.Height)
	format := u.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	if s.tex != nil && s.width == w && s.height == h && s.format == format {
		return nil
	}
	if s.tex != nil {
		sysfont.Logger().Debug("gpu: label texture resized",
			"texture", uint64(u.Texture),
			"from", fmt.Sprintf("%dx%d", s.width, s.height),
			"to", fmt.Sprintf("%dx%d", w, h))
	}
	p.destroyTexture(s)

	label := fmt.Sprintf("sysfont_label_%d", u.Texture)
	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         labelUsage,
	})
	if err != nil {
		return fmt.Errorf("gpu: create texture %d: %w", u.Texture, err)
	}
	s.tex = tex

	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.destroyTexture(s)
		return fmt.Errorf("gpu: create texture view %d: %w", u.Texture, err)
	}
	s.view = view

	s.width, s.height, s.format = w, h, format
	p.created++
	sysfont.Logger().Info("gpu: label texture created",
		"texture", uint64(u.Texture), "width", w, "height", h)
	return nil
}

// ensureSampler creates the sampler of s if the filtering or addressing of
// the upload changed.
func (p *Publisher) ensureSampler(s *slot, u *sysfont.Upload) error {
	key := samplerKey{
		minFilter: u.MinFilter,
		magFilter: u.MagFilter,
		addressU:  u.AddressModeU,
		addressV:  u.AddressModeV,
	}
	if s.sampler != nil && s.key == key {
		return nil
	}
	if s.sampler != nil {
		p.device.DestroySampler(s.sampler)
		s.sampler = nil
	}

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        fmt.Sprintf("sysfont_label_%d_sampler", u.Texture),
		AddressModeU: key.addressU,
		AddressModeV: key.addressV,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    key.magFilter,
		MinFilter:    key.minFilter,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("gpu: create sampler %d: %w", u.Texture, err)
	}
	s.sampler = sampler
	s.key = key
	return nil
}

// TextureView returns the view of the texture published for id.
func (p *Publisher) TextureView(id sysfont.TextureID) (hal.TextureView, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[id]
	if !ok || s.view == nil {
		return nil, false
	}
	return s.view, true
}

// Sampler returns the sampler of the texture published for id.
func (p *Publisher) Sampler(id sysfont.TextureID) (hal.Sampler, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[id]
	if !ok || s.sampler == nil {
		return nil, false
	}
	return s.sampler, true
}

// Size returns the dimensions of the texture published for id.
func (p *Publisher) Size(id sysfont.TextureID) (width, height int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, found := p.slots[id]
	if !found || s.tex == nil {
		return 0, 0, false
	}
	return int(s.width), int(s.height), true
}

// Len returns the number of texture handles with GPU resources.
func (p *Publisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// Release frees the GPU resources of id. The handle itself stays owned by
// the caller and may be published again.
func (p *Publisher) Release(id sysfont.TextureID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.slots[id]; ok {
		p.destroySlot(s)
		delete(p.slots, id)
	}
}

// Destroy frees every resource the publisher created. Publish fails
// afterwards.
func (p *Publisher) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, s := range p.slots {
		p.destroySlot(s)
		delete(p.slots, id)
	}
	p.destroyed = true
}

func (p *Publisher) destroySlot(s *slot) {
	if s.sampler != nil {
		p.device.DestroySampler(s.sampler)
		s.sampler = nil
	}
	p.destroyTexture(s)
}

func (p *Publisher) destroyTexture(s *slot) {
	if s.view != nil {
		p.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		p.device.DestroyTexture(s.tex)
		s.tex = nil
	}
	s.width, s.height = 0, 0
}
