//go:build !nogpu

// Package gpu publishes sysfont labels to textures on a wgpu HAL device.
//
// A Publisher maps every sysfont.TextureID to an RGBA8Unorm texture, a view
// and a sampler, and writes label pixels with queue.WriteTexture. Textures
// are recreated only when a label changes size.
//
// The label shader draws a published label as a quad, sampling only the
// part of the power-of-two texture covered by text and undoing the row
// flip.
//
// Usage:
//
//	pub, err := gpu.NewPublisher(device, queue)
//	if err != nil {
//	    return err
//	}
//	defer pub.Destroy()
//
//	r := sysfont.NewRenderer(pub)
package gpu

import (
	"errors"

	"github.com/gogpu/wgpu/hal"
)

// NewPublisherFromProvider creates a Publisher on a GPU device shared by an
// external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func NewPublisherFromProvider(provider any) (*Publisher, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("gpu: provider HalQueue is not hal.Queue")
	}
	return NewPublisher(device, queue)
}
