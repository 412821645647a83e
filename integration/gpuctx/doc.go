// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuctx publishes sysfont labels as gpucontext textures so they can
// be drawn in gogpu windows.
//
// The data flow is:
//
//	sysfont.Request (layout) -> Bitmap (CPU) -> gpucontext.Texture -> Window
//
// # Usage
//
//	pub, err := gpuctx.New(dc.TextureCreator())
//	if err != nil {
//	    return err
//	}
//	defer pub.Close()
//
//	// gpucontext draws textures top row first, so keep rows upright.
//	r := sysfont.NewRenderer(pub, sysfont.WithFlipY(false))
//	label := r.NewRequest("[FFCC00]Score: 42", sysfont.Style{FontSize: 24}, 256, 64, 1)
//	if err := label.Render(); err != nil {
//	    return err
//	}
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = pub.DrawTo(dc.AsTextureDrawer(), label.Texture(), 10, 10)
//	})
//
// # Texture lifetime
//
// A texture is created per handle on its first upload and updated in place
// while the label size stays the same. When the size changes the old
// texture is destroyed after its replacement has been created.
//
// # Integration Without Circular Imports
//
// This package uses gpucontext interfaces only and does not import gogpu.
package gpuctx
