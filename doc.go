// Package sysfont renders short labels with inline color tags into GPU
// textures.
//
// # Overview
//
// A label is a string such as "[FF0000]Game [FFFFFF]Over". The tags are
// stripped, the remaining text is laid out with a system or embedded font,
// rasterized into a bitmap whose dimensions are powers of two, and uploaded
// to a texture handle owned by the caller (typically a game engine).
//
// # Quick Start
//
//	pub := sysfont.NewMemoryPublisher()
//	r := sysfont.NewRenderer(pub)
//
//	req := r.NewRequest("[FF0000]Hello [00FF00]world", sysfont.Style{
//	    FontName: "sans",
//	    FontSize: 24,
//	}, 512, 256, 7)
//
//	// Engines size their quads before the upload happens.
//	fmt.Println(req.TextWidth(), req.TextHeight(), req.TextureWidth(), req.TextureHeight())
//
//	if err := req.Render(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sizing
//
// The text width is the widest paragraph measured without wrapping, clamped
// to the maximum width. The text is then wrapped to that width and its
// height is clamped to the maximum height. Both are at least one pixel. The
// texture dimensions are the next powers of two, and the label occupies the
// top-left TextWidth x TextHeight pixels of the texture.
//
// # Row order
//
// By default the label rows are flipped vertically before upload so that
// the first row of pixel data is the bottom line of text, which is what
// GL-style texture coordinates expect. See [WithFlipY].
//
// # Batches
//
// [Renderer.RenderAll] renders many requests at once. Rasterization runs on
// a pool of goroutines (see [WithWorkers]); uploads stay on the calling
// goroutine and happen in request order.
//
// # Publishers
//
// A [Publisher] moves pixels to the GPU. [MemoryPublisher] keeps them in
// memory. The gpu sub-package uploads through wgpu's HAL and the
// integration/gpuctx sub-package through gpucontext.
package sysfont
