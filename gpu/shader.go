//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sysfont"
)

//go:embed shaders/label.wgsl
var labelShaderSource string

// Label shader entry points and bindings.
const (
	LabelVertexEntry   = "vs_main"
	LabelFragmentEntry = "fs_main"

	LabelUniformBinding = 0
	LabelTextureBinding = 1
	LabelSamplerBinding = 2

	// LabelVertexCount is the number of triangle-strip vertices per label.
	LabelVertexCount = 4
)

// LabelShaderSource returns the WGSL source of the label shader.
func LabelShaderSource() string {
	return labelShaderSource
}

// CompileLabelShader compiles the label shader to SPIR-V words.
func CompileLabelShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(labelShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile label shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gpu: label shader SPIR-V has %d bytes, not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return spirv, nil
}

// CreateLabelShaderModule compiles the label shader and creates a shader
// module on device. The caller destroys the module.
func CreateLabelShaderModule(device hal.Device) (hal.ShaderModule, error) {
	spirv, err := CompileLabelShader()
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "sysfont_label_shader",
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create label shader module: %w", err)
	}
	return module, nil
}

// LabelUniform is the uniform block of the label shader.
type LabelUniform struct {
	// Rect is the quad in clip space: left, top, right, bottom.
	Rect [4]float32

	// UVExtent is the text size divided by the texture size.
	UVExtent [2]float32

	FlipY   bool
	Opacity float32
}

// LabelUniformSize is the size of the encoded uniform block in bytes.
const LabelUniformSize = 32

// NewLabelUniform returns the uniform for drawing req as a quad at rect.
// flipY must match the row order the label was rendered with.
func NewLabelUniform(req *sysfont.Request, rect [4]float32, flipY bool) LabelUniform {
	return LabelUniform{
		Rect: rect,
		UVExtent: [2]float32{
			float32(req.TextWidth()) / float32(req.TextureWidth()),
			float32(req.TextHeight()) / float32(req.TextureHeight()),
		},
		FlipY:   flipY,
		Opacity: 1,
	}
}

// Bytes encodes u with the WGSL uniform layout.
func (u LabelUniform) Bytes() []byte {
	buf := make([]byte, LabelUniformSize)
	put := func(i int, v float32) {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range u.Rect {
		put(i, v)
	}
	put(4, u.UVExtent[0])
	put(5, u.UVExtent[1])
	if u.FlipY {
		put(6, 1)
	}
	put(7, u.Opacity)
	return buf
}
