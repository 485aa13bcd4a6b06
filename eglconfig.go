package glinfo

import (
	"bufio"
	"fmt"
	"io"
)

// EGLConfig is one EGL frame buffer configuration. A record whose ID is zero
// terminates a configuration list.
type EGLConfig struct {
	ID               int `json:"config_id" yaml:"config_id" toml:"config_id"`
	NativeVisualID   int `json:"native_visual_id" yaml:"native_visual_id" toml:"native_visual_id"`
	NativeVisualType int `json:"native_visual_type" yaml:"native_visual_type" toml:"native_visual_type"`
	BufferSize       int `json:"buffer_size" yaml:"buffer_size" toml:"buffer_size"`
	Level            int `json:"level" yaml:"level" toml:"level"`
	ColorBufferType  int `json:"color_buffer_type" yaml:"color_buffer_type" toml:"color_buffer_type"`

	RedSize       int `json:"red_size" yaml:"red_size" toml:"red_size"`
	GreenSize     int `json:"green_size" yaml:"green_size" toml:"green_size"`
	BlueSize      int `json:"blue_size" yaml:"blue_size" toml:"blue_size"`
	AlphaSize     int `json:"alpha_size" yaml:"alpha_size" toml:"alpha_size"`
	AlphaMaskSize int `json:"alpha_mask_size" yaml:"alpha_mask_size" toml:"alpha_mask_size"`
	LuminanceSize int `json:"luminance_size" yaml:"luminance_size" toml:"luminance_size"`
	DepthSize     int `json:"depth_size" yaml:"depth_size" toml:"depth_size"`
	StencilSize   int `json:"stencil_size" yaml:"stencil_size" toml:"stencil_size"`

	BindToTextureRGB  bool `json:"bind_to_texture_rgb" yaml:"bind_to_texture_rgb" toml:"bind_to_texture_rgb"`
	BindToTextureRGBA bool `json:"bind_to_texture_rgba" yaml:"bind_to_texture_rgba" toml:"bind_to_texture_rgba"`

	Conformant    int `json:"conformant" yaml:"conformant" toml:"conformant"`
	SampleBuffers int `json:"sample_buffers" yaml:"sample_buffers" toml:"sample_buffers"`
	Samples       int `json:"samples" yaml:"samples" toml:"samples"`

	ConfigCaveat     int `json:"config_caveat" yaml:"config_caveat" toml:"config_caveat"`
	MaxPbufferWidth  int `json:"max_pbuffer_width" yaml:"max_pbuffer_width" toml:"max_pbuffer_width"`
	MaxPbufferHeight int `json:"max_pbuffer_height" yaml:"max_pbuffer_height" toml:"max_pbuffer_height"`
	MaxPbufferPixels int `json:"max_pbuffer_pixels" yaml:"max_pbuffer_pixels" toml:"max_pbuffer_pixels"`
	MaxSwapInterval  int `json:"max_swap_interval" yaml:"max_swap_interval" toml:"max_swap_interval"`
	MinSwapInterval  int `json:"min_swap_interval" yaml:"min_swap_interval" toml:"min_swap_interval"`

	NativeRenderable bool `json:"native_renderable" yaml:"native_renderable" toml:"native_renderable"`
	RenderableType   int  `json:"renderable_type" yaml:"renderable_type" toml:"renderable_type"`
	SurfaceType      int  `json:"surface_type" yaml:"surface_type" toml:"surface_type"`

	TransparentType       int `json:"transparent_type" yaml:"transparent_type" toml:"transparent_type"`
	TransparentRedValue   int `json:"transparent_red_value" yaml:"transparent_red_value" toml:"transparent_red_value"`
	TransparentGreenValue int `json:"transparent_green_value" yaml:"transparent_green_value" toml:"transparent_green_value"`
	TransparentBlueValue  int `json:"transparent_blue_value" yaml:"transparent_blue_value" toml:"transparent_blue_value"`
}

const eglConfigHeader = "--fc- --vi- --vt-- buf lv rgb colorbuffer am lm dp st " +
	"-bind cfrm sb sm cav -----pbuffer----- swapin nv   rn   su " +
	"-transparent--\n" +
	"  id    id         siz l  lum  r  g  b  a sz sz th en " +
	" -  a            eat widt hght max-pxs  mx mn rd   ty   ty " +
	"typ  r  g  b  \n" +
	"------------------------------------------------------" +
	"-----------------------------------------------------------" +
	"--------------\n"

// WriteEGLConfigTable writes configs as a fixed-column EGL configuration
// table. Rows stop at the first record with a zero ID. A nil slice writes
// nothing; any other slice writes at least the header.
func WriteEGLConfigTable(w io.Writer, configs []EGLConfig) error {
	if configs == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, eglConfigHeader); err != nil {
		return err
	}
	for _, c := range configs {
		if c.ID == 0 {
			break
		}
		writeEGLConfigRow(bw, c)
	}
	return bw.Flush()
}

func writeEGLConfigRow(w *bufio.Writer, c EGLConfig) {
	fmt.Fprintf(w, idColumn, uint32(c.ID))
	if c.NativeVisualID != 0 {
		fmt.Fprintf(w, idColumn, uint32(c.NativeVisualID))
	} else {
		w.WriteString(noVisualColumn)
	}
	fmt.Fprintf(w, "0x%X %3d %2d %3s ",
		uint32(c.NativeVisualType),
		c.BufferSize,
		c.Level,
		EGLColorBufferTypeAbbrev(c.ColorBufferType),
	)
	fmt.Fprintf(w, "%2d %2d %2d %2d %2d %2d %2d %2d ",
		c.RedSize, c.GreenSize, c.BlueSize, c.AlphaSize,
		c.AlphaMaskSize, c.LuminanceSize, c.DepthSize, c.StencilSize,
	)
	fmt.Fprintf(w, "%2c %2c ", yesNo(c.BindToTextureRGB), yesNo(c.BindToTextureRGBA))
	fmt.Fprintf(w, "0x%02X %2d %2d ", uint32(c.Conformant), c.SampleBuffers, c.Samples)
	fmt.Fprintf(w, "%3.3s %4x %4x %7x %2d %2d ",
		EGLConfigCaveatAbbrev(c.ConfigCaveat),
		uint32(c.MaxPbufferWidth),
		uint32(c.MaxPbufferHeight),
		uint32(c.MaxPbufferPixels),
		c.MaxSwapInterval,
		c.MinSwapInterval,
	)
	fmt.Fprintf(w, "%2c %4x %4x ",
		yesNo(c.NativeRenderable),
		uint32(c.RenderableType),
		uint32(c.SurfaceType),
	)
	fmt.Fprintf(w, "%3s %2d %2d %2d\n",
		EGLTransparentTypeAbbrev(c.TransparentType),
		c.TransparentRedValue,
		c.TransparentGreenValue,
		c.TransparentBlueValue,
	)
}
