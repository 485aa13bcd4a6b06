package glinfo

import (
	"bufio"
	"fmt"
	"io"
)

// FBConfig is one GLX framebuffer configuration. A record whose ID is zero
// terminates a configuration list.
type FBConfig struct {
	ID           int  `json:"fbconfig_id" yaml:"fbconfig_id" toml:"fbconfig_id"`
	VisualID     int  `json:"visual_id" yaml:"visual_id" toml:"visual_id"`
	XVisualType  int  `json:"x_visual_type" yaml:"x_visual_type" toml:"x_visual_type"`
	BufferSize   int  `json:"buffer_size" yaml:"buffer_size" toml:"buffer_size"`
	Level        int  `json:"level" yaml:"level" toml:"level"`
	RenderType   int  `json:"render_type" yaml:"render_type" toml:"render_type"`
	DoubleBuffer bool `json:"doublebuffer" yaml:"doublebuffer" toml:"doublebuffer"`
	Stereo       bool `json:"stereo" yaml:"stereo" toml:"stereo"`

	RedSize     int `json:"red_size" yaml:"red_size" toml:"red_size"`
	GreenSize   int `json:"green_size" yaml:"green_size" toml:"green_size"`
	BlueSize    int `json:"blue_size" yaml:"blue_size" toml:"blue_size"`
	AlphaSize   int `json:"alpha_size" yaml:"alpha_size" toml:"alpha_size"`
	AuxBuffers  int `json:"aux_buffers" yaml:"aux_buffers" toml:"aux_buffers"`
	DepthSize   int `json:"depth_size" yaml:"depth_size" toml:"depth_size"`
	StencilSize int `json:"stencil_size" yaml:"stencil_size" toml:"stencil_size"`

	AccumRedSize   int `json:"accum_red_size" yaml:"accum_red_size" toml:"accum_red_size"`
	AccumGreenSize int `json:"accum_green_size" yaml:"accum_green_size" toml:"accum_green_size"`
	AccumBlueSize  int `json:"accum_blue_size" yaml:"accum_blue_size" toml:"accum_blue_size"`
	AccumAlphaSize int `json:"accum_alpha_size" yaml:"accum_alpha_size" toml:"accum_alpha_size"`

	MultiSampleValid         bool `json:"multi_sample_valid" yaml:"multi_sample_valid" toml:"multi_sample_valid"`
	MultiSamples             int  `json:"multi_samples" yaml:"multi_samples" toml:"multi_samples"`
	MultiSampleCoverageValid bool `json:"multi_sample_coverage_valid" yaml:"multi_sample_coverage_valid" toml:"multi_sample_coverage_valid"`
	MultiSamplesColor        int  `json:"multi_samples_color" yaml:"multi_samples_color" toml:"multi_samples_color"`
	MultiSampleBuffers       int  `json:"multi_sample_buffers" yaml:"multi_sample_buffers" toml:"multi_sample_buffers"`

	ConfigCaveat  int `json:"config_caveat" yaml:"config_caveat" toml:"config_caveat"`
	PbufferWidth  int `json:"pbuffer_width" yaml:"pbuffer_width" toml:"pbuffer_width"`
	PbufferHeight int `json:"pbuffer_height" yaml:"pbuffer_height" toml:"pbuffer_height"`
	PbufferMax    int `json:"pbuffer_max" yaml:"pbuffer_max" toml:"pbuffer_max"`

	TransparentType       int `json:"transparent_type" yaml:"transparent_type" toml:"transparent_type"`
	TransparentRedValue   int `json:"transparent_red_value" yaml:"transparent_red_value" toml:"transparent_red_value"`
	TransparentGreenValue int `json:"transparent_green_value" yaml:"transparent_green_value" toml:"transparent_green_value"`
	TransparentBlueValue  int `json:"transparent_blue_value" yaml:"transparent_blue_value" toml:"transparent_blue_value"`
	TransparentAlphaValue int `json:"transparent_alpha_value" yaml:"transparent_alpha_value" toml:"transparent_alpha_value"`
	TransparentIndexValue int `json:"transparent_index_value" yaml:"transparent_index_value" toml:"transparent_index_value"`
}

const fbConfigHeader = "--fc- --vi- vt buf lv rgb d s colorbuffer ax dp st " +
	"accumbuffer ---ms---- cav -----pbuffer----- ---transparent----\n" +
	"  id    id     siz l  ci  b t  r  g  b  a bf th en " +
	" r  g  b  a mvs mcs b eat widt hght max-pxs typ  r  g  b  a  i\n" +
	"---------------------------------------------------" +
	"--------------------------------------------------------------\n"

// Column formats shared by both configuration tables.
const (
	idColumn       = "0x%03x "
	noVisualColumn = "   .  "
	noMultiSample  = "  .   . . "
)

// WriteFBConfigTable writes configs as a fixed-column GLX framebuffer
// configuration table. Rows stop at the first record with a zero ID. A nil
// slice writes nothing; any other slice writes at least the header.
func WriteFBConfigTable(w io.Writer, configs []FBConfig) error {
	if configs == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, fbConfigHeader); err != nil {
		return err
	}
	for _, c := range configs {
		if c.ID == 0 {
			break
		}
		writeFBConfigRow(bw, c)
	}
	return bw.Flush()
}

// writeFBConfigRow writes one row. Errors are sticky on the bufio.Writer and
// surface on Flush.
func writeFBConfigRow(w *bufio.Writer, c FBConfig) {
	fmt.Fprintf(w, idColumn, uint32(c.ID))
	if c.VisualID != 0 {
		fmt.Fprintf(w, idColumn, uint32(c.VisualID))
	} else {
		w.WriteString(noVisualColumn)
	}
	fmt.Fprintf(w, "%2.2s %3d %2d %3.3s %1c %1c ",
		XVisualTypeAbbrev(c.XVisualType),
		c.BufferSize,
		c.Level,
		RenderTypeAbbrev(c.RenderType),
		yesNo(c.DoubleBuffer),
		yesNo(c.Stereo),
	)
	fmt.Fprintf(w, "%2d %2d %2d %2d %2d %2d %2d ",
		c.RedSize, c.GreenSize, c.BlueSize, c.AlphaSize,
		c.AuxBuffers, c.DepthSize, c.StencilSize,
	)
	fmt.Fprintf(w, "%2d %2d %2d %2d ",
		c.AccumRedSize, c.AccumGreenSize, c.AccumBlueSize, c.AccumAlphaSize,
	)
	if c.MultiSampleValid {
		color := c.MultiSamples
		if c.MultiSampleCoverageValid {
			color = c.MultiSamplesColor
		}
		fmt.Fprintf(w, "%3d %3d %1d ", c.MultiSamples, color, c.MultiSampleBuffers)
	} else {
		w.WriteString(noMultiSample)
	}
	fmt.Fprintf(w, "%3.3s %4x %4x %7x %3.3s %2d %2d %2d %2d %2d\n",
		CaveatAbbrev(c.ConfigCaveat),
		uint32(c.PbufferWidth),
		uint32(c.PbufferHeight),
		uint32(c.PbufferMax),
		TransparentTypeAbbrev(c.TransparentType),
		c.TransparentRedValue,
		c.TransparentGreenValue,
		c.TransparentBlueValue,
		c.TransparentAlphaValue,
		c.TransparentIndexValue,
	)
}
