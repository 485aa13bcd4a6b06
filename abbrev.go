package glinfo

// GLX attribute values used by the legacy configuration table.
const (
	GLXRGBABit        = 0x0001
	GLXColorIndexBit  = 0x0002
	GLXNone           = 0x8000
	GLXTrueColor      = 0x8002
	GLXDirectColor    = 0x8003
	GLXPseudoColor    = 0x8004
	GLXStaticColor    = 0x8005
	GLXGrayScale      = 0x8006
	GLXStaticGray     = 0x8007
	GLXTransparentRGB = 0x8008
	GLXTransparentIdx = 0x8009

	GLXNoneExt                = 0x8000
	GLXSlowVisualExt          = 0x8001
	GLXNonConformantVisualExt = 0x800D
)

// EGL attribute values used by the EGL configuration table.
const (
	EGLNone                = 0x3038
	EGLSlowConfig          = 0x3050
	EGLNonConformantConfig = 0x3051
	EGLTransparentRGB      = 0x3052
	EGLRGBBuffer           = 0x308E
	EGLLuminanceBuffer     = 0x308F
)

const noAbbrev = "."

// RenderTypeAbbrev abbreviates a GLX render-type bitmask.
func RenderTypeAbbrev(renderType int) string {
	switch renderType {
	case GLXRGBABit:
		return "rgb"
	case GLXColorIndexBit:
		return "ci"
	case GLXRGBABit | GLXColorIndexBit:
		return "any"
	default:
		return noAbbrev
	}
}

// TransparentTypeAbbrev abbreviates a GLX transparent type.
func TransparentTypeAbbrev(transparentType int) string {
	switch transparentType {
	case GLXTransparentRGB:
		return "rg"
	case GLXTransparentIdx:
		return "ci"
	default:
		return noAbbrev
	}
}

// XVisualTypeAbbrev abbreviates an X visual class.
func XVisualTypeAbbrev(visualType int) string {
	switch visualType {
	case GLXTrueColor:
		return "tc"
	case GLXDirectColor:
		return "dc"
	case GLXPseudoColor:
		return "pc"
	case GLXStaticColor:
		return "sc"
	case GLXGrayScale:
		return "gs"
	case GLXStaticGray:
		return "sg"
	default:
		return noAbbrev
	}
}

// CaveatAbbrev abbreviates a GLX visual caveat. Zero is treated as no caveat.
func CaveatAbbrev(caveat int) string {
	switch caveat {
	case GLXSlowVisualExt:
		return "slo"
	case GLXNonConformantVisualExt:
		return "NoC"
	default:
		return noAbbrev
	}
}

// EGLColorBufferTypeAbbrev abbreviates an EGL color buffer type.
func EGLColorBufferTypeAbbrev(bufferType int) string {
	switch bufferType {
	case EGLRGBBuffer:
		return "rgb"
	case EGLLuminanceBuffer:
		return "lum"
	default:
		return noAbbrev
	}
}

// EGLConfigCaveatAbbrev abbreviates an EGL config caveat.
func EGLConfigCaveatAbbrev(caveat int) string {
	switch caveat {
	case EGLSlowConfig:
		return "slo"
	case EGLNonConformantConfig:
		return "NoC"
	default:
		return noAbbrev
	}
}

// EGLTransparentTypeAbbrev abbreviates an EGL transparent type.
func EGLTransparentTypeAbbrev(transparentType int) string {
	if transparentType == EGLTransparentRGB {
		return "rgb"
	}
	return noAbbrev
}

func yesNo(b bool) rune {
	if b {
		return 'y'
	}
	return '.'
}
