package display

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// RGBARShift is the bit shift for the red component in RGBA format
	RGBARShift = 24
	// RGBAGShift is the bit shift for the green component in RGBA format
	RGBAGShift = 16
	// RGBABShift is the bit shift for the blue component in RGBA format
	RGBABShift = 8
	// RGBAColorMask is the mask for extracting color components
	RGBAColorMask = 0xFF
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)

// Window constants
const (
	// DefaultWindowTitle is shown by backends that have a title bar
	DefaultWindowTitle = "hexgen"
	// DefaultWindowWidth is the default window width in pixels
	DefaultWindowWidth = 960
	// DefaultWindowHeight is the default window height in pixels
	DefaultWindowHeight = 640
	// DefaultPixelScale is the size of a frame buffer pixel in window pixels
	DefaultPixelScale = 2
	// HeadlessWidth is the framebuffer width used by the headless backend
	HeadlessWidth = 320
	// HeadlessHeight is the framebuffer height used by the headless backend
	HeadlessHeight = 200
)

// Terminal constants
const (
	// TerminalPixelsPerCell is the number of vertical pixels drawn per cell using half blocks
	TerminalPixelsPerCell = 2
	// TerminalOverlayLines is the number of log lines shown in the overlay
	TerminalOverlayLines = 4
)
