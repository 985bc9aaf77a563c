package ports

import "context"

// ScreenshotParams are the rendering parameters accepted by the screenshot
// endpoint and forwarded to the renderer.
type ScreenshotParams struct {
	URL      string
	Width    int
	Height   int
	FullPage bool
	Format   string // png, jpeg or pdf
	Quality  int    // jpeg only
}

// ScreenshotRenderer is the image/document rendering capability. Render
// returns the binary payload and its content type. Timeouts surface as
// ErrRenderTimeout, a missing backend as ErrRenderUnavailable.
type ScreenshotRenderer interface {
	Render(ctx context.Context, params ScreenshotParams) (data []byte, contentType string, err error)
}

// ScreenshotResult is a rendered (possibly cached) screenshot.
type ScreenshotResult struct {
	Data        []byte
	ContentType string
	Cached      bool
}
