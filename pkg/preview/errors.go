package preview

import "errors"

var (
	// ErrOriginNotAllowed rejects a cross-origin WebSocket upgrade.
	ErrOriginNotAllowed = errors.New("preview: origin not allowed")

	// ErrSurfaceClosed reports a connection attempt against a closed surface.
	ErrSurfaceClosed = errors.New("preview: surface closed")
)
