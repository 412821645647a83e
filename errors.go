package sysfont

import "errors"

var (
	// ErrNoPublisher is returned by Render when the renderer has no
	// Publisher.
	ErrNoPublisher = errors.New("sysfont: no publisher")

	// ErrInvalidTexture is returned by Render and publishers for the zero
	// texture handle.
	ErrInvalidTexture = errors.New("sysfont: invalid texture handle")
)
