package renderer

// Names of the uniforms the camera matrices are bound to.
const (
	UNIFORM_VIEW       string = "view"
	UNIFORM_PROJECTION string = "proj"
)
