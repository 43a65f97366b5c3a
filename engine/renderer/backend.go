package renderer

// RendererBackend is what the engine needs from a graphics API: frame
// bracketing and the upload of 4x4 matrices as uniforms. data is always
// sixteen floats in column-major order.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	SetUniformMat4(name string, data []float32) error
}
