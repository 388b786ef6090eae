package graphics

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// DragDelta returns the cursor movement since the last call while the
	// left button is held.
	DragDelta() (float64, float64)
	// ScrollDelta returns the scroll wheel movement since the last call.
	ScrollDelta() float64
}
