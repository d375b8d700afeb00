package core

// RuntimeConfig contains configuration passed to a frontend at startup.
// The simulation runs in world pixels; ScreenW/ScreenH describe the frontend
// surface (terminal cells or window pixels) it is drawn onto.
type RuntimeConfig struct {
	ScreenW  int // Frontend surface width
	ScreenH  int // Frontend surface height
	TickRate int // Frames per second requested from the frontend (default 60)
}
