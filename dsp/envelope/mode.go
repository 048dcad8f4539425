package envelope

// Mode produces the instantaneous envelope estimate for the next sample.
// Peak and *RMS implement it.
type Mode interface {
	Next(sample float64) float64
}

// Cloner is a Mode that can duplicate its full running state, which is what
// a MultiChannel needs to populate new channels.
type Cloner[M any] interface {
	Mode
	Clone() M
}

// windowed is implemented by modes with a resizable analysis window.
type windowed interface {
	WindowFrames() int
	SetWindowFrames(n int)
}

type resetter interface {
	Reset()
}
