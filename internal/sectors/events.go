package sectors

// Event is an input routed through Controller.Dispatch.
type Event interface {
	event()
}

// SetN comes from the slider, the stepper buttons and the entry field.
// Fractional values are truncated.
type SetN struct{ Value float64 }

// SectorClick is a pointer activation on slice Index.
type SectorClick struct{ Index int }

// TapPad is one activation of the tap pad.
type TapPad struct{}

// ResetTaps zeroes the tap counter.
type ResetTaps struct{}

// SwitchMode selects a new interaction mode.
type SwitchMode struct{ Mode Mode }

// ArrowKey moves N by Delta unless a text field has keyboard focus.
type ArrowKey struct {
	Delta       int
	InTextField bool
}

func (SetN) event()        {}
func (SectorClick) event() {}
func (TapPad) event()      {}
func (ResetTaps) event()   {}
func (SwitchMode) event()  {}
func (ArrowKey) event()    {}
