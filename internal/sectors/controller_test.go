package sectors

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sectors/internal/geometry"
)

type fakeView struct {
	frames []Frame
	states []State
}

func (v *fakeView) RenderSectors(f Frame) { v.frames = append(v.frames, f) }
func (v *fakeView) ShowState(s State)     { v.states = append(v.states, s) }

type fakeFeedback struct {
	plays int
	err   error
}

func (f *fakeFeedback) Play() error {
	f.plays++
	return f.err
}

func newTestController(t *testing.T, n int, mode Mode) (*Controller, *fakeView, *fakeFeedback) {
	t.Helper()
	view := &fakeView{}
	fb := &fakeFeedback{}
	c := New(Options{InitialN: n, InitialMode: mode, Size: 200}, view,
		func() (Feedback, error) { return fb, nil },
		log.New(io.Discard, "", 0))
	return c, view, fb
}

func TestClamp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{1, 1}, {24, 24}, {0, 1}, {25, 24}, {-7, 1}, {1000, 24},
		{6.9, 6}, {0.5, 1}, {23.99, 23}, {math.Inf(1), 24}, {math.Inf(-1), 1},
	}
	for _, tc := range cases {
		got, ok := Clamp(tc.in)
		require.True(t, ok)
		require.Equal(t, tc.want, got, "Clamp(%v)", tc.in)
	}

	_, ok := Clamp(math.NaN())
	require.False(t, ok)

	for v := -50; v <= 50; v++ {
		got, _ := Clamp(float64(v))
		require.GreaterOrEqual(t, got, 1)
		require.LessOrEqual(t, got, 24)
	}
}

func TestNewClampsInitialState(t *testing.T) {
	c, _, _ := newTestController(t, 99, Mode(7))
	require.Equal(t, State{N: 24, Mode: ModeCut}, c.State())

	c, _, _ = newTestController(t, 0, ModeTap)
	require.Equal(t, State{N: 1, Mode: ModeTap}, c.State())
}

func TestStartRendersInitialFrame(t *testing.T) {
	c, view, _ := newTestController(t, 6, ModeCut)
	c.Start()

	require.Len(t, view.frames, 1)
	f := view.frames[0]
	require.Equal(t, 6, f.N)
	require.Len(t, f.Sectors, 6)
	require.InDelta(t, -math.Pi/2, f.Sectors[0].Start, 1e-9)
	require.InDelta(t, -math.Pi/2+math.Pi/3, f.Sectors[0].End, 1e-9)

	// Sector 0 starts straight above the center.
	line := f.Sectors[0].Path.Commands[1]
	require.InDelta(t, f.Center().X, line.To.X, 1e-9)
	require.InDelta(t, f.Center().Y-f.Radius(), line.To.Y, 1e-9)
	require.Len(t, view.states, 1)
}

func TestSetN(t *testing.T) {
	c, view, _ := newTestController(t, 6, ModeCut)

	c.Dispatch(SetN{Value: 10.7})
	require.Equal(t, 10, c.State().N)
	require.Len(t, view.frames, 1)
	require.Len(t, view.frames[0].Sectors, 10)

	c.Dispatch(SetN{Value: 100})
	require.Equal(t, 24, c.State().N)

	c.Dispatch(SetN{Value: -3})
	require.Equal(t, 1, c.State().N)

	c.Dispatch(SetN{Value: math.NaN()})
	require.Equal(t, 1, c.State().N)
	require.Len(t, view.frames, 3)
}

func TestSetNSameValueIsNoop(t *testing.T) {
	c, view, _ := newTestController(t, 6, ModeCut)

	c.Dispatch(SetN{Value: 6})
	c.Dispatch(SetN{Value: 6.4})
	c.Dispatch(ArrowKey{Delta: 0})
	require.Empty(t, view.frames)
	require.Empty(t, view.states)

	c, view, _ = newTestController(t, 24, ModeCut)
	c.Dispatch(SetN{Value: 30})
	c.Dispatch(ArrowKey{Delta: 1})
	c.Dispatch(SectorClick{Index: 0})
	require.Empty(t, view.frames)
	require.Equal(t, 24, c.State().N)
}

func TestModeSwitchKeepsCounts(t *testing.T) {
	c, view, _ := newTestController(t, 10, ModeTap)
	for i := 0; i < 3; i++ {
		c.Dispatch(TapPad{})
	}
	c.Dispatch(SetN{Value: 10})
	require.Equal(t, State{N: 10, Mode: ModeTap, TapCount: 3}, c.State())

	c.Dispatch(SwitchMode{Mode: ModeCut})
	rendered := len(view.frames)
	for _, m := range []Mode{ModeMerge, ModeTap, ModeCut} {
		c.Dispatch(SwitchMode{Mode: m})
		require.Equal(t, m, c.State().Mode)
		require.Equal(t, 10, c.State().N)
		require.Equal(t, 3, c.State().TapCount)
	}
	require.Len(t, view.frames, rendered)

	shown := len(view.states)
	c.Dispatch(SwitchMode{Mode: ModeCut})
	c.Dispatch(SwitchMode{Mode: Mode(-1)})
	require.Len(t, view.states, shown)
	require.Equal(t, ModeCut, c.State().Mode)
}

func TestCutMode(t *testing.T) {
	c, view, _ := newTestController(t, 6, ModeCut)
	for i := 0; i < 3; i++ {
		c.Dispatch(SectorClick{Index: 0})
	}
	require.Equal(t, 9, c.State().N)
	require.Len(t, view.frames, 3)

	for i := 0; i < 30; i++ {
		c.Dispatch(SectorClick{Index: 1})
	}
	require.Equal(t, 24, c.State().N)
}

func TestMergeModeStopsAtOne(t *testing.T) {
	c, view, _ := newTestController(t, 1, ModeMerge)
	c.Dispatch(SectorClick{Index: 0})
	require.Equal(t, 1, c.State().N)
	require.Empty(t, view.frames)

	c, _, _ = newTestController(t, 3, ModeMerge)
	c.Dispatch(SectorClick{Index: 2})
	c.Dispatch(SectorClick{Index: 0})
	require.Equal(t, 1, c.State().N)
}

func TestSectorClickIgnoredInTapMode(t *testing.T) {
	c, view, fb := newTestController(t, 5, ModeTap)
	c.Dispatch(SectorClick{Index: 2})
	require.Equal(t, State{N: 5, Mode: ModeTap}, c.State())
	require.Empty(t, view.frames)
	require.Zero(t, fb.plays)
}

func TestSectorClickOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	view := &fakeView{}
	c := New(Options{InitialN: 4, Size: 200}, view, nil, log.New(&buf, "", 0))
	c.Dispatch(SectorClick{Index: 4})
	c.Dispatch(SectorClick{Index: -1})
	require.Equal(t, 4, c.State().N)
	require.Contains(t, buf.String(), "unknown slice")
}

func TestTapMode(t *testing.T) {
	c, _, fb := newTestController(t, 12, ModeTap)
	for i := 0; i < 5; i++ {
		c.Dispatch(TapPad{})
	}
	require.Equal(t, 5, c.State().TapCount)
	require.Equal(t, 5, c.State().N)
	require.Equal(t, 5, fb.plays)
}

func TestTapCountIsUnbounded(t *testing.T) {
	c, view, _ := newTestController(t, 1, ModeTap)
	for i := 0; i < 24; i++ {
		c.Dispatch(TapPad{})
	}
	require.Equal(t, State{N: 24, Mode: ModeTap, TapCount: 24}, c.State())
	rendered := len(view.frames)

	c.Dispatch(TapPad{})
	require.Equal(t, State{N: 24, Mode: ModeTap, TapCount: 25}, c.State())
	require.Len(t, view.frames, rendered)
	require.Equal(t, 25, view.states[len(view.states)-1].TapCount)
}

func TestTapPadIgnoredOutsideTapMode(t *testing.T) {
	c, _, fb := newTestController(t, 6, ModeCut)
	c.Dispatch(TapPad{})
	require.Equal(t, State{N: 6, Mode: ModeCut}, c.State())
	require.Zero(t, fb.plays)
}

func TestResetTaps(t *testing.T) {
	for _, mode := range []Mode{ModeCut, ModeMerge, ModeTap} {
		c, _, _ := newTestController(t, 1, ModeTap)
		for i := 0; i < 7; i++ {
			c.Dispatch(TapPad{})
		}
		c.Dispatch(SwitchMode{Mode: mode})
		c.Dispatch(ResetTaps{})
		require.Equal(t, State{N: 7, Mode: mode, TapCount: 0}, c.State())
	}

	// After a reset the next tap starts counting from one again.
	c, _, _ := newTestController(t, 1, ModeTap)
	c.Dispatch(TapPad{})
	c.Dispatch(TapPad{})
	c.Dispatch(ResetTaps{})
	c.Dispatch(TapPad{})
	require.Equal(t, State{N: 1, Mode: ModeTap, TapCount: 1}, c.State())
}

func TestArrowKeys(t *testing.T) {
	c, _, _ := newTestController(t, 6, ModeTap)
	c.Dispatch(ArrowKey{Delta: 1})
	require.Equal(t, 7, c.State().N)
	c.Dispatch(ArrowKey{Delta: -1})
	c.Dispatch(ArrowKey{Delta: -1})
	require.Equal(t, 5, c.State().N)

	c.Dispatch(ArrowKey{Delta: 1, InTextField: true})
	require.Equal(t, 5, c.State().N)
}

func TestFeedbackAcquiredOnce(t *testing.T) {
	calls := 0
	fb := &fakeFeedback{}
	c := New(Options{InitialN: 1, InitialMode: ModeTap, Size: 200}, &fakeView{},
		func() (Feedback, error) {
			calls++
			return fb, nil
		}, nil)

	require.Zero(t, calls)
	for i := 0; i < 4; i++ {
		c.Dispatch(TapPad{})
	}
	require.Equal(t, 1, calls)
	require.Equal(t, 4, fb.plays)
}

func TestFeedbackFailuresAreSwallowed(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	c := New(Options{InitialN: 1, InitialMode: ModeTap, Size: 200}, &fakeView{},
		func() (Feedback, error) {
			calls++
			return nil, errors.New("no audio device")
		}, log.New(&buf, "", 0))

	c.Dispatch(TapPad{})
	c.Dispatch(TapPad{})
	c.Dispatch(TapPad{})
	require.Equal(t, State{N: 3, Mode: ModeTap, TapCount: 3}, c.State())
	require.Equal(t, 1, calls)
	require.Contains(t, buf.String(), "no audio device")

	buf.Reset()
	fb := &fakeFeedback{err: errors.New("speaker busy")}
	c = New(Options{InitialN: 1, InitialMode: ModeTap, Size: 200}, &fakeView{},
		func() (Feedback, error) { return fb, nil }, log.New(&buf, "", 0))
	c.Dispatch(TapPad{})
	require.Equal(t, 1, c.State().TapCount)
	require.Contains(t, buf.String(), "speaker busy")
}

func TestSingleSliceFrame(t *testing.T) {
	c, view, _ := newTestController(t, 3, ModeCut)
	c.Dispatch(SetN{Value: 1})
	require.Len(t, view.frames, 1)

	f := view.frames[0]
	require.Len(t, f.Sectors, 1)
	require.InDelta(t, 2*math.Pi, f.Sectors[0].End-f.Sectors[0].Start, 1e-9)
	require.Equal(t, 2, f.Sectors[0].Path.Count(geometry.OpArc))
}

func TestModeHelpers(t *testing.T) {
	require.Equal(t, ModeMerge, ParseMode(" MERGE "))
	require.Equal(t, ModeTap, ParseMode("tap"))
	require.Equal(t, ModeCut, ParseMode("whatever"))
	require.Equal(t, "Tap", ModeTap.String())
	require.Equal(t, "Unknown", Mode(9).String())
	require.NotEmpty(t, ModeCut.Hint())
}
