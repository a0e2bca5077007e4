package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/timer"
)

// TimeOfDay is a named segment of the 24-hour cycle.
type TimeOfDay int

const (
	Night TimeOfDay = iota
	Dawn
	Morning
	Noon
	Afternoon
	Dusk
)

func (t TimeOfDay) String() string {
	switch t {
	case Night:
		return "Night"
	case Dawn:
		return "Dawn"
	case Morning:
		return "Morning"
	case Noon:
		return "Noon"
	case Afternoon:
		return "Afternoon"
	case Dusk:
		return "Dusk"
	default:
		return "Unknown"
	}
}

// IsLight reports whether t is a daylight bucket.
func (t TimeOfDay) IsLight() bool {
	return t == Morning || t == Noon || t == Afternoon
}

// Hours holds the configurable boundaries of the cycle.
type Hours struct {
	Sunrise, Noon, Sunset int
}

// BucketOf maps an hour in [0, 23] to exactly one bucket.
func BucketOf(hour int, h Hours) TimeOfDay {
	switch {
	case hour >= h.Sunset || hour <= h.Sunrise:
		return Night
	case hour < config.MorningStartHour:
		return Dawn
	case hour < h.Noon:
		return Morning
	case hour == h.Noon:
		return Noon
	case hour < config.DuskStartHour:
		return Afternoon
	default:
		return Dusk
	}
}

// Palette maps each bucket to an optional colour.
type Palette [6]core.NullColor

// For returns the colour for bucket t.
func (p Palette) For(t TimeOfDay) core.NullColor {
	if t < 0 || int(t) >= len(p) {
		return core.None
	}
	return p[t]
}

var (
	skyPalette = Palette{
		Night:     core.Some(core.RGB(12, 14, 42)),
		Dawn:      core.Some(core.RGB(238, 150, 110)),
		Morning:   core.Some(core.RGB(135, 200, 235)),
		Noon:      core.Some(core.RGB(96, 176, 250)),
		Afternoon: core.Some(core.RGB(118, 186, 238)),
		Dusk:      core.Some(core.RGB(232, 112, 82)),
	}
	starPalette = Palette{
		Night: core.Some(core.RGB(255, 252, 220)),
		Dawn:  core.Some(core.RGB(214, 206, 184)),
		Dusk:  core.Some(core.RGB(226, 212, 170)),
	}
	sunPalette = Palette{
		Dawn:      core.Some(core.RGB(255, 168, 64)),
		Morning:   core.Some(core.RGB(255, 216, 84)),
		Noon:      core.Some(core.RGB(255, 250, 128)),
		Afternoon: core.Some(core.RGB(255, 206, 92)),
		Dusk:      core.Some(core.RGB(255, 122, 54)),
	}
)

// ColorBlend moves one visual subject from its current colour to a target
// over a fixed duration. The start colour is captured when a transition
// begins; a target that moves mid-transition is followed from that start
// without restarting the timer.
type ColorBlend struct {
	timer    timer.Timer
	from     core.Color
	duration int64
}

// NewColorBlend creates an idle blend.
func NewColorBlend(clock timer.Clock, durationMs int64) ColorBlend {
	return ColorBlend{timer: timer.New(clock), duration: durationMs}
}

// Active reports whether a transition is in progress.
func (b *ColorBlend) Active() bool {
	return b.timer.IsRunning()
}

// Step returns the colour to show this tick given the current and target colours.
//
// Absent to present snaps to the target. Present to absent keeps the current
// colour. Equal colours leave the blend idle. A transition that has run for
// the full duration stops and lands exactly on the target.
func (b *ColorBlend) Step(current, target core.NullColor) core.NullColor {
	if !target.Valid {
		return current
	}
	if !current.Valid {
		b.timer.Stop()
		return target
	}
	if current.Color == target.Color {
		b.timer.Stop()
		return current
	}

	if !b.timer.IsRunning() {
		b.from = current.Color
		b.timer.Restart()
	}

	elapsed := b.timer.ElapsedMillis()
	if elapsed >= b.duration {
		b.timer.Stop()
		return target
	}
	return core.Some(b.from.Lerp(target.Color, float64(elapsed)/float64(b.duration)))
}

// sunOffscreen is the sun coordinate used outside daylight hours.
const sunOffscreen = -100

// SunPosition returns the sun's viewport cell for the hour. X moves linearly
// from sunrise to sunset; Y follows a parabola peaking at noon one row below
// the top. Outside (sunrise, sunset] both are sunOffscreen.
func SunPosition(hour int, h Hours, width, height int) core.Point {
	if hour <= h.Sunrise || hour > h.Sunset {
		return core.Point{X: sunOffscreen, Y: sunOffscreen}
	}
	x := math.Round(float64(width) * float64(hour-h.Sunrise) / float64(h.Sunset-h.Sunrise))
	span := float64(h.Noon - h.Sunrise)
	y := math.Round((float64(height)-2)/(span*span)*math.Pow(float64(hour-h.Noon), 2) + 1)
	return core.Point{X: int(x), Y: int(y)}
}

// pickIndex draws a random index in [0, n) not in used, probing forward
// with wrap-around from a random start. It returns false once every index
// has been used.
func pickIndex(rng *rand.Rand, n int, used map[int]bool) (int, bool) {
	if n <= 0 || len(used) >= n {
		return 0, false
	}
	i := rng.Intn(n)
	for used[i] {
		i = core.Wrap(i+1, n)
	}
	return i, true
}

// windowsToLight is how many dark windows a bucket change switches on.
func windowsToLight(to TimeOfDay, dark int) int {
	switch to {
	case Dusk:
		return dark / 5
	case Night:
		return dark / 2
	default:
		return 0
	}
}

// windowsToDarken is how many lit windows one daylight pass switches off.
func windowsToDarken(lit int) int {
	n := lit / 3
	if n == 0 && lit > 0 {
		n = lit
	}
	return n
}
