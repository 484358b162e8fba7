package drift

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MapRange maps v from the input interval [in0, in1] onto [out0, out1]
// through the easing function fn, clamping to the nearest output endpoint
// outside the interval. A nil fn is linear. A degenerate input interval
// (in0 == in1) steps from out0 to out1 at in1.
func MapRange(v, in0, in1, out0, out1 float64, fn ease.TweenFunc) float64 {
	if in0 == in1 {
		if v < in1 {
			return out0
		}
		return out1
	}
	if in0 > in1 {
		in0, in1 = in1, in0
		out0, out1 = out1, out0
	}
	if v <= in0 {
		return out0
	}
	if v >= in1 {
		return out1
	}
	if fn == nil {
		return lerp(out0, out1, (v-in0)/(in1-in0))
	}
	return float64(fn(float32(v-in0), float32(out0), float32(out1-out0), float32(in1-in0)))
}

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenFields or the convenience constructors and call Update(dt) each
// frame; values are written straight into the target fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	delay  float32
	Done   bool
}

// TweenFields creates a TweenGroup that moves each field from its current
// value to the matching entry of to over duration seconds. Extra fields
// beyond 4 are ignored.
func TweenFields(fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	for i := 0; i < len(fields) && i < len(to) && i < len(g.tweens); i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
		g.count++
	}
	if g.count == 0 {
		g.Done = true
	}
	return g
}

// TweenValue creates a TweenGroup animating a single field.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenFields([]*float64{field}, []float64{to}, duration, fn)
}

// Delay holds the group at its start values for d seconds before it begins.
func (g *TweenGroup) Delay(d float32) *TweenGroup {
	if d > 0 {
		g.delay = d
	}
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		if dt <= g.delay {
			g.delay -= dt
			return
		}
		dt -= g.delay
		g.delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}
