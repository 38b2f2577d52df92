package engine

// Apply adds delta to current and clamps every dimension to [StatMin, StatMax].
// This is the only way totals change.
func Apply(current, delta StatVector) StatVector {
	return Clamp(Add(current, delta))
}

// Reverse negates a previously applied delta.
func Reverse(delta StatVector) StatVector {
	return Negate(delta)
}

// AppliedDelta is what actually landed between two totals, after clamping.
func AppliedDelta(before, after StatVector) StatVector {
	return Sub(after, before)
}

// Saturated lists the stats where clamping absorbed part of delta.
func Saturated(current, delta StatVector) []Stat {
	raw := Add(current, delta)
	clamped := Clamp(raw)
	var out []Stat
	for _, s := range AllStats {
		if raw.Get(s) != clamped.Get(s) {
			out = append(out, s)
		}
	}
	return out
}
