package cv

// MaxEuclidSteps bounds the pattern length. Every step is expanded to
// ticksPerNote samples, so with a /16 clock mod a full-length pattern is
// already 16*384 samples.
const MaxEuclidSteps = 16

// EuclideanPattern returns steps binary slots containing exactly pulses
// ones, evenly distributed (Bjorklund spacing), rotated left by rotation.
// steps == 0 is the degenerate always-on pattern [1]. Deterministic.
func EuclideanPattern(steps, pulses, rotation int) []int {
	if steps <= 0 {
		return []int{1}
	}
	if pulses < 0 {
		pulses = 0
	}
	if pulses > steps {
		pulses = steps
	}
	pattern := bjorklund(steps, pulses)
	if rotation > 0 {
		rotation %= steps
		rotated := make([]int, steps)
		for i := range pattern {
			rotated[i] = pattern[(i+rotation)%steps]
		}
		pattern = rotated
	}
	return pattern
}

// bjorklund distributes pulses over steps using the bucket method. The
// accumulator starts one pulse short of full so a non-empty pattern always
// fires on the first step.
func bjorklund(steps, pulses int) []int {
	pattern := make([]int, steps)
	if pulses == 0 {
		return pattern
	}
	bucket := steps - pulses
	for i := range pattern {
		bucket += pulses
		if bucket >= steps {
			bucket -= steps
			pattern[i] = 1
		}
	}
	return pattern
}
