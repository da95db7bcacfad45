package consultation

import "math"

// BodyMassIndex returns weight / (height in meters)², rounded to two
// decimals. ok is false unless both inputs are positive.
func BodyMassIndex(heightCM, weightKG float64) (bmi float64, ok bool) {
	if heightCM <= 0 || weightKG <= 0 {
		return 0, false
	}
	m := heightCM / 100
	return math.Round(weightKG/(m*m)*100) / 100, true
}
