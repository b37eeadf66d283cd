package libfvad

import (
	"math"
)

func convertFloat32ToInt16Slice(samples []float32) []int16 {
	result := make([]int16, len(samples))
	for i, s := range samples {
		v := math.Round(float64(s) * math.MaxInt16)
		result[i] = int16(max(math.MinInt16, min(math.MaxInt16, v)))
	}
	return result
}
