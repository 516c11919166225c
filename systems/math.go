package systems

import "math"

const pi = math.Pi

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeAngle wraps an angle to (-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

func cos32(a float32) float32 { return float32(math.Cos(float64(a))) }

func sin32(a float32) float32 { return float32(math.Sin(float64(a))) }

func atan2f(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }
