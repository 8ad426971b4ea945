package kinematics

import "math"

// MinSpeedKmh is the floor applied to declared speeds so travel times stay finite.
const MinSpeedKmh = 1.0

// UniformVelocity implements MotionModel at a constant speed.
type UniformVelocity struct {
	SpeedKmh float64 `json:"speed_kmh"`
}

// NewUniform returns a UniformVelocity model, flooring speedKmh at MinSpeedKmh.
// Non-positive and NaN speeds degrade to the floor instead of failing.
func NewUniform(speedKmh float64) UniformVelocity {
	if !(speedKmh >= MinSpeedKmh) || math.IsInf(speedKmh, 1) {
		speedKmh = MinSpeedKmh
	}
	return UniformVelocity{SpeedKmh: speedKmh}
}

func (u UniformVelocity) Speed() float64 { return math.Max(u.SpeedKmh, MinSpeedKmh) }

func (u UniformVelocity) TravelMinutes(distKm float64) float64 {
	return math.Max(distKm, 0) / u.Speed() * 60
}

func (u UniformVelocity) DistanceAfter(elapsedMinutes float64) float64 {
	if !(elapsedMinutes > 0) {
		return 0
	}
	return u.Speed() * elapsedMinutes / 60
}
