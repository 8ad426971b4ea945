package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUniformFloorsSpeed(t *testing.T) {
	for _, v := range []float64{0, -30, 0.2, math.NaN(), math.Inf(1)} {
		assert.Equal(t, MinSpeedKmh, NewUniform(v).Speed(), "speed %v", v)
	}
	assert.Equal(t, 80.0, NewUniform(80).Speed())
	assert.Equal(t, MinSpeedKmh, UniformVelocity{}.Speed())
}

func TestUniformVelocity(t *testing.T) {
	var m MotionModel = NewUniform(80)
	assert.Equal(t, 180.0, m.TravelMinutes(240))
	assert.Equal(t, 0.0, m.TravelMinutes(-5))
	assert.Equal(t, 80.0, m.DistanceAfter(60))
	assert.Equal(t, 40.0, m.DistanceAfter(30))
	assert.Equal(t, 0.0, m.DistanceAfter(-10))
	assert.Equal(t, 0.0, m.DistanceAfter(math.NaN()))
}
