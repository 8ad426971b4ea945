// Package kinematics defines the MotionModel interface that turns elapsed
// time into distance travelled, along with built-in implementations.
//
// Trains in the corridor run at uniform velocity over a travel window; there
// are no acceleration or braking curves. A new model only needs to implement
// MotionModel; the simulation never inspects the concrete type.
package kinematics

// MotionModel is the contract every kinematics implementation must satisfy.
// Distances are in kilometres, speeds in km/h and time in minutes.
type MotionModel interface {
	// Speed returns the effective cruising speed (km/h).
	Speed() float64

	// TravelMinutes returns how long it takes to cover distKm.
	TravelMinutes(distKm float64) float64

	// DistanceAfter returns the distance covered elapsedMinutes after departure.
	// Negative elapsed time yields zero.
	DistanceAfter(elapsedMinutes float64) float64
}
