package track

import (
	"math"

	"github.com/npillmayer/coaster"
)

// Rider drives a simulation along a track: a car accelerating downhill and
// slowing down uphill, restarting from the beginning when it leaves the
// track.
type Rider struct {
	track *Track
	ride  RideConfig
	d     float64 // travelled fraction of the track length
	speed float64
}

// NewRider puts a rider at the start of tr.
func NewRider(tr *Track) *Rider {
	r := &Rider{track: tr, ride: tr.config.Ride}
	r.Reset()
	return r
}

// Reset moves the rider back to the start at minimum speed.
func (r *Rider) Reset() {
	r.d = 0
	r.speed = r.ride.MinSpeed
	if n := r.track.TrackPieceCount(); n > 0 {
		r.speed /= float64(n)
	}
	r.track.Reset()
	r.track.UpdateSimulation(0)
}

// Step advances the rider by time dt.
func (r *Rider) Step(dt float64) {
	n := r.track.TrackPieceCount()
	if n == 0 {
		return
	}
	down := coaster.V(0, -1, 0)
	accel := r.track.Forward().Dot(down) * dt
	accel = math.Max(-r.ride.MaxDeceleration, math.Min(r.ride.MaxAcceleration, accel))
	r.speed += accel
	lo, hi := r.ride.MinSpeed/float64(n), r.ride.TopSpeed/float64(n)
	r.speed = math.Max(lo, math.Min(hi, r.speed))
	r.d += r.speed * dt
	if r.d > 1 || r.d < 0 {
		tracer().Debugf("rider completed a lap")
		r.d = 0
		r.track.Reset()
	}
	r.track.UpdateSimulation(r.d)
}

// Progress returns the travelled fraction of the track length.
func (r *Rider) Progress() float64 {
	return r.d
}

// Speed returns the current speed in track fractions per time unit.
func (r *Rider) Speed() float64 {
	return r.speed
}

// Frame returns the rider's position and orientation.
func (r *Rider) Frame() Frame {
	return r.track.Frame()
}
