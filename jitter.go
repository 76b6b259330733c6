package ike

import (
	"math/rand"
	"time"
)

// from Kubernets

// Jitter returns a time.Duration between duration and duration + maxFactor * duration,
// to allow clients to avoid converging on periodic behavior.
func Jitter(duration time.Duration, maxFactor float64) time.Duration {
	if maxFactor <= 0 {
		return duration
	}
	return duration + time.Duration(rand.Float64()*maxFactor*float64(duration))
}

// backoff doubles interval for every retry already made.
func backoff(interval time.Duration, retries int, maxFactor float64) time.Duration {
	if retries > 16 {
		retries = 16
	}
	return Jitter(interval<<uint(retries), maxFactor)
}
