package main

import "math/rand"

// randIntn is the game randomness source, swappable in tests.
var randIntn = rand.Intn

func setRandIntn(fn func(int) int) (restore func()) {
	prev := randIntn
	randIntn = fn
	return func() { randIntn = prev }
}
