package game

import "time"

// stepper turns variable frame times into a whole number of fixed ticks.
type stepper struct {
	interval time.Duration
	maxSteps int
	acc      time.Duration
}

func newStepper(interval time.Duration, maxSteps int) *stepper {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &stepper{interval: interval, maxSteps: maxSteps}
}

// Advance adds elapsed time and returns how many ticks are due. After a
// long stall at most maxSteps ticks run and the backlog is dropped.
func (s *stepper) Advance(elapsed time.Duration) int {
	s.acc += elapsed
	n := int(s.acc / s.interval)
	s.acc -= time.Duration(n) * s.interval
	if n > s.maxSteps {
		n = s.maxSteps
		s.acc = 0
	}
	return n
}
