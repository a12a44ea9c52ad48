package platformer

// Integrate advances the actor by one tick under gravity.
// maxFall caps downward velocity; 0 disables the cap.
func Integrate(a *Actor, gravity, maxFall float64) {
	a.VelY += gravity
	if maxFall > 0 && a.VelY > maxFall {
		a.VelY = maxFall
	}
	a.Y += a.VelY
}

// Jump applies a jump impulse if the actor has jumps left.
// Returns false, changing nothing, when the jumps are used up.
func Jump(a *Actor, power float64, maxJumps int) bool {
	if a.JumpCount >= maxJumps {
		return false
	}
	a.VelY = power
	a.Grounded = false
	a.JumpCount++
	return true
}
