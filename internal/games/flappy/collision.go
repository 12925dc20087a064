package flappy

// Outcome is the result of evaluating one tick's positions. It is applied
// by the Game; evaluation itself never mutates the avatar or the stream.
type Outcome struct {
	Crossed  []int // Indices of obstacles that passed the score line this tick
	Points   int   // One per crossed pair, counted on its top member
	Collided bool  // At most one terminal event per tick
}

// Evaluate checks scoring and collisions for all live obstacles. An obstacle
// is crossed once its trailing edge is left of the avatar's centre line.
// Collision uses the reduced hitbox against the full obstacle rectangle.
func Evaluate(a Avatar, obstacles []Obstacle, hitboxFraction float64) Outcome {
	var out Outcome
	hitbox := a.Hitbox(hitboxFraction)

	for i, o := range obstacles {
		if !o.Passed && o.Right() < a.X {
			out.Crossed = append(out.Crossed, i)
			if o.Top {
				out.Points++
			}
		}
		if !out.Collided && hitbox.Overlaps(o.Rect()) {
			out.Collided = true
		}
	}
	return out
}
