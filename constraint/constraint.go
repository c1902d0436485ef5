package constraint

// Constraint is a positional correction applied once per tick.
type Constraint interface {
	SolvePosition()
}
