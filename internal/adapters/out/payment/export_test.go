package payment

// WithRoll replaces the random source of the failure simulation.
func (g *SimulatedGateway) WithRoll(roll func() float64) *SimulatedGateway {
	g.roll = roll
	return g
}
