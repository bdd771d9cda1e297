package motion

// Trigger reports the character entering a trigger volume. The host calls it between
// ticks.
func (c *Controller) Trigger(kind TriggerKind) {
	switch kind {
	case TriggerHazard:
		c.debugf("motion: hazard at t=%.3f", c.now)
		c.emit(Signal{Kind: SignalDeath})
	case TriggerDashTarget:
		c.dash.ToTarget = false
	case TriggerDashRefill:
		c.dash.HasDashed = false
	}
}

// Collide reports a solid contact from the host physics step.
func (c *Controller) Collide(col Collision) {
	if col.Hazard {
		c.emit(Signal{Kind: SignalDeath})
	}
	if col.RelativeSpeed > c.cfg.MinImpactForce && c.contact.Grounded {
		c.emit(Signal{Kind: SignalImpact, Speed: col.RelativeSpeed})
	}
}
