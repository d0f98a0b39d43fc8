package combat

// movementMultipliers holds the per-state multipliers spec §4.7 says
// "Movement state selects accuracy, sway, ADS-time, and suppression
// multipliers from a fixed table."
type movementMultipliers struct {
	Accuracy    float32 // multiplies accuracy_proficiency before use
	Sway        float32 // multiplies aim-error standard deviation
	ADSTime     float32 // multiplies weapon.ADSMs
	Suppression float32 // multiplies suppression application
}

var movementTable = map[MovementState]movementMultipliers{
	Stationary: {Accuracy: 1.00, Sway: 1.00, ADSTime: 1.00, Suppression: 1.00},
	Crouching:  {Accuracy: 1.10, Sway: 0.80, ADSTime: 0.90, Suppression: 0.85},
	Walking:    {Accuracy: 0.90, Sway: 1.20, ADSTime: 1.10, Suppression: 1.05},
	Sprinting:  {Accuracy: 0.40, Sway: 2.50, ADSTime: 2.00, Suppression: 1.30},
	Sliding:    {Accuracy: 0.50, Sway: 2.00, ADSTime: 1.75, Suppression: 1.20},
}

func multipliersFor(state MovementState) movementMultipliers {
	if m, ok := movementTable[state]; ok {
		return m
	}
	return movementTable[Stationary]
}

// adsMultiplier returns the current movement state's ADS-time multiplier
// (spec §4.3, "weapon's ADS ms, multiplied by current movement state's ADS
// multiplier").
func adsMultiplier(state MovementState) float32 {
	return multipliersFor(state).ADSTime
}
