package domain

// Moods the client knows how to classify. The backend may send other values;
// those are displayed verbatim.
const (
	MoodHappy   = "HAPPY"
	MoodNeutral = "NEUTRAL"
	MoodSad     = "SAD"
	MoodAngry   = "ANGRY"
	MoodExcited = "EXCITED"
)

// Fixed stat deltas applied by the local prediction before the server
// confirms the real values.
const (
	feedHungerDrop = 15
	feedEnergyGain = 10
	trainEnergyDrop = 15
	trainHungerGain = 15
)

// clampLevel keeps a stat level inside [0,100].
func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Fed returns the predicted state after one feeding: hunger drops, energy
// rises, both clamped, and the mood is reclassified from the new levels.
func (p Pet) Fed() Pet {
	next := p
	next.HungerLevel = clampLevel(p.HungerLevel - feedHungerDrop)
	next.EnergyLevel = clampLevel(p.EnergyLevel + feedEnergyGain)
	next.Mood = ReclassifyMood(next.Mood, next.EnergyLevel, next.HungerLevel)
	return next
}

// Trained returns the predicted state after one training session: energy
// drops, hunger rises, both clamped, and the mood is reclassified.
func (p Pet) Trained() Pet {
	next := p
	next.EnergyLevel = clampLevel(p.EnergyLevel - trainEnergyDrop)
	next.HungerLevel = clampLevel(p.HungerLevel + trainHungerGain)
	next.Mood = ReclassifyMood(next.Mood, next.EnergyLevel, next.HungerLevel)
	return next
}

// ReclassifyMood maps the new stat levels onto a mood. Rules are checked in
// order; levels outside every threshold keep the current mood.
func ReclassifyMood(current string, energy, hunger int) string {
	switch {
	case energy >= 80:
		return MoodExcited
	case hunger <= 20:
		return MoodHappy
	case hunger >= 80:
		return MoodAngry
	case energy <= 20:
		return MoodSad
	default:
		return current
	}
}
