package domain

import "testing"

func TestValidType(t *testing.T) {
	tests := []struct {
		name  string
		typ   PetType
		valid bool
	}{
		{"valid vegeta", TypeVegeta, true},
		{"valid frezer", TypeFrezer, true},
		{"valid mr satan", TypeMrSatan, true},
		{"valid goku", TypeGoku, true},
		{"valid krillin", TypeKrillin, true},
		{"invalid empty", PetType(""), false},
		{"invalid unknown", PetType("PICCOLO"), false},
		{"invalid lowercase", PetType("goku"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidType(tt.typ); got != tt.valid {
				t.Errorf("ValidType(%q) = %v, want %v", tt.typ, got, tt.valid)
			}
		})
	}
}

func TestFed(t *testing.T) {
	p := Pet{Mood: MoodNeutral, EnergyLevel: 50, HungerLevel: 60}
	got := p.Fed()

	if got.HungerLevel != 45 {
		t.Errorf("HungerLevel = %d, want 45", got.HungerLevel)
	}
	if got.EnergyLevel != 60 {
		t.Errorf("EnergyLevel = %d, want 60", got.EnergyLevel)
	}
}

func TestFedClampsAtBoundaries(t *testing.T) {
	p := Pet{Mood: MoodNeutral, EnergyLevel: 95, HungerLevel: 5}
	got := p.Fed()

	if got.HungerLevel != 0 {
		t.Errorf("HungerLevel = %d, want 0 (clamped)", got.HungerLevel)
	}
	if got.EnergyLevel != 100 {
		t.Errorf("EnergyLevel = %d, want 100 (clamped)", got.EnergyLevel)
	}
}

func TestTrained(t *testing.T) {
	p := Pet{Mood: MoodNeutral, EnergyLevel: 50, HungerLevel: 40}
	got := p.Trained()

	if got.EnergyLevel != 35 {
		t.Errorf("EnergyLevel = %d, want 35", got.EnergyLevel)
	}
	if got.HungerLevel != 55 {
		t.Errorf("HungerLevel = %d, want 55", got.HungerLevel)
	}
}

func TestTrainedClampsAtBoundaries(t *testing.T) {
	p := Pet{Mood: MoodNeutral, EnergyLevel: 10, HungerLevel: 95}
	got := p.Trained()

	if got.EnergyLevel != 0 {
		t.Errorf("EnergyLevel = %d, want 0 (clamped)", got.EnergyLevel)
	}
	if got.HungerLevel != 100 {
		t.Errorf("HungerLevel = %d, want 100 (clamped)", got.HungerLevel)
	}
}

func TestFedDoesNotMutateReceiver(t *testing.T) {
	p := Pet{Mood: MoodNeutral, EnergyLevel: 50, HungerLevel: 60}
	_ = p.Fed()

	if p.EnergyLevel != 50 || p.HungerLevel != 60 {
		t.Errorf("receiver mutated: energy=%d hunger=%d", p.EnergyLevel, p.HungerLevel)
	}
}

func TestReclassifyMood(t *testing.T) {
	tests := []struct {
		name    string
		current string
		energy  int
		hunger  int
		want    string
	}{
		{"high energy wins", MoodNeutral, 80, 50, MoodExcited},
		{"high energy beats low hunger", MoodNeutral, 90, 10, MoodExcited},
		{"low hunger is happy", MoodNeutral, 50, 20, MoodHappy},
		{"high hunger is angry", MoodHappy, 50, 80, MoodAngry},
		{"low energy is sad", MoodHappy, 20, 50, MoodSad},
		{"mid levels keep current", MoodNeutral, 50, 50, MoodNeutral},
		{"mid levels keep unknown backend mood", "ZEN", 50, 50, "ZEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReclassifyMood(tt.current, tt.energy, tt.hunger); got != tt.want {
				t.Errorf("ReclassifyMood(%q, %d, %d) = %q, want %q",
					tt.current, tt.energy, tt.hunger, got, tt.want)
			}
		})
	}
}
