package entity

// BadgeDefinition describes one badge as data: identity, display fields,
// the unlock predicate and the counter backing its progress bar.
//
// XPReward is display-only. Unlocking a badge never feeds the reward
// back into the XP balance; XP increments always come from the action
// that triggered the check.
type BadgeDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPReward    int    `json:"xpReward"`
	Threshold   int    `json:"threshold"`

	// Condition is evaluated against the full post-mutation record.
	Condition func(d *UserGameData) bool `json:"-"`

	// Current returns the counter the threshold applies to. Nil for
	// badges with no meaningful progress bar.
	Current func(d *UserGameData) int `json:"-"`

	// Manual badges are skipped by the generic unlock pass. early_bird
	// depends on the wall-clock hour of the login event, not on stored
	// data, so the streak update handles it directly.
	Manual bool `json:"-"`
}

// BadgeCatalog is the full badge table. New badges are additive entries
// here, not new control flow.
var BadgeCatalog = []BadgeDefinition{
	{
		ID: "first_vibe", Name: "Primeira Vibe", Icon: "sparkles",
		Description: "Avalie a vibe de um evento", XPReward: 20, Threshold: 1,
		Condition: func(d *UserGameData) bool { return d.VibesRated >= 1 },
		Current:   func(d *UserGameData) int { return d.VibesRated },
	},
	{
		ID: "first_event", Name: "Estreia", Icon: "ticket",
		Description: "Participe do seu primeiro evento", XPReward: 30, Threshold: 1,
		Condition: func(d *UserGameData) bool { return d.EventsAttended >= 1 },
		Current:   func(d *UserGameData) int { return d.EventsAttended },
	},
	{
		ID: "vibe_master", Name: "Mestre das Vibes", Icon: "star",
		Description: "Avalie 10 vibes", XPReward: 50, Threshold: 10,
		Condition: func(d *UserGameData) bool { return d.VibesRated >= 10 },
		Current:   func(d *UserGameData) int { return d.VibesRated },
	},
	{
		ID: "vibe_addict", Name: "Viciado em Vibes", Icon: "fire",
		Description: "Avalie 50 vibes", XPReward: 150, Threshold: 50,
		Condition: func(d *UserGameData) bool { return d.VibesRated >= 50 },
		Current:   func(d *UserGameData) int { return d.VibesRated },
	},
	{
		ID: "streak_master", Name: "Sequencia de Fogo", Icon: "flame",
		Description: "Faca login por 7 dias seguidos", XPReward: 70, Threshold: 7,
		Condition: func(d *UserGameData) bool { return d.Streak >= 7 },
		Current:   func(d *UserGameData) int { return d.Streak },
	},
	{
		ID: "streak_legend", Name: "Lenda da Sequencia", Icon: "crown",
		Description: "Faca login por 30 dias seguidos", XPReward: 300, Threshold: 30,
		Condition: func(d *UserGameData) bool { return d.Streak >= 30 },
		Current:   func(d *UserGameData) int { return d.Streak },
	},
	{
		ID: "explorer", Name: "Explorador", Icon: "compass",
		Description: "Participe de 5 eventos", XPReward: 80, Threshold: 5,
		Condition: func(d *UserGameData) bool { return d.EventsAttended >= 5 },
		Current:   func(d *UserGameData) int { return d.EventsAttended },
	},
	{
		ID: "event_enthusiast", Name: "Entusiasta de Eventos", Icon: "party",
		Description: "Participe de 20 eventos", XPReward: 200, Threshold: 20,
		Condition: func(d *UserGameData) bool { return d.EventsAttended >= 20 },
		Current:   func(d *UserGameData) int { return d.EventsAttended },
	},
	{
		ID: "high_roller", Name: "So Vibe Boa", Icon: "thumbs-up",
		Description: "De 20 notas 4 ou 5", XPReward: 120, Threshold: 20,
		Condition: func(d *UserGameData) bool { return d.HighVibeCount(4) >= 20 },
		Current:   func(d *UserGameData) int { return d.HighVibeCount(4) },
	},
	{
		ID: "critic", Name: "Critico", Icon: "pen",
		Description: "Use as 5 notas diferentes", XPReward: 60, Threshold: 5,
		Condition: func(d *UserGameData) bool { return d.DistinctNotaCount() >= 5 },
		Current:   func(d *UserGameData) int { return d.DistinctNotaCount() },
	},
	{
		ID: "early_bird", Name: "Madrugador", Icon: "sunrise",
		Description: "Entre no app antes das 8h", XPReward: 40, Threshold: 1,
		Manual:      true,
	},
	{
		ID: "social_butterfly", Name: "Borboleta Social", Icon: "butterfly",
		Description: "Compartilhe um evento", XPReward: 50, Threshold: 1,
		// Sharing is not tracked yet. The badge stays in the catalog so
		// the UI can show it as locked.
		Condition: func(d *UserGameData) bool { return false },
		Manual:    true,
	},
}

// BadgeByID looks a badge up in the catalog.
func BadgeByID(id string) (BadgeDefinition, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDefinition{}, false
}
