// Package content holds the fixed world data a new run starts from:
// the selectable characters, the initial rule deck, and the opening scene.
package content

import "github.com/tatianab/persona-chronicles/internal/models"

// DefaultMaxTurns is the preset script length of a run.
const DefaultMaxTurns = 10

// DefaultStats is where every run begins.
func DefaultStats() models.RealityStats {
	return models.RealityStats{Credibility: 5, Stress: 2, Connections: 3}
}

// Characters returns the selectable personas.
func Characters() []models.Character {
	return []models.Character{
		{
			ID:          "c1",
			Name:        "Senshi",
			Title:       "Knight of Izganda",
			Description: "A dwarven chef-knight who believes the dungeon's ecosystem is a pantry waiting to be harvested. \"Only by eating it can you understand it.\"",
			Strength:    8, Wits: 7, Charm: 5,
			Traits:   []string{"Monster Cuisine", "Adamantine Pot", "Ecological Balance"},
			Weakness: "A craving for forbidden ingredients",
		},
		{
			ID:          "c2",
			Name:        "Aela",
			Title:       "Clockwork Knight",
			Description: "A noble soul imprisoned in a decaying mechanical shell. She seeks the Eternal Gear, only to wind the spring of her undying heart.",
			Strength:    9, Wits: 5, Charm: 3,
			Traits:   []string{"Pain Immunity", "Steam Burst", "Precision Strike"},
			Weakness: "Rust and maintenance",
		},
		{
			ID:          "c3",
			Name:        "Vesper",
			Title:       "Whispering Thief",
			Description: "A street urchin who trades in memories instead of coin. He can hear the secrets locked inside old stone.",
			Strength:    3, Wits: 9, Charm: 8,
			Traits:   []string{"Psychometry", "Shadowstep", "Information Broker"},
			Weakness: "Memory overload",
		},
		{
			ID:          "c4",
			Name:        "Morrigan",
			Title:       "Marsh Witch",
			Description: "Keeper of the old ways in a world of iron. She brews fate in a cauldron and speaks with the drowned.",
			Strength:    4, Wits: 8, Charm: 6,
			Traits:   []string{"Curse Weaving", "Familiar", "Marsh Walker"},
			Weakness: "Allergy to iron",
		},
		{
			ID:          "c5",
			Name:        "Kael",
			Title:       "Fallen Paladin",
			Description: "Once a beacon of light, now a sellsword for the highest bidder. He knows \"justice\" is just the story the victors tell.",
			Strength:    9, Wits: 4, Charm: 6,
			Traits:   []string{"Oathbreaker", "Heavy Armor", "Intimidating Gaze"},
			Weakness: "Nightmares of guilt",
		},
		{
			ID:          "c6",
			Name:        "Lyra",
			Title:       "Songweaver",
			Description: "A bard whose songs can briefly reshape reality. She is fleeing a silence that threatens to swallow the world.",
			Strength:    3, Wits: 7, Charm: 10,
			Traits:   []string{"Resonance", "Misdirection", "Lorekeeper"},
			Weakness: "Silence",
		},
		{
			ID:          "c7",
			Name:        "Thorn",
			Title:       "Beastlord",
			Description: "Raised by wolves, he trusts beasts over people. The city is a stone jungle to be read with a predator's instincts.",
			Strength:    7, Wits: 8, Charm: 2,
			Traits:   []string{"Animal Kinship", "Tracking", "Survivalist"},
			Weakness: "Hopeless in society",
		},
		{
			ID:          "c8",
			Name:        "Isolde",
			Title:       "Medium",
			Description: "She walks the border of the living and the dead. Spirits gather to her light, seeking justice or revenge.",
			Strength:    2, Wits: 10, Charm: 4,
			Traits:   []string{"Spirit Sight", "Chilling Touch", "Necromancy"},
			Weakness: "Risk of possession",
		},
	}
}

// InitialRules returns the starting rule deck. Inactive cards are dormant
// rules the narrative may wake later.
func InitialRules() []models.RuleCard {
	return []models.RuleCard{
		{
			ID: "r1", Title: "Law of Equivalent Exchange", Kind: models.RuleConstraint,
			Description: "Magic consumes physical resources (health or items). You cannot create something from nothing.",
			Active:      true,
		},
		{
			ID: "r2", Title: "Social Credibility", Kind: models.RuleReality,
			Description: "Low credibility (<3) turns NPCs hostile. High stress (>8) triggers hallucination events.",
			Active:      true,
		},
		{
			ID: "r3", Title: "The Rot", Kind: models.RuleRisk,
			Description: "The world is decaying. Resting restores health but raises the Corruption counter.",
			Active:      true,
		},
		{
			ID: "r4", Title: "Murphy's Law", Kind: models.RuleRisk,
			Description: "If a plan depends on more than two steps, the third step will fail.",
			Active:      true,
		},
		{
			ID: "r5", Title: "Protagonist's Halo", Kind: models.RuleBonus,
			Description: "Once per run, survive a killing blow with 1 health remaining.",
			Active:      true,
		},
		{
			ID: "r6", Title: "Gossip Network", Kind: models.RuleReality,
			Description: "News travels faster than you do. Your reputation reaches every town before you arrive.",
			Active:      false,
		},
		{
			ID: "r7", Title: "Blood Debt", Kind: models.RuleConstraint,
			Description: "You owe the guild a life. They will collect when you least expect it.",
			Active:      false,
		},
		{
			ID: "r8", Title: "Iron Physics", Kind: models.RuleConstraint,
			Description: "Fall damage is real. Armor lowers agility.",
			Active:      true,
		},
		{
			ID: "r9", Title: "Arcane Resonance", Kind: models.RuleBonus,
			Description: "Near magical anomalies, spell power doubles, with a 50% wild-magic surge chance.",
			Active:      false,
		},
		{
			ID: "r10", Title: "Merchant's Greed", Kind: models.RuleReality,
			Description: "Prices rise 10% for every day you stay in the city.",
			Active:      false,
		},
		{
			ID: "r11", Title: "Night Terrors", Kind: models.RuleRisk,
			Description: "The dark is not empty. Acting at night requires a sanity check.",
			Active:      true,
		},
		{
			ID: "r12", Title: "Divine Intervention", Kind: models.RuleBonus,
			Description: "A catastrophic failure may summon a god's mercy, or its amusement.",
			Active:      false,
		},
	}
}

// IntroNode is the fixed opening scene every run is seeded with.
func IntroNode() models.StoryNode {
	return models.StoryNode{
		Text: "The grand gates of Oakhaven rise before you, rot climbing the iron bars like ivy. " +
			"You have come for the Ember Heart, an artifact said to reverse the world's decay. " +
			"But Oakhaven is a city of rules — written and unwritten. The guards eye your gear " +
			"with suspicion, and the rain carries a faint smell of sulfur. To enter, you must " +
			"pay the toll. It does not have to be in coin.",
		Choices: []models.StoryChoice{
			{
				ID:          "opt1",
				Text:        "Offer a memory of home as payment.",
				Consequence: "Sacrifice personal history for entry.",
				Cost:        "A memory",
				Risk:        "Loss of identity",
			},
			{
				ID:          "opt2",
				Text:        "Intimidate the guards with your weapon.",
				Consequence: "Establish menace, raise the alert level.",
				Risk:        "Social hostility",
			},
			{
				ID:          "opt3",
				Text:        "Slip in through the sewers.",
				Consequence: "Disgusting but discreet.",
				Cost:        "Dignity",
				Risk:        "Disease",
			},
		},
	}
}
