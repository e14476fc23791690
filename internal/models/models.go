package models

// Phase is the coarse lifecycle of a game run.
type Phase string

const (
	PhaseSelection Phase = "SELECTION"
	PhaseGameplay  Phase = "GAMEPLAY"
	PhaseGameOver  Phase = "GAME_OVER"
)

// Character is the persona the player runs one game as. Immutable once
// a run starts.
type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Strength    int      `json:"strength"`
	Wits        int      `json:"wits"`
	Charm       int      `json:"charm"`
	Traits      []string `json:"traits"`
	Weakness    string   `json:"weakness"`
}

// RuleKind is the display taxonomy of a rule card.
type RuleKind string

const (
	RuleConstraint RuleKind = "CONSTRAINT"
	RuleBonus      RuleKind = "BONUS"
	RuleRisk       RuleKind = "RISK"
	RuleReality    RuleKind = "REALITY"
)

// ValidRuleKind reports whether k is one of the four known kinds.
func ValidRuleKind(k RuleKind) bool {
	switch k {
	case RuleConstraint, RuleBonus, RuleRisk, RuleReality:
		return true
	}
	return false
}

// RuleCard is a display-only world rule. Cards carry no executable effect;
// the narrative model interprets them. Inactive cards are retained but hidden.
type RuleCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Kind        RuleKind `json:"type"`
	Description string   `json:"description"`
	Active      bool     `json:"active"`
}

// RealityStats are the three bounded meters of the player's standing.
// Each stays within [0, 10] after every applied turn.
type RealityStats struct {
	Credibility int `json:"credibility"`
	Stress      int `json:"stress"`
	Connections int `json:"connections"`
}

// StatMin and StatMax bound every reality stat.
const (
	StatMin = 0
	StatMax = 10
)

// StoryChoice is one selectable action on a story node. Cost and Risk are
// presentation hints only.
type StoryChoice struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Consequence string `json:"consequence"`
	Cost        string `json:"cost,omitempty"`
	Risk        string `json:"risk,omitempty"`
}

// StoryNode is one narrative beat plus the choices it offers. An empty
// choice list means the branch offers no legal next action.
type StoryNode struct {
	Text    string        `json:"text"`
	Choices []StoryChoice `json:"choices"`
}

// StatUpdates carries signed deltas proposed by the model. Nil pointers mean
// "no change", which lets a zero delta be distinguished from an absent field.
type StatUpdates struct {
	Credibility *int `json:"credibility,omitempty"`
	Stress      *int `json:"stress,omitempty"`
	Connections *int `json:"connections,omitempty"`
}

// RuleUpdates carries rule deck changes proposed by the model.
type RuleUpdates struct {
	Add       []RuleCard `json:"add,omitempty"`
	RemoveIDs []string   `json:"removeIds,omitempty"`
}

// TurnResult is the sanitized outcome of one model call, ready to be folded
// into game state. It is transient and never persisted on its own. The
// embedded StoryNode keeps the text and choices at the top level, the same
// shape the wire schema uses.
type TurnResult struct {
	StoryNode
	StatUpdates StatUpdates `json:"statUpdates"`
	RuleUpdates RuleUpdates `json:"ruleUpdates"`
	IsGameOver  bool        `json:"isGameOver"`
	GameSummary string      `json:"gameSummary,omitempty"`
}

// GameState is the authoritative state of one run. It is created by
// StartNewGame, mutated only through the reducer, and discarded on reset.
type GameState struct {
	Phase        Phase        `json:"phase"`
	Character    *Character   `json:"character"`
	Rules        []RuleCard   `json:"rules"`
	StoryLog     []StoryNode  `json:"storyLog"`
	CurrentStory *StoryNode   `json:"currentStory"`
	RealityStats RealityStats `json:"realityStats"`
	TurnCount    int          `json:"turnCount"`
	MaxTurns     int          `json:"maxTurns"`
	FinalSummary string       `json:"finalSummary,omitempty"`
}

// ActiveRules returns the subset of the rule deck currently in force.
func (s *GameState) ActiveRules() []RuleCard {
	var active []RuleCard
	for _, r := range s.Rules {
		if r.Active {
			active = append(active, r)
		}
	}
	return active
}
