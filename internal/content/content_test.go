package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/persona-chronicles/internal/models"
)

func TestCharactersAreDistinct(t *testing.T) {
	chars := Characters()
	require.Len(t, chars, 8)

	ids := map[string]bool{}
	for _, c := range chars {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Weakness)
		assert.False(t, ids[c.ID], "duplicate character id %s", c.ID)
		ids[c.ID] = true
	}
}

func TestInitialRules(t *testing.T) {
	rules := InitialRules()
	require.Len(t, rules, 12)

	ids := map[string]bool{}
	active := 0
	for _, r := range rules {
		assert.False(t, ids[r.ID], "duplicate rule id %s", r.ID)
		ids[r.ID] = true
		assert.True(t, models.ValidRuleKind(r.Kind), "rule %s has unknown kind %s", r.ID, r.Kind)
		if r.Active {
			active++
		}
	}
	assert.Greater(t, active, 0)
	assert.Less(t, active, len(rules), "some rules start dormant")
}

func TestIntroNodeOffersChoices(t *testing.T) {
	intro := IntroNode()

	assert.NotEmpty(t, intro.Text)
	require.Len(t, intro.Choices, 3)
	for _, c := range intro.Choices {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Text)
	}
}

func TestDefaultStatsWithinBounds(t *testing.T) {
	stats := DefaultStats()

	assert.Equal(t, models.RealityStats{Credibility: 5, Stress: 2, Connections: 3}, stats)
	for _, v := range []int{stats.Credibility, stats.Stress, stats.Connections} {
		assert.GreaterOrEqual(t, v, models.StatMin)
		assert.LessOrEqual(t, v, models.StatMax)
	}
}
