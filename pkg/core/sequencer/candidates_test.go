package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassification(t *testing.T) Classification {
	t.Helper()
	classification, err := NewClassification(map[Tier][]string{
		TierLight:  {"Ideas", "Learning"},
		TierMedium: {"Money", "Work"},
		TierHeavy:  {"Ethics"},
	})
	require.NoError(t, err)
	return classification
}

func TestSelectCandidates_TierLevel(t *testing.T) {
	classification := testClassification(t)
	recent := NewRecentSet()

	candidates, level := SelectCandidates(TierLight, classification, []string{"Money", "Ideas", "Ethics", "Learning"}, recent)

	assert.Equal(t, LevelTier, level)
	assert.Equal(t, []string{"Ideas", "Learning"}, candidates)
}

func TestSelectCandidates_TierLevelSkipsRecent(t *testing.T) {
	classification := testClassification(t)
	recent := NewRecentSet()
	recent.Add("Ideas")

	candidates, level := SelectCandidates(TierLight, classification, []string{"Money", "Ideas", "Learning"}, recent)

	assert.Equal(t, LevelTier, level)
	assert.Equal(t, []string{"Learning"}, candidates)
}

func TestSelectCandidates_FallsBackToAnyTier(t *testing.T) {
	classification := testClassification(t)
	recent := NewRecentSet()
	recent.Add("Ethics")

	// No heavy category left unused, so every unused category qualifies
	candidates, level := SelectCandidates(TierHeavy, classification, []string{"Money", "Ethics", "Ideas"}, recent)

	assert.Equal(t, LevelAnyTier, level)
	assert.Equal(t, []string{"Money", "Ideas"}, candidates)
}

func TestSelectCandidates_UnclassifiedOnlyReachableByFallback(t *testing.T) {
	classification := testClassification(t)
	recent := NewRecentSet()

	candidates, level := SelectCandidates(TierLight, classification, []string{"Unlisted", "Ideas"}, recent)
	assert.Equal(t, LevelTier, level)
	assert.Equal(t, []string{"Ideas"}, candidates)

	recent.Add("Ideas")
	candidates, level = SelectCandidates(TierLight, classification, []string{"Unlisted", "Ideas"}, recent)
	assert.Equal(t, LevelAnyTier, level)
	assert.Equal(t, []string{"Unlisted"}, candidates)
}

func TestSelectCandidates_CooldownReset(t *testing.T) {
	classification := testClassification(t)
	recent := NewRecentSet()
	recent.Add("Money")
	recent.Add("Ideas")

	candidates, level := SelectCandidates(TierLight, classification, []string{"Money", "Ideas"}, recent)

	assert.Equal(t, LevelCooldownReset, level)
	assert.Equal(t, []string{"Money", "Ideas"}, candidates)
	// The caller clears the set, SelectCandidates only reads it
	assert.Equal(t, 2, recent.Len())
}

func TestSelectCandidates_Exhausted(t *testing.T) {
	candidates, level := SelectCandidates(TierLight, testClassification(t), nil, NewRecentSet())

	assert.Equal(t, LevelExhausted, level)
	assert.Empty(t, candidates)
}

func TestSelectCandidates_ZeroClassification(t *testing.T) {
	candidates, level := SelectCandidates(TierMedium, Classification{}, []string{"A", "B"}, NewRecentSet())

	assert.Equal(t, LevelAnyTier, level)
	assert.Equal(t, []string{"A", "B"}, candidates)
}

func TestSelectCandidates_NilRecentSet(t *testing.T) {
	candidates, level := SelectCandidates(TierLight, testClassification(t), []string{"Money", "Ideas", "Learning"}, nil)

	assert.Equal(t, LevelTier, level)
	assert.Equal(t, []string{"Ideas", "Learning"}, candidates)

	var recent *RecentSet
	assert.False(t, recent.Contains("Ideas"))
	assert.Equal(t, 0, recent.Len())
}

func TestCooldownThreshold(t *testing.T) {
	tests := []struct {
		name       string
		cap        int
		categories int
		expected   int
	}{
		{"many categories uses cap", 5, 30, 5},
		{"exactly cap", 5, 5, 5},
		{"fewer categories than cap", 5, 3, 3},
		{"single category", 5, 1, 1},
		{"custom cap", 2, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CooldownThreshold(tt.cap, tt.categories))
		})
	}
}

func TestRecentSet(t *testing.T) {
	recent := NewRecentSet()
	assert.Equal(t, 0, recent.Len())
	assert.False(t, recent.Contains("A"))

	recent.Add("A")
	recent.Add("B")
	recent.Add("A")
	assert.Equal(t, 2, recent.Len())
	assert.True(t, recent.Contains("A"))

	recent.Clear()
	assert.Equal(t, 0, recent.Len())
	assert.False(t, recent.Contains("A"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "tier", LevelTier.String())
	assert.Equal(t, "any_tier", LevelAnyTier.String())
	assert.Equal(t, "cooldown_reset", LevelCooldownReset.String())
	assert.Equal(t, "exhausted", LevelExhausted.String())
	assert.Equal(t, "unknown", Level(42).String())
}
