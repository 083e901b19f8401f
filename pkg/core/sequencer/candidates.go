package sequencer

// Level identifies which fallback produced a candidate set
type Level int

const (
	// LevelTier selects from unused categories in the day's tier
	LevelTier Level = iota

	// LevelAnyTier selects from unused categories regardless of tier
	LevelAnyTier

	// LevelCooldownReset selects from every category with prompts left.
	// The caller must clear the recent-use set when this level is returned.
	LevelCooldownReset

	// LevelExhausted means no category has prompts left
	LevelExhausted
)

func (l Level) String() string {
	switch l {
	case LevelTier:
		return "tier"
	case LevelAnyTier:
		return "any_tier"
	case LevelCooldownReset:
		return "cooldown_reset"
	case LevelExhausted:
		return "exhausted"
	}
	return "unknown"
}

// RecentSet tracks the categories used within the current cooldown window
type RecentSet struct {
	members map[string]struct{}
}

// NewRecentSet creates an empty RecentSet
func NewRecentSet() *RecentSet {
	return &RecentSet{members: make(map[string]struct{})}
}

// Contains returns true if the category was used in the current window
func (r *RecentSet) Contains(category string) bool {
	if r == nil {
		return false
	}
	_, ok := r.members[category]
	return ok
}

// Add marks a category as used
func (r *RecentSet) Add(category string) {
	r.members[category] = struct{}{}
}

// Len returns the number of categories in the current window
func (r *RecentSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.members)
}

// Clear starts a new cooldown window
func (r *RecentSet) Clear() {
	clear(r.members)
}

// CooldownThreshold returns the recent-use set size at which the set is cleared:
// min(cooldownCap, distinctCategories). With fewer categories than the cap the
// window shrinks so a category is never locked out for longer than one pass
// over every category.
func CooldownThreshold(cooldownCap, distinctCategories int) int {
	return min(cooldownCap, distinctCategories)
}

// SelectCandidates returns the categories eligible for the next position and
// the fallback level that produced them. available lists the categories that
// still have prompts, in input order; recent is only read and a nil recent
// counts as empty.
//
// Levels are tried in a fixed order:
//  1. categories in tier that are not recent
//  2. any category that is not recent
//  3. any category (the recent-use set is to be cleared)
//
// Categories missing from the classification never qualify for level 1.
func SelectCandidates(tier Tier, classification Classification, available []string, recent *RecentSet) ([]string, Level) {
	if len(available) == 0 {
		return nil, LevelExhausted
	}

	var inTier, unused []string
	for _, category := range available {
		if recent.Contains(category) {
			continue
		}
		unused = append(unused, category)
		if categoryTier, ok := classification.TierOf(category); ok && categoryTier == tier {
			inTier = append(inTier, category)
		}
	}

	if len(inTier) > 0 {
		return inTier, LevelTier
	}
	if len(unused) > 0 {
		return unused, LevelAnyTier
	}

	candidates := make([]string, len(available))
	copy(candidates, available)
	return candidates, LevelCooldownReset
}
