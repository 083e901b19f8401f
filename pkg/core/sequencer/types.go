package sequencer

import (
	"fmt"
	"sort"
	"time"
)

// Tier classifies a category by the cognitive load of its prompts
type Tier string

const (
	TierLight  Tier = "light"
	TierMedium Tier = "medium"
	TierHeavy  Tier = "heavy"
)

// Tiers lists every known tier in schedule order
var Tiers = []Tier{TierLight, TierMedium, TierHeavy}

// Valid reports whether t is one of the known tiers
func (t Tier) Valid() bool {
	switch t {
	case TierLight, TierMedium, TierHeavy:
		return true
	}
	return false
}

// Entry is a single prompt in the distributed sequence
type Entry struct {
	Category string
	Prompt   string
}

// Bucket holds the prompts of one category in their original order
type Bucket struct {
	Category string
	Prompts  []string
}

// FromMap converts a category → prompts mapping into buckets.
// Map iteration order is random, so buckets are sorted by category name to
// keep seeded runs reproducible.
func FromMap(categorized map[string][]string) []Bucket {
	buckets := make([]Bucket, 0, len(categorized))
	for category, prompts := range categorized {
		buckets = append(buckets, Bucket{Category: category, Prompts: prompts})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Category < buckets[j].Category
	})
	return buckets
}

// WeeklyPattern maps each weekday slot, Monday first, to the preferred tier
type WeeklyPattern [7]Tier

// DefaultWeeklyPattern starts the week light, goes deep mid-week and eases off
// towards the weekend.
var DefaultWeeklyPattern = WeeklyPattern{
	TierLight,  // Monday
	TierMedium, // Tuesday
	TierHeavy,  // Wednesday
	TierMedium, // Thursday
	TierLight,  // Friday
	TierLight,  // Saturday
	TierMedium, // Sunday
}

// TierAt returns the preferred tier for an output position
func (p WeeklyPattern) TierAt(position int) Tier {
	return p[position%7]
}

// Weekday returns the weekday an output position falls on. Position 0 is a Monday.
func Weekday(position int) time.Weekday {
	return time.Weekday((position%7 + 1) % 7)
}

// Classification is an immutable category → tier lookup table.
// The zero value classifies nothing.
type Classification struct {
	tiers map[string]Tier
}

// NewClassification builds a lookup table from per-tier category lists.
// A category listed under more than one tier is rejected.
func NewClassification(byTier map[Tier][]string) (Classification, error) {
	tiers := make(map[string]Tier)
	for _, tier := range Tiers {
		for _, category := range byTier[tier] {
			if existing, ok := tiers[category]; ok && existing != tier {
				return Classification{}, fmt.Errorf("category %q is listed under both %s and %s", category, existing, tier)
			}
			tiers[category] = tier
		}
	}
	for tier := range byTier {
		if !tier.Valid() {
			return Classification{}, fmt.Errorf("unknown tier %q", tier)
		}
	}
	return Classification{tiers: tiers}, nil
}

// TierOf returns the tier of a category, or false if it is not classified
func (c Classification) TierOf(category string) (Tier, bool) {
	tier, ok := c.tiers[category]
	return tier, ok
}

// Len returns the number of classified categories
func (c Classification) Len() int {
	return len(c.tiers)
}

// DefaultCooldownCap is the largest cooldown window used when enough categories exist
const DefaultCooldownCap = 5

// Config is the static configuration of a Sequencer
type Config struct {
	Classification Classification
	Pattern        WeeklyPattern

	// CooldownCap bounds the size of the recent-use set.
	// The effective threshold is min(CooldownCap, distinct categories).
	CooldownCap int
}

// DefaultTiers returns the built-in tier lists. Each call returns fresh slices.
func DefaultTiers() map[Tier][]string {
	return map[Tier][]string{
		TierLight: {
			"Predictions & Future",
			"Ideas Worth Reconsidering",
			"Ideas & Innovation",
			"Information & Knowledge",
			"Learning & Growth",
			"Communication & Persuasion",
		},
		TierMedium: {
			"Personal Philosophy",
			"Values & Priorities",
			"Decision-Making",
			"Work & Career",
			"Relationships & Community",
			"Money & Economics",
			"Success & Failure",
			"Comparative Analysis",
			"Resource Allocation",
			"Attention & Focus",
		},
		TierHeavy: {
			"Self-Analysis",
			"Changing Your Mind",
			"Society & Culture",
			"Technology & Progress",
			"Ethics & Morality",
			"Contrarian Thinking",
			"Systems Thinking",
			"Personal Experience",
			"Meta-Questions",
			"Historical Analysis",
			"Risk & Uncertainty",
			"Trade-offs & Paradoxes",
			"Power & Influence",
			"Conflict Resolution",
			"Health & Mortality",
			"Identity & Self",
			"Justice & Fairness",
		},
	}
}

// DefaultConfig returns the built-in tier table, weekly pattern and cooldown cap
func DefaultConfig() Config {
	// The built-in lists are disjoint, so this cannot fail
	classification, err := NewClassification(DefaultTiers())
	if err != nil {
		panic(err)
	}
	return Config{
		Classification: classification,
		Pattern:        DefaultWeeklyPattern,
		CooldownCap:    DefaultCooldownCap,
	}
}
