package sequencer

import (
	"math/rand"
	"time"
)

// Sequencer reorders categorized prompts so that consecutive days avoid the
// same category and follow the weekly intensity pattern.
//
// A Sequencer holds immutable configuration and a random source. Runs do not
// share any other state, but *rand.Rand is not safe for concurrent use, so
// concurrent runs need separate Sequencers.
type Sequencer struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Sequencer. A nil rng is replaced by one seeded from the clock.
// A CooldownCap below 1 falls back to DefaultCooldownCap.
func New(cfg Config, rng *rand.Rand) *Sequencer {
	if cfg.CooldownCap < 1 {
		cfg.CooldownCap = DefaultCooldownCap
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sequencer{cfg: cfg, rng: rng}
}

// Step records how one output position was filled
type Step struct {
	Position int
	Weekday  time.Weekday
	Tier     Tier
	Level    Level
	Category string

	// ThresholdReset is set when the recent-use set filled up after this step and was cleared
	ThresholdReset bool
}

// Outcome is the result of a distribution run
type Outcome struct {
	// Entries is the distributed sequence
	Entries []Entry

	// Steps has one element per entry, in the same order
	Steps []Step

	// Categories is the number of distinct categories with at least one prompt
	Categories int

	// Threshold is the effective cooldown window size for this run
	Threshold int

	// LevelCounts counts how many positions were filled at each fallback level
	LevelCounts map[Level]int

	// ThresholdResets counts clears caused by the window filling up
	ThresholdResets int
}

// ForcedResets returns how many times the recent-use set had to be cleared
// because no unused category was left
func (o *Outcome) ForcedResets() int {
	return o.LevelCounts[LevelCooldownReset]
}

// Distribute returns every prompt exactly once, reordered
func (s *Sequencer) Distribute(buckets []Bucket) []Entry {
	return s.Run(buckets).Entries
}

// Run distributes the prompts and reports how each position was chosen
func (s *Sequencer) Run(buckets []Bucket) *Outcome {
	order, queues := mergeBuckets(buckets)

	total := 0
	for _, category := range order {
		total += len(queues[category])
	}

	outcome := &Outcome{
		Entries:     make([]Entry, 0, total),
		Steps:       make([]Step, 0, total),
		Categories:  len(order),
		Threshold:   CooldownThreshold(s.cfg.CooldownCap, len(order)),
		LevelCounts: make(map[Level]int),
	}

	cursors := make(map[string]int, len(order))
	recent := NewRecentSet()

	for position := 0; position < total; position++ {
		tier := s.cfg.Pattern.TierAt(position)

		candidates, level := SelectCandidates(tier, s.cfg.Classification, available(order, queues, cursors), recent)
		if level == LevelExhausted {
			break
		}
		if level == LevelCooldownReset {
			recent.Clear()
		}

		category := candidates[s.rng.Intn(len(candidates))]
		prompt := queues[category][cursors[category]]
		cursors[category]++

		outcome.Entries = append(outcome.Entries, Entry{Category: category, Prompt: prompt})
		outcome.LevelCounts[level]++

		recent.Add(category)
		thresholdReset := recent.Len() >= outcome.Threshold
		if thresholdReset {
			recent.Clear()
			outcome.ThresholdResets++
		}

		outcome.Steps = append(outcome.Steps, Step{
			Position:       position,
			Weekday:        Weekday(position),
			Tier:           tier,
			Level:          level,
			Category:       category,
			ThresholdReset: thresholdReset,
		})
	}

	return outcome
}

// mergeBuckets drops empty buckets and merges repeated categories, keeping the
// order in which categories first appear
func mergeBuckets(buckets []Bucket) ([]string, map[string][]string) {
	var order []string
	queues := make(map[string][]string)
	for _, bucket := range buckets {
		if len(bucket.Prompts) == 0 {
			continue
		}
		if _, seen := queues[bucket.Category]; !seen {
			order = append(order, bucket.Category)
		}
		queues[bucket.Category] = append(queues[bucket.Category], bucket.Prompts...)
	}
	return order, queues
}

// available returns the categories that still have prompts, in input order
func available(order []string, queues map[string][]string, cursors map[string]int) []string {
	var remaining []string
	for _, category := range order {
		if cursors[category] < len(queues[category]) {
			remaining = append(remaining, category)
		}
	}
	return remaining
}
