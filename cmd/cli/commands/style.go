package commands

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/jakechorley/prompt-distributor/internal/config"
	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
)

var (
	colorLight  = lipgloss.Color("#8ec07c")
	colorMedium = lipgloss.Color("#fabd2f")
	colorHeavy  = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)

	tierStyles = map[sequencer.Tier]lipgloss.Style{
		sequencer.TierLight:  lipgloss.NewStyle().Foreground(colorLight),
		sequencer.TierMedium: lipgloss.NewStyle().Foreground(colorMedium),
		sequencer.TierHeavy:  lipgloss.NewStyle().Foreground(colorHeavy).Bold(true),
	}
)

// styler colours output for terminals and leaves it plain for files and pipes
type styler struct {
	enabled        bool
	classification sequencer.Classification
}

func newStyler(w io.Writer, cfg *config.Config) *styler {
	s := &styler{enabled: isTerminal(w)}
	if s.enabled {
		// Unknown tiers only lose their colour
		if seqCfg, err := cfg.SequencerConfig(); err == nil {
			s.classification = seqCfg.Classification
		}
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *styler) header(text string) string {
	if !s.enabled {
		return text
	}
	return styleHeader.Render(text)
}

func (s *styler) dim(text string) string {
	if !s.enabled {
		return text
	}
	return styleDim.Render(text)
}

// category colours a category name by its tier
func (s *styler) category(name string) string {
	if !s.enabled {
		return name
	}
	tier, ok := s.classification.TierOf(name)
	if !ok {
		return name
	}
	return tierStyles[tier].Render(name)
}
