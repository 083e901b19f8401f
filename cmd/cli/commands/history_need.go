package commands

import "github.com/spf13/cobra"

// HistoryNeed says how a command depends on the run history store
type HistoryNeed int

const (
	// HistoryNotNeeded commands never touch the store, so it is not opened
	HistoryNotNeeded HistoryNeed = iota
	// HistoryOptional commands use the store when it opens and carry on without it otherwise
	HistoryOptional
	// HistoryRequired commands fail when the store cannot be opened
	HistoryRequired
)

// historyAnnotation is the cobra annotation key carrying a command's HistoryNeed
const historyAnnotation = "history"

const (
	historyOptional = "optional"
	historyRequired = "required"
)

// HistoryNeedOf reports whether cmd, with its flags already parsed, needs the
// history store. distribute with --no-record does not.
func HistoryNeedOf(cmd *cobra.Command) HistoryNeed {
	if noRecord := cmd.Flags().Lookup("no-record"); noRecord != nil && noRecord.Value.String() == "true" {
		return HistoryNotNeeded
	}

	switch cmd.Annotations[historyAnnotation] {
	case historyRequired:
		return HistoryRequired
	case historyOptional:
		return HistoryOptional
	default:
		return HistoryNotNeeded
	}
}
