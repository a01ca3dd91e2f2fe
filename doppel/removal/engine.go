package removal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/murreyjs/doppel/doppel/interfaces"
	"github.com/murreyjs/doppel/doppel/options"
	"github.com/murreyjs/doppel/doppel/ports"
	"github.com/murreyjs/doppel/doppel/types"

	"github.com/ZanzyTHEbar/assert-lib"
	"github.com/google/uuid"
)

// choiceMenu is shown once per decision round. Rejected answers re-prompt
// without re-printing the menu.
const choiceMenu = "\nOptions:\n" +
	"  Enter numbers (e.g., '2,3') to delete those files\n" +
	"  'k' to keep all (skip)\n" +
	"  'a' to auto-keep newest (delete others)\n" +
	"  'q' to quit"

// Engine walks a duplicate index group by group and deletes files
// according to the configured removal mode. Groups arrive sorted newest
// first, so index 0 is always the keeper for automatic resolution.
type Engine struct {
	index         *types.DuplicateIndex
	grouper       interfaces.ContentGrouper
	console       ports.Console
	AssertHandler *assert.AssertHandler
	opts          options.RemovalOptions
	stats         types.RemovalStats
	sessionID     uuid.UUID
}

// NewEngine creates a removal session over a scanned duplicate index.
// grouper may be nil when content analysis is disabled.
func NewEngine(index *types.DuplicateIndex, grouper interfaces.ContentGrouper, console ports.Console, assertHandler *assert.AssertHandler, opts options.RemovalOptions) *Engine {
	return &Engine{
		index:         index,
		grouper:       grouper,
		console:       console,
		AssertHandler: assertHandler,
		opts:          opts,
		sessionID:     uuid.New(),
	}
}

// Stats returns what the session has removed so far.
func (e *Engine) Stats() types.RemovalStats {
	return e.stats
}

// Run resolves every duplicate group and reports the session summary.
// Accumulated stats are returned even when ctx is cancelled partway
// through, so callers can still tell the user what was freed.
func (e *Engine) Run(ctx context.Context) (types.RemovalStats, error) {
	if e.index == nil || e.index.Len() == 0 {
		e.console.Output("No duplicates found - nothing to remove!")
		return e.stats, nil
	}

	slog.Info("starting removal session",
		"sessionID", e.sessionID.String(),
		"mode", string(e.opts.Mode),
		"groups", e.index.Len())

	proceed, err := e.confirmRun()
	if err != nil {
		return e.stats, err
	}
	if !proceed {
		e.console.Output("Cancelled.")
		return e.stats, nil
	}

	switch e.opts.Mode {
	case options.RemovalAutomatic:
		err = e.runAutomatic(ctx)
	default:
		err = e.runInteractive(ctx)
	}
	if err != nil {
		return e.stats, err
	}

	e.console.ShowSummary(e.stats)

	slog.Info("removal session finished",
		"sessionID", e.sessionID.String(),
		"filesRemoved", e.stats.FilesRemoved,
		"bytesFreed", e.stats.BytesFreed)

	return e.stats, nil
}

// confirmRun asks for the one run-level confirmation before any file is
// touched. Defaults to no.
func (e *Engine) confirmRun() (bool, error) {
	if e.opts.Mode == options.RemovalAutomatic {
		e.console.Output("\nAuto mode: Will keep newest file from each duplicate set.")
		return e.console.Confirm("Proceed with automatic removal?", false)
	}

	e.console.Outputf("\nReady to process %d sets of duplicates.", e.index.Len())
	return e.console.Confirm("Proceed with interactive removal?", false)
}

func (e *Engine) runAutomatic(ctx context.Context) error {
	total := e.index.Len()
	e.console.Outputf("\nProcessing %d sets of duplicates automatically...", total)
	e.console.Output(strings.Repeat("=", 60))

	for i, name := range e.index.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}

		records := e.index.Group(name)
		e.console.Outputf("\nProcessing: %s (%d/%d)", name, i+1, total)
		e.console.Outputf("Found %d copies - keeping newest, removing %d", len(records), len(records)-1)
		e.autoKeepNewest(records)
	}
	return nil
}

func (e *Engine) runInteractive(ctx context.Context) error {
	total := e.index.Len()

	for i, name := range e.index.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := e.resolveGroup(name, e.index.Group(name), i+1, total)
		if err != nil {
			return err
		}
		if quit {
			slog.Debug("user quit session", "sessionID", e.sessionID.String())
			return nil
		}
	}
	return nil
}

// resolveGroup presents one duplicate set and loops on the choice menu
// until the set is dealt with. The returned bool reports a quit, which
// ends the whole session rather than just this group.
func (e *Engine) resolveGroup(name string, records []*types.FileRecord, position, total int) (bool, error) {
	e.console.ShowGroup(name, records, position, total)
	if e.opts.CompareContent && e.grouper != nil {
		e.console.ShowContentGroups(e.grouper.GroupByContent(records), records)
	}

	for {
		choice, err := e.promptChoice(len(records))
		if err != nil {
			return false, err
		}

		switch choice.Kind {
		case ChoiceQuit:
			e.console.Outputf("Exiting. Removed %d files total.", e.stats.FilesRemoved)
			return true, nil
		case ChoiceKeepAll:
			e.console.Output("Keeping all files.")
			return false, nil
		case ChoiceAutoNewest:
			e.autoKeepNewest(records)
			return false, nil
		case ChoiceDeleteSet:
			targets := make([]*types.FileRecord, 0, len(choice.Indices))
			for _, idx := range choice.Indices {
				targets = append(targets, records[idx-1])
			}

			done, err := e.confirmAndDelete(targets)
			if err != nil {
				return false, err
			}
			if done {
				return false, nil
			}
			// Declined. Back to the menu for the same group.
		}
	}
}

// promptChoice prints the menu once, then reads answers until one parses.
func (e *Engine) promptChoice(max int) (Choice, error) {
	e.console.Output(choiceMenu)

	for {
		answer, err := e.console.Prompt("Choice")
		if err != nil {
			return Choice{}, fmt.Errorf("reading choice: %w", err)
		}

		choice, parseErr := ParseChoice(answer, max)
		if parseErr != nil {
			if errors.Is(parseErr, ErrNoIndices) {
				e.console.Output("No valid indices provided. Please try again.")
			} else {
				e.console.Outputf("Error: %v. Please try again.", parseErr)
			}
			continue
		}
		return choice, nil
	}
}

// confirmAndDelete previews the exact list slated for deletion and asks
// once more. Reports false when the user backs out.
func (e *Engine) confirmAndDelete(targets []*types.FileRecord) (bool, error) {
	e.console.ShowRemovalTargets(targets)

	confirmed, err := e.console.Confirm("Confirm deletion?", false)
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	if !confirmed {
		e.console.Output("Deletion cancelled.")
		return false, nil
	}

	deleted := 0
	for _, record := range targets {
		if e.deleteRecord(record) {
			deleted++
		}
	}
	if deleted > 0 {
		e.console.Outputf("Successfully deleted %d file(s).", deleted)
	}

	return true, nil
}

// autoKeepNewest keeps the first record and deletes the rest.
func (e *Engine) autoKeepNewest(records []*types.FileRecord) {
	if len(records) <= 1 {
		return
	}

	e.console.Outputf("Keeping newest: %s", records[0].Path)
	for _, record := range records[1:] {
		e.deleteRecord(record)
	}
}

// deleteRecord removes the file behind record and credits its scan-time
// size to the session stats. Failures are reported and skipped so the
// rest of the group still resolves.
func (e *Engine) deleteRecord(record *types.FileRecord) bool {
	if err := os.Remove(record.Path); err != nil {
		e.console.Error(fmt.Sprintf("Error deleting %s", record.Path), err)
		slog.Warn("delete failed",
			"sessionID", e.sessionID.String(),
			"path", record.Path,
			"error", err)
		return false
	}

	e.stats.RecordRemoval(record.Size)
	e.console.Outputf("Deleted: %s", record.Path)
	slog.Debug(fmt.Sprintf("Deleted file at %s", record.Path),
		"sessionID", e.sessionID.String(),
		"size", record.Size)

	return true
}

var _ interfaces.DuplicateRemover = (*Engine)(nil)
