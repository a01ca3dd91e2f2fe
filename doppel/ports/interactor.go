package ports

import (
	"github.com/murreyjs/doppel/doppel/types"
)

// Interactor is the blocking terminal interaction surface. Prompt and
// Confirm suspend until the user answers; neither has a timeout.
type Interactor interface {
	Output(message string)
	Outputf(format string, args ...interface{})
	Prompt(message string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Success(message string)
	Info(message string)
	Warning(message string)
	Error(message string, err error)
}

// Presenter renders duplicate data for the user. Byte-size formatting, path
// truncation, and styling live behind this interface, not in the callers.
type Presenter interface {
	// ShowGroup lists one duplicate set with its position in the session.
	ShowGroup(name string, records []*types.FileRecord, position, total int)
	// ShowContentGroups reports whether a set's members actually share
	// content. records is the displayed listing the indices refer to.
	ShowContentGroups(groups *types.ContentGroups, records []*types.FileRecord)
	// ShowRemovalTargets previews the files slated for deletion and the
	// total bytes they would free.
	ShowRemovalTargets(records []*types.FileRecord)
	ShowSummary(stats types.RemovalStats)
}

// Console combines interaction and presentation for the removal workflow
type Console interface {
	Interactor
	Presenter
}
