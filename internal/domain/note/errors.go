package note

import "errors"

var (
	// ErrEmptyContent indicates a quick-add with no content.
	ErrEmptyContent = errors.New("note content is required")
	// ErrUnknownStage indicates a stage outside the pipeline.
	ErrUnknownStage = errors.New("unknown pipeline stage")
	// ErrStageNotReached indicates a note operation against a stage the
	// customer has not yet reached.
	ErrStageNotReached = errors.New("customer has not reached this stage")
	// ErrNoteNotFound indicates the note doesn't exist in any stage sheet.
	ErrNoteNotFound = errors.New("note not found")
)
