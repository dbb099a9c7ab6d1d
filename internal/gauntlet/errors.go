package gauntlet

import "errors"

// Engine error kinds. Operations wrap these with detail via fmt.Errorf
// so callers match them with errors.Is.
var (
	// ErrAlbumNotFound is returned when a referenced album id is absent.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrDuplicateAlbum is returned when an album with the same external
	// key is already ranked.
	ErrDuplicateAlbum = errors.New("album already ranked")

	// ErrAlreadyBattled is returned when the pair has a recorded battle.
	ErrAlreadyBattled = errors.New("pair already battled")

	// ErrInvalidWinner is returned when the winner id is neither of the
	// battling albums and not the draw sentinel.
	ErrInvalidWinner = errors.New("winner must be one of the battling albums or empty for a draw")

	// ErrNoPairsRemaining signals a complete round robin: every pair has
	// a recorded battle.
	ErrNoPairsRemaining = errors.New("no unplayed pairs remain")

	// ErrPersistence wraps store write failures. Nothing is mutated in
	// the store when this is returned.
	ErrPersistence = errors.New("failed to persist collection")
)
