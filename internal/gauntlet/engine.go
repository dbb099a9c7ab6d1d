package gauntlet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Store is the persistence boundary the engine consumes. The collection
// is the unit of persistence: Load returns every stored album record and
// Save rewrites them all (last write wins). Implementations live in
// internal/store.
type Store interface {
	Load(ctx context.Context) ([]Album, error)
	Save(ctx context.Context, albums []Album) error
}

// Engine owns the ranked album collection. Every operation is a complete
// read-modify-write cycle: load the whole collection, normalize it,
// mutate in memory, and persist it back. The engine assumes a single
// logical writer; callers running it behind concurrent transports must
// serialize their calls.
type Engine struct {
	store  Store
	logger *slog.Logger
	newID  func() string
}

// NewEngine creates an engine over the given store.
func NewEngine(store Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// loadCollection reads and normalizes the stored collection. Read
// failures and corrupt payloads degrade to an empty collection instead of
// propagating: the next successful write rebuilds the store.
func (e *Engine) loadCollection(ctx context.Context) []Album {
	albums, err := e.store.Load(ctx)
	if err != nil {
		e.logger.Warn("collection load failed, starting from empty", "error", err)
		albums = nil
	}
	return Normalize(albums)
}

// saveCollection persists the full collection, wrapping any failure in
// ErrPersistence.
func (e *Engine) saveCollection(ctx context.Context, albums []Album) error {
	if err := e.store.Save(ctx, albums); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// List returns the normalized collection in rank order.
func (e *Engine) List(ctx context.Context) ([]Album, error) {
	return e.loadCollection(ctx), nil
}

// Add appends a new album built from a catalog search result. The album
// starts with zero score, no opponents, and the last rank. Fails with
// ErrDuplicateAlbum when the external key is already ranked.
func (e *Engine) Add(ctx context.Context, in AlbumInput) (*Album, error) {
	albums := e.loadCollection(ctx)

	for i := range albums {
		if albums[i].ExternalKey == in.ExternalKey {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAlbum, in.Title)
		}
	}

	album := Album{
		ID:          e.newID(),
		ExternalKey: in.ExternalKey,
		Title:       in.Title,
		Artist:      in.Artist,
		Year:        in.Year,
		ArtworkURL:  in.ArtworkURL,
		Score:       0,
		Rank:        len(albums) + 1,
		Opponents:   []string{},
	}
	albums = append(albums, album)

	if err := e.saveCollection(ctx, albums); err != nil {
		return nil, err
	}

	e.logger.Info("album added", "id", album.ID, "title", album.Title, "rank", album.Rank)
	created := album.clone()
	return &created, nil
}

// Remove deletes an album by id and compacts the remaining ranks back to
// a dense 1..N-1 sequence. Stale references to the removed id in other
// albums' opponent sets are left in place: lookups only ever consult
// existing ids, so they are harmless.
func (e *Engine) Remove(ctx context.Context, id string) error {
	albums := e.loadCollection(ctx)

	idx := indexByID(albums, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrAlbumNotFound, id)
	}

	removedRank := albums[idx].Rank
	albums = append(albums[:idx], albums[idx+1:]...)
	for i := range albums {
		if albums[i].Rank > removedRank {
			albums[i].Rank--
		}
	}

	if err := e.saveCollection(ctx, albums); err != nil {
		return err
	}

	e.logger.Info("album removed", "id", id)
	return nil
}

// Reorder moves an album to the position currently held by the target
// album, shifting everything in between by one, exactly like a
// single-element list splice. This is the one operation allowed to
// decouple rank from score: the manual order is persisted as the new
// ground truth and holds until the next battle re-sorts by score.
// Returns the refreshed collection.
func (e *Engine) Reorder(ctx context.Context, movedID, targetID string) ([]Album, error) {
	albums := e.loadCollection(ctx)

	movedIdx := indexByID(albums, movedID)
	if movedIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlbumNotFound, movedID)
	}
	targetIdx := indexByID(albums, targetID)
	if targetIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlbumNotFound, targetID)
	}

	oldRank := albums[movedIdx].Rank
	newRank := albums[targetIdx].Rank

	switch {
	case oldRank < newRank:
		for i := range albums {
			if albums[i].Rank > oldRank && albums[i].Rank <= newRank {
				albums[i].Rank--
			}
		}
	case oldRank > newRank:
		for i := range albums {
			if albums[i].Rank >= newRank && albums[i].Rank < oldRank {
				albums[i].Rank++
			}
		}
	default:
		return albums, nil
	}
	albums[movedIdx].Rank = newRank

	// Persist the slice in the new rank order so the manual ordering is
	// what the next load's stable sort sees as input order.
	sortByRank(albums)

	if err := e.saveCollection(ctx, albums); err != nil {
		return nil, err
	}

	e.logger.Info("album reordered", "id", movedID, "from_rank", oldRank, "to_rank", newRank)
	return albums, nil
}

// RecordBattle records a pairwise outcome between two albums. An empty
// winner id is the draw sentinel. The pairing is recorded symmetrically
// in both opponent sets, scores are bumped (draw: +1 each, win: +3 to the
// winner), and the whole collection is re-sorted by score and re-ranked,
// discarding any manual ordering.
func (e *Engine) RecordBattle(ctx context.Context, aID, bID, winnerID string) (*BattleResult, error) {
	if aID == bID {
		return nil, fmt.Errorf("%w: an album cannot battle itself", ErrInvalidWinner)
	}
	if winnerID != "" && winnerID != aID && winnerID != bID {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWinner, winnerID)
	}

	albums := e.loadCollection(ctx)

	aIdx := indexByID(albums, aID)
	if aIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlbumNotFound, aID)
	}
	bIdx := indexByID(albums, bID)
	if bIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlbumNotFound, bID)
	}

	a, b := &albums[aIdx], &albums[bIdx]
	if a.HasOpponent(bID) || b.HasOpponent(aID) {
		return nil, fmt.Errorf("%w: %q vs %q", ErrAlreadyBattled, a.Title, b.Title)
	}

	a.addOpponent(bID)
	b.addOpponent(aID)

	result := &BattleResult{}
	switch winnerID {
	case "":
		a.Score += DrawPoints
		b.Score += DrawPoints
		result.Draw = true
		result.PointsA = DrawPoints
		result.PointsB = DrawPoints
	case aID:
		a.Score += WinPoints
		result.PointsA = WinPoints
		result.PointsB = LossPoints
	default:
		b.Score += WinPoints
		result.PointsA = LossPoints
		result.PointsB = WinPoints
	}

	// Re-sort by score, stable on the prior rank order. This is the point
	// where any manual ordering is overwritten.
	albums = Normalize(albums)

	if err := e.saveCollection(ctx, albums); err != nil {
		return nil, err
	}

	if !result.Draw {
		winIdx := indexByID(albums, winnerID)
		loseID := aID
		if winnerID == aID {
			loseID = bID
		}
		loseIdx := indexByID(albums, loseID)
		winner := albums[winIdx].clone()
		loser := albums[loseIdx].clone()
		result.Winner = &winner
		result.Loser = &loser
	}

	e.logger.Info("battle recorded",
		"album_a", aID,
		"album_b", bID,
		"draw", result.Draw,
		"winner", winnerID)
	return result, nil
}

// indexByID returns the slice index of the album with the given id, or -1.
func indexByID(albums []Album, id string) int {
	for i := range albums {
		if albums[i].ID == id {
			return i
		}
	}
	return -1
}

// sortByRank orders the slice by ascending rank without re-deriving ranks.
func sortByRank(albums []Album) {
	sort.Slice(albums, func(i, j int) bool {
		return albums[i].Rank < albums[j].Rank
	})
}
