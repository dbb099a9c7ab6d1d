// Package gauntlet implements the album ranking engine. A collection of
// albums carries battle-earned scores and a dense 1-based rank ordering;
// the engine mutates the collection through adds, removals, pairwise
// battles, and manual reordering, always reading and writing the whole
// collection through a narrow store boundary.
package gauntlet

import (
	"slices"
	"sort"
)

// Battle scoring follows football-style points: a decisive win awards
// three points to the winner and nothing to the loser, a draw awards one
// point to each side.
const (
	WinPoints  = 3
	DrawPoints = 1
	LossPoints = 0
)

// Album is a ranked item in the collection.
type Album struct {
	ID          string `json:"id"`
	ExternalKey string `json:"external_key"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        string `json:"year,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`

	// Score accumulates battle points and never decreases.
	Score int `json:"score"`

	// Rank is the dense 1-based position. Derived from descending score
	// except between a manual reorder and the next battle.
	Rank int `json:"rank"`

	// Opponents lists the ids this album has already battled. The
	// relation is kept symmetric: if A lists B, B lists A.
	Opponents []string `json:"opponents"`
}

// HasOpponent reports whether this album has already battled the given id.
func (a *Album) HasOpponent(id string) bool {
	return slices.Contains(a.Opponents, id)
}

// addOpponent records a battled id. Callers are responsible for recording
// the reverse direction on the other album.
func (a *Album) addOpponent(id string) {
	if !a.HasOpponent(id) {
		a.Opponents = append(a.Opponents, id)
	}
}

// clone returns a deep copy so callers can hand albums out without
// exposing the engine's working slice.
func (a Album) clone() Album {
	a.Opponents = slices.Clone(a.Opponents)
	if a.Opponents == nil {
		a.Opponents = []string{}
	}
	return a
}

// cloneAlbums deep-copies a collection.
func cloneAlbums(albums []Album) []Album {
	out := make([]Album, len(albums))
	for i, a := range albums {
		out[i] = a.clone()
	}
	return out
}

// Normalize repairs a freshly loaded collection in place and returns it.
// Missing opponent sets become empty (records written before the field
// existed), the slice is stably sorted by descending score so equal
// scores keep their stored order, and ranks are reassigned densely from
// 1. Running this on every read makes the store self-healing regardless
// of what a past write left behind.
func Normalize(albums []Album) []Album {
	for i := range albums {
		if albums[i].Opponents == nil {
			albums[i].Opponents = []string{}
		}
	}
	sort.SliceStable(albums, func(i, j int) bool {
		return albums[i].Score > albums[j].Score
	})
	for i := range albums {
		albums[i].Rank = i + 1
	}
	return albums
}

// AlbumInput carries the catalog search result fields needed to add an
// album to the gauntlet.
type AlbumInput struct {
	ExternalKey string `json:"external_key"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        string `json:"year,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
}

// BattleResult describes the outcome of a recorded battle. Winner and
// Loser are nil on a draw.
type BattleResult struct {
	Winner  *Album `json:"winner,omitempty"`
	Loser   *Album `json:"loser,omitempty"`
	Draw    bool   `json:"draw"`
	PointsA int    `json:"points_a"`
	PointsB int    `json:"points_b"`
}
