package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sandlot/internal/sim"
)

// Scorecard shapes the dashboard's box-score view. Line scores are padded to
// the mode's inning count; a session mid-inning shows its partial line.
type Scorecard struct {
	Mode     string         `json:"mode"`
	Inning   int            `json:"inning"`
	Top      bool           `json:"topOfInning"`
	GameOver bool           `json:"gameOver"`
	Away     ScorecardLine  `json:"away"`
	Home     ScorecardLine  `json:"home"`
	Batting  ScorecardStats `json:"batting"`
}

// ScorecardLine is one team's row.
type ScorecardLine struct {
	Runs int `json:"runs"`
	Hits int `json:"hits"`
}

// ScorecardStats summarizes the batting totals a dashboard cares about.
type ScorecardStats struct {
	Pitches       int `json:"pitches"`
	Swings        int `json:"swings"`
	Hits          int `json:"hits"`
	HomeRuns      int `json:"homeRuns"`
	Whiffs        int `json:"whiffs"`
	Fouls         int `json:"fouls"`
	LongestStreak int `json:"longestStreak"`
	DerbyOuts     int `json:"derbyOuts"`
}

// buildScorecard folds a game state into the dashboard shape.
func buildScorecard(state sim.GameState) Scorecard {
	hits := state.Stats.Singles + state.Stats.Doubles + state.Stats.Triples + state.Stats.HomeRuns

	card := Scorecard{
		Mode:     string(state.Mode),
		Inning:   state.Inning,
		Top:      state.TopOfInning,
		GameOver: state.GameOver,
		Away:     ScorecardLine{Runs: state.Runs.Away},
		Home:     ScorecardLine{Runs: state.Runs.Home},
		Batting: ScorecardStats{
			Pitches:       state.Stats.Pitches,
			Swings:        state.Stats.Swings,
			Hits:          hits,
			HomeRuns:      state.Stats.HomeRuns,
			Whiffs:        state.Stats.Whiffs,
			Fouls:         state.Stats.Fouls,
			LongestStreak: state.Stats.LongestStreak,
			DerbyOuts:     state.Stats.DerbyOuts,
		},
	}

	// One batter plays both halves, so the hit total lands on whichever side
	// is at the plate; the other line keeps its accumulated runs only.
	if state.TopOfInning {
		card.Away.Hits = hits
	} else {
		card.Home.Hits = hits
	}
	return card
}

// scorecard returns the box score for ?session=<id>, or an empty quickPlay
// card when no session is named, so the dashboard renders before play starts.
func (h *handlers) scorecard(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		id = chi.URLParam(r, "id")
	}

	if id == "" {
		writeJSON(w, http.StatusOK, buildScorecard(sim.NewGameState(sim.ModeQuickPlay)))
		return
	}

	session, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, buildScorecard(session.State()))
}
