// Package engine derives per-player and per-team tactical statistics from a
// match's canonical event sequence: progressive passing and carrying, pressing
// counts, shot- and goal-creating action chains, and PPDA.
//
// The engine is pure: it performs no I/O, allocates fresh accumulators per
// call, never mutates its input, and is total over malformed events (missing
// payload fields degrade to zero counters, unknown kinds are ignored).
// Concurrent calls for different matches are safe without locking.
package engine

import "github.com/pitchlab/go-pitch-metrics/internal/model"

// Compute runs the three passes over one match's ordered event sequence and
// merges their outputs. home and away name the participating teams; when
// either is empty both are taken from the first two distinct team identifiers
// in event order. The sequence must preserve the original temporal order —
// shot-creation attribution depends on it.
func Compute(events []model.Event, home, away string) *model.MatchStats {
	if home == "" || away == "" {
		home, away = participants(events)
	}

	players := accumulatePlayers(events)
	teams := accumulateTeams(events, home, away)
	attributeShotCreation(events, players)

	return &model.MatchStats{
		Home:    home,
		Away:    away,
		Players: players,
		Teams:   teams,
	}
}

// participants returns the first two distinct team names in event order.
func participants(events []model.Event) (home, away string) {
	for _, ev := range events {
		if ev.Team == "" {
			continue
		}
		switch {
		case home == "":
			home = ev.Team
		case ev.Team != home && away == "":
			away = ev.Team
			return home, away
		}
	}
	return home, away
}
