package engine

import (
	"strings"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/pitch"
)

// accumulateTeams runs the single forward pass producing per-team counters.
// Only the two participating teams are tracked; events referencing any other
// team identifier are ignored. PPDA is derived after the pass.
func accumulateTeams(events []model.Event, home, away string) map[string]*model.TeamMatchStats {
	teams := make(map[string]*model.TeamMatchStats, 2)
	for _, name := range []string{home, away} {
		if name != "" {
			teams[name] = &model.TeamMatchStats{Name: name}
		}
	}

	for _, ev := range events {
		s, ok := teams[ev.Team]
		if !ok {
			continue
		}

		switch ev.Kind {
		case model.KindPressure:
			s.Pressures++
			if ev.Pressure != nil && ev.Pressure.Regain {
				s.PressureRegains++
			}

		case model.KindPass:
			if pitch.IsProgressive(ev.X, ev.EndX) {
				s.ProgressivePasses++
			}
			// PPDA numerator: passes played from inside the passer's own
			// attacking third.
			if ev.X >= pitch.FinalThirdBoundary {
				s.PassesAttackingThird++
			}

		case model.KindCarry:
			if pitch.IsProgressive(ev.X, ev.EndX) {
				s.ProgressiveCarries++
			}

		case model.KindShot:
			if pitch.InPenaltyArea(ev.EndX, ev.EndY) {
				s.ShotsInsideBox++
			} else {
				s.ShotsOutsideBox++
			}

		case model.KindInterception:
			s.Interceptions++
		case model.KindClearance:
			s.Clearances++
		case model.KindBlock:
			s.Blocks++

		case model.KindDuel:
			if ev.Duel != nil && strings.Contains(ev.Duel.Category, "Tackle") {
				s.Tackles++
			}
		}
	}

	if h, a := teams[home], teams[away]; h != nil && a != nil {
		derivePPDA(h, a)
		derivePPDA(a, h)
	}
	return teams
}

// derivePPDA computes the pressing-efficiency ratio for one team: opponent
// passes in the attacking third per own defensive action. Left undefined when
// the team recorded no defensive actions at all.
func derivePPDA(own, opp *model.TeamMatchStats) {
	denom := own.Pressures + own.Tackles + own.Interceptions
	if denom == 0 {
		return
	}
	own.PPDA = float64(opp.PassesAttackingThird) / float64(denom)
	own.PPDADefined = true
}
