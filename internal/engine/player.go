package engine

import (
	"strings"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/pitch"
)

// longPassDistance is the Euclidean start→end distance beyond which a pass
// counts as a long pass, completed or not.
const longPassDistance = 30.0

// shotsOnTargetOutcomes are the shot outcomes that test the goalkeeper.
var shotsOnTargetOutcomes = map[string]bool{
	"Goal":          true,
	"Saved":         true,
	"Saved to Post": true,
}

// duelWinOutcomes are the duel outcomes counted as a win.
var duelWinOutcomes = map[string]bool{
	"Won":             true,
	"Success":         true,
	"Success In Play": true,
	"Success Out":     true,
}

// accumulatePlayers runs the single forward pass over the event sequence and
// returns the per-player counters. Events with no acting player are skipped;
// events of unknown kind or with a missing payload leave every counter
// untouched rather than failing.
func accumulatePlayers(events []model.Event) map[string]*model.PlayerMatchStats {
	players := make(map[string]*model.PlayerMatchStats)

	get := func(ev model.Event) *model.PlayerMatchStats {
		s, ok := players[ev.Player]
		if !ok {
			s = &model.PlayerMatchStats{Name: ev.Player, Team: ev.Team}
			players[ev.Player] = s
		}
		return s
	}

	for _, ev := range events {
		if ev.Player == "" {
			continue
		}

		switch ev.Kind {
		case model.KindPass:
			accumulatePass(get(ev), ev)

		case model.KindCarry:
			s := get(ev)
			if pitch.IsProgressive(ev.X, ev.EndX) {
				s.ProgressiveCarries++
			}
			if pitch.EntersFinalThird(ev.X, ev.EndX) {
				s.CarriesIntoFinalThird++
			}
			if pitch.EntersPenaltyArea(ev.X, ev.Y, ev.EndX, ev.EndY) {
				s.CarriesIntoPenaltyArea++
			}

		case model.KindPressure:
			s := get(ev)
			s.Pressures++
			if ev.Pressure != nil {
				if ev.Pressure.Regain {
					s.PressureRegains++
				}
				if ev.Pressure.Counterpress {
					s.Counterpressures++
				}
			}

		case model.KindShot:
			s := get(ev)
			s.Shots++
			if ev.Shot != nil {
				s.XG += ev.Shot.XG
				if ev.Shot.Outcome == "Goal" {
					s.Goals++
				}
				if shotsOnTargetOutcomes[ev.Shot.Outcome] {
					s.ShotsOnTarget++
				}
			}

		case model.KindInterception:
			get(ev).Interceptions++
		case model.KindClearance:
			get(ev).Clearances++
		case model.KindBlock:
			get(ev).Blocks++
		case model.KindBallRecovery:
			get(ev).BallRecoveries++

		case model.KindDuel:
			s := get(ev)
			var category, outcome string
			if ev.Duel != nil {
				category = ev.Duel.Category
				outcome = ev.Duel.Outcome
			}
			won := duelWinOutcomes[outcome]
			if strings.Contains(category, "Aerial") {
				if won {
					s.AerialDuelsWon++
				} else {
					s.AerialDuelsLost++
				}
			} else {
				if won {
					s.GroundDuelsWon++
				} else {
					s.GroundDuelsLost++
				}
			}

		case model.KindDribble:
			s := get(ev)
			s.DribblesAttempted++
			if ev.Dribble != nil && ev.Dribble.Outcome == "Complete" {
				s.DribblesCompleted++
			}

		case model.KindFoulCommitted:
			s := get(ev)
			s.FoulsCommitted++
			if ev.Foul != nil && ev.Foul.Card != "" {
				// Independent substring tests: a label containing both
				// "Yellow" and "Red" bumps both counters. This mirrors the
				// upstream feed's card labelling and is kept as-is.
				if strings.Contains(ev.Foul.Card, "Yellow") {
					s.YellowCards++
				}
				if strings.Contains(ev.Foul.Card, "Red") {
					s.RedCards++
				}
			}

		case model.KindFoulWon:
			get(ev).FoulsWon++

		case model.KindGoalkeeper:
			s := get(ev)
			if ev.Keeper == nil {
				continue
			}
			// Categories are tested independently: one event may bump
			// several counters.
			cat := ev.Keeper.Category
			if strings.Contains(cat, "Save") {
				s.Saves++
			}
			if strings.Contains(cat, "Punch") {
				s.Punches++
			}
			if strings.Contains(cat, "Collected") && strings.Contains(cat, "Cross") {
				s.CrossesStopped++
			}
			if strings.Contains(cat, "Sweeper") {
				s.SweeperActions++
			}
		}
	}

	return players
}

// accumulatePass applies the pass rules: attempt/completion bookkeeping,
// progression and zone-entry counters on completed passes, and distance and
// flag counters independent of completion.
func accumulatePass(s *model.PlayerMatchStats, ev model.Event) {
	s.PassesAttempted++

	// Absent outcome counts as complete; the provider only annotates failures.
	complete := ev.Pass == nil || ev.Pass.Outcome != "Incomplete"
	if complete {
		s.PassesCompleted++
		if pitch.IsProgressive(ev.X, ev.EndX) {
			s.ProgressivePasses++
		}
		if pitch.EntersFinalThird(ev.X, ev.EndX) {
			s.PassesIntoFinalThird++
		}
		if pitch.EntersPenaltyArea(ev.X, ev.Y, ev.EndX, ev.EndY) {
			s.PassesIntoPenaltyArea++
		}
	}

	if pitch.Distance(ev.X, ev.Y, ev.EndX, ev.EndY) > longPassDistance {
		s.LongPassesAttempted++
		if complete {
			s.LongPassesCompleted++
		}
	}

	if ev.Pass == nil {
		return
	}
	if ev.Pass.ThroughBall {
		s.ThroughBalls++
	}
	if ev.Pass.Cross {
		s.CrossesAttempted++
		if complete {
			s.CrossesCompleted++
		}
	}
	if ev.Pass.Switch {
		s.Switches++
	}
	if ev.Pass.ShotAssist || ev.Pass.GoalAssist {
		s.KeyPasses++
	}
	if ev.Pass.GoalAssist {
		s.Assists++
	}
}
