package engine

import "github.com/pitchlab/go-pitch-metrics/internal/model"

// creationWindow is the number of preceding events inspected for each shot.
const creationWindow = 5

// creationKinds are the event kinds that can contribute to a shot chain.
var creationKinds = map[model.EventKind]bool{
	model.KindPass:    true,
	model.KindDribble: true,
	model.KindFoulWon: true,
	model.KindShot:    true,
}

// attributeShotCreation credits shot-creating and goal-creating actions. For
// every shot it scans backward through the preceding creationWindow events,
// collecting up to two distinct same-team contributors other than the shooter,
// and bumps their SCA (and GCA when the shot scored).
//
// Contributors are deduplicated only within a single shot's window: the same
// action can be credited again for a second qualifying shot downstream, and a
// player who later becomes the shooter of another shot can still collect
// credit for this one.
func attributeShotCreation(events []model.Event, players map[string]*model.PlayerMatchStats) {
	for i, ev := range events {
		if ev.Kind != model.KindShot {
			continue
		}
		isGoal := ev.Shot != nil && ev.Shot.Outcome == "Goal"
		shooter := ev.Player
		team := ev.Team

		var first, second string
		for j := i - 1; j >= 0 && j >= i-creationWindow; j-- {
			prev := events[j]
			if prev.Team != team || !creationKinds[prev.Kind] {
				continue
			}
			if prev.Player == "" || prev.Player == shooter {
				continue
			}
			if first == "" {
				first = prev.Player
				continue
			}
			if prev.Player != first {
				second = prev.Player
				break
			}
		}

		for _, name := range []string{first, second} {
			if name == "" {
				continue
			}
			s, ok := players[name]
			if !ok {
				s = &model.PlayerMatchStats{Name: name}
				players[name] = s
			}
			s.ShotCreatingActions++
			if isGoal {
				s.GoalCreatingActions++
			}
		}
	}
}
