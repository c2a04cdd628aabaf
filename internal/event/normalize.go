// Package event converts provider event payloads into the canonical Event
// sequence consumed by the engine. The provider exposes loosely-typed nested
// JSON; everything unknown or malformed is defaulted here so the engine never
// has to care: a missing location becomes (0,0), a missing end location
// becomes the start location, and unrecognized event types map to KindUnknown.
package event

import (
	"encoding/json"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

type rawName struct {
	Name string `json:"name"`
}

type rawPass struct {
	EndLocation []float64 `json:"end_location"`
	Outcome     rawName   `json:"outcome"`
	Technique   rawName   `json:"technique"`
	ThroughBall bool      `json:"through_ball"`
	Cross       bool      `json:"cross"`
	Switch      bool      `json:"switch"`
	ShotAssist  bool      `json:"shot_assist"`
	GoalAssist  bool      `json:"goal_assist"`
}

type rawShot struct {
	EndLocation []float64 `json:"end_location"`
	XG          float64   `json:"statsbomb_xg"`
	Outcome     rawName   `json:"outcome"`
}

type rawEvent struct {
	Type         rawName   `json:"type"`
	Team         rawName   `json:"team"`
	Player       rawName   `json:"player"`
	Location     []float64 `json:"location"`
	Counterpress bool      `json:"counterpress"`

	Pass  *rawPass `json:"pass"`
	Carry *struct {
		EndLocation []float64 `json:"end_location"`
	} `json:"carry"`
	Pressure *struct {
		Regain bool `json:"regain"`
	} `json:"pressure"`
	Shot *rawShot `json:"shot"`
	Duel *struct {
		Type    rawName `json:"type"`
		Outcome rawName `json:"outcome"`
	} `json:"duel"`
	Dribble *struct {
		Outcome rawName `json:"outcome"`
	} `json:"dribble"`
	FoulCommitted *struct {
		Card rawName `json:"card"`
	} `json:"foul_committed"`
	Goalkeeper *struct {
		Type rawName `json:"type"`
	} `json:"goalkeeper"`
}

// kindByType maps provider event type names onto the closed kind set.
var kindByType = map[string]model.EventKind{
	"Pass":           model.KindPass,
	"Carry":          model.KindCarry,
	"Pressure":       model.KindPressure,
	"Shot":           model.KindShot,
	"Interception":   model.KindInterception,
	"Clearance":      model.KindClearance,
	"Block":          model.KindBlock,
	"Ball Recovery":  model.KindBallRecovery,
	"Duel":           model.KindDuel,
	"Dribble":        model.KindDribble,
	"Foul Committed": model.KindFoulCommitted,
	"Foul Won":       model.KindFoulWon,
	"Goal Keeper":    model.KindGoalkeeper,
	"Goalkeeper":     model.KindGoalkeeper,
}

// Normalize decodes a provider event array and returns the canonical
// sequence plus the two participating team names in order of first
// appearance. Individual events that fail to decode are dropped; only a
// payload that is not a JSON array at all is an error.
func Normalize(data []byte) ([]model.Event, string, string, error) {
	var items []json.RawMessage
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, "", "", errors.Wrap(err, "decode event array")
	}

	events := make([]model.Event, 0, len(items))
	for _, item := range items {
		var re rawEvent
		if err := sonic.Unmarshal(item, &re); err != nil {
			continue
		}
		events = append(events, normalizeOne(re))
	}

	home, away := firstTwoTeams(events)
	return events, home, away, nil
}

func normalizeOne(re rawEvent) model.Event {
	x, y := coords(re.Location)
	ev := model.Event{
		Kind:   kindByType[re.Type.Name],
		Player: re.Player.Name,
		Team:   re.Team.Name,
		X:      x,
		Y:      y,
		EndX:   x,
		EndY:   y,
	}

	switch ev.Kind {
	case model.KindPass:
		if re.Pass != nil {
			ev.EndX, ev.EndY = endCoords(re.Pass.EndLocation, x, y)
			ev.Pass = &model.PassDetail{
				Outcome:     re.Pass.Outcome.Name,
				ThroughBall: re.Pass.ThroughBall || strings.Contains(re.Pass.Technique.Name, "Through Ball"),
				Cross:       re.Pass.Cross,
				Switch:      re.Pass.Switch,
				ShotAssist:  re.Pass.ShotAssist,
				GoalAssist:  re.Pass.GoalAssist,
			}
		} else {
			ev.Pass = &model.PassDetail{}
		}

	case model.KindCarry:
		if re.Carry != nil {
			ev.EndX, ev.EndY = endCoords(re.Carry.EndLocation, x, y)
		}

	case model.KindPressure:
		detail := &model.PressureDetail{Counterpress: re.Counterpress}
		if re.Pressure != nil {
			detail.Regain = re.Pressure.Regain
		}
		ev.Pressure = detail

	case model.KindShot:
		if re.Shot != nil {
			ev.EndX, ev.EndY = endCoords(re.Shot.EndLocation, x, y)
			xg := re.Shot.XG
			if xg < 0 {
				xg = 0
			}
			ev.Shot = &model.ShotDetail{XG: xg, Outcome: re.Shot.Outcome.Name}
		} else {
			ev.Shot = &model.ShotDetail{}
		}

	case model.KindDuel:
		detail := &model.DuelDetail{}
		if re.Duel != nil {
			detail.Category = re.Duel.Type.Name
			detail.Outcome = re.Duel.Outcome.Name
		}
		ev.Duel = detail

	case model.KindDribble:
		detail := &model.DribbleDetail{}
		if re.Dribble != nil {
			detail.Outcome = re.Dribble.Outcome.Name
		}
		ev.Dribble = detail

	case model.KindFoulCommitted:
		detail := &model.FoulDetail{}
		if re.FoulCommitted != nil {
			detail.Card = re.FoulCommitted.Card.Name
		}
		ev.Foul = detail

	case model.KindGoalkeeper:
		detail := &model.KeeperDetail{}
		if re.Goalkeeper != nil {
			detail.Category = re.Goalkeeper.Type.Name
		}
		ev.Keeper = detail
	}

	return ev
}

// coords extracts (x, y) from a provider location array, defaulting to (0,0)
// when the array is missing or short.
func coords(loc []float64) (float64, float64) {
	if len(loc) < 2 {
		return 0, 0
	}
	return loc[0], loc[1]
}

// endCoords extracts an end location, falling back to the start coordinates.
func endCoords(loc []float64, startX, startY float64) (float64, float64) {
	if len(loc) < 2 {
		return startX, startY
	}
	return loc[0], loc[1]
}

func firstTwoTeams(events []model.Event) (home, away string) {
	for _, ev := range events {
		if ev.Team == "" {
			continue
		}
		switch {
		case home == "":
			home = ev.Team
		case ev.Team != home:
			return home, ev.Team
		}
	}
	return home, away
}
