package event

import (
	"testing"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

func TestNormalize_Pass(t *testing.T) {
	data := []byte(`[
		{
			"type": {"name": "Pass"},
			"team": {"name": "Arsenal"},
			"player": {"name": "Saka"},
			"location": [40.0, 40.0],
			"pass": {
				"end_location": [85.0, 45.0],
				"cross": true,
				"shot_assist": true
			}
		}
	]`)

	events, home, _, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != model.KindPass {
		t.Errorf("kind: want Pass, got %v", ev.Kind)
	}
	if ev.Player != "Saka" || ev.Team != "Arsenal" {
		t.Errorf("actor: got %q/%q", ev.Player, ev.Team)
	}
	if ev.X != 40 || ev.Y != 40 || ev.EndX != 85 || ev.EndY != 45 {
		t.Errorf("coords: got (%v,%v)→(%v,%v)", ev.X, ev.Y, ev.EndX, ev.EndY)
	}
	if ev.Pass == nil || !ev.Pass.Cross || !ev.Pass.ShotAssist {
		t.Errorf("pass payload: got %+v", ev.Pass)
	}
	if ev.Pass.Outcome != "" {
		t.Errorf("absent outcome should stay empty, got %q", ev.Pass.Outcome)
	}
	if home != "Arsenal" {
		t.Errorf("home team: want Arsenal, got %q", home)
	}
}

func TestNormalize_MissingLocationDefaults(t *testing.T) {
	data := []byte(`[
		{"type": {"name": "Carry"}, "team": {"name": "A"}, "player": {"name": "P"}},
		{"type": {"name": "Pass"}, "team": {"name": "A"}, "player": {"name": "P"},
		 "location": [30.0], "pass": {}}
	]`)

	events, _, _, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for i, ev := range events {
		if ev.X != 0 || ev.Y != 0 {
			t.Errorf("event %d: missing/short location should default to (0,0), got (%v,%v)", i, ev.X, ev.Y)
		}
		if ev.EndX != 0 || ev.EndY != 0 {
			t.Errorf("event %d: end should default to start, got (%v,%v)", i, ev.EndX, ev.EndY)
		}
	}
}

func TestNormalize_UnknownTypeKept(t *testing.T) {
	data := []byte(`[
		{"type": {"name": "Starting XI"}, "team": {"name": "A"}},
		{"type": {"name": "Half Start"}, "team": {"name": "A"}},
		{"type": {"name": "Pass"}, "team": {"name": "A"}, "player": {"name": "P"},
		 "location": [10.0, 10.0], "pass": {"end_location": [20.0, 10.0]}}
	]`)

	events, _, _, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	// Unknown kinds stay in the sequence (they occupy lookback-window slots)
	// but carry KindUnknown so every accumulator ignores them.
	if len(events) != 3 {
		t.Fatalf("want 3 events, got %d", len(events))
	}
	if events[0].Kind != model.KindUnknown || events[1].Kind != model.KindUnknown {
		t.Error("provider bookkeeping rows should map to KindUnknown")
	}
}

func TestNormalize_MalformedEventDropped(t *testing.T) {
	data := []byte(`[
		{"type": {"name": "Pass"}, "team": {"name": "A"}, "player": {"name": "P"},
		 "location": "not-an-array"},
		{"type": {"name": "Pressure"}, "team": {"name": "B"}, "player": {"name": "Q"},
		 "location": [60.0, 40.0], "counterpress": true}
	]`)

	events, _, _, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("malformed event should be dropped, got %d events", len(events))
	}
	ev := events[0]
	if ev.Kind != model.KindPressure {
		t.Fatalf("kind: want Pressure, got %v", ev.Kind)
	}
	if ev.Pressure == nil || !ev.Pressure.Counterpress {
		t.Error("counterpress flag should be carried into the pressure payload")
	}
}

func TestNormalize_ShotAndKeeper(t *testing.T) {
	data := []byte(`[
		{"type": {"name": "Shot"}, "team": {"name": "A"}, "player": {"name": "S"},
		 "location": [108.0, 40.0],
		 "shot": {"statsbomb_xg": 0.42, "outcome": {"name": "Goal"}, "end_location": [120.0, 38.0]}},
		{"type": {"name": "Goal Keeper"}, "team": {"name": "B"}, "player": {"name": "GK"},
		 "location": [3.0, 40.0], "goalkeeper": {"type": {"name": "Shot Saved"}}}
	]`)

	events, home, away, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if events[0].Shot == nil || events[0].Shot.XG != 0.42 || events[0].Shot.Outcome != "Goal" {
		t.Errorf("shot payload: got %+v", events[0].Shot)
	}
	if events[1].Keeper == nil || events[1].Keeper.Category != "Shot Saved" {
		t.Errorf("keeper payload: got %+v", events[1].Keeper)
	}
	if home != "A" || away != "B" {
		t.Errorf("teams: got %q/%q", home, away)
	}
}

func TestNormalize_NotAnArray(t *testing.T) {
	if _, _, _, err := Normalize([]byte(`{"oops": true}`)); err == nil {
		t.Error("a non-array payload should be an error")
	}
}

func TestNormalize_ThroughBallTechnique(t *testing.T) {
	data := []byte(`[
		{"type": {"name": "Pass"}, "team": {"name": "A"}, "player": {"name": "P"},
		 "location": [50.0, 40.0],
		 "pass": {"end_location": [80.0, 40.0], "technique": {"name": "Through Ball"}}}
	]`)
	events, _, _, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !events[0].Pass.ThroughBall {
		t.Error("technique name should set the through-ball flag")
	}
}
