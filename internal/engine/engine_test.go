package engine

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

const (
	teamHome = "Rosario Central"
	teamAway = "Newell's"
)

// pass builds a completed pass event with the given endpoints.
func pass(player, team string, x, y, endX, endY float64) model.Event {
	return model.Event{
		Kind: model.KindPass, Player: player, Team: team,
		X: x, Y: y, EndX: endX, EndY: endY,
		Pass: &model.PassDetail{},
	}
}

func shot(player, team, outcome string, xg float64) model.Event {
	return model.Event{
		Kind: model.KindShot, Player: player, Team: team,
		X: 100, Y: 40, EndX: 118, EndY: 40,
		Shot: &model.ShotDetail{XG: xg, Outcome: outcome},
	}
}

func TestCompute_Deterministic(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 40, 40, 85, 45),
		{Kind: model.KindCarry, Player: "B", Team: teamHome, X: 50, Y: 30, EndX: 70, EndY: 30},
		{Kind: model.KindPressure, Player: "C", Team: teamAway, X: 60, Y: 40, EndX: 60, EndY: 40,
			Pressure: &model.PressureDetail{Regain: true}},
		shot("B", teamHome, "Goal", 0.31),
	}

	first := Compute(events, teamHome, teamAway)
	second := Compute(events, teamHome, teamAway)
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same sequence should be identical")
	}
}

func TestPass_ProgressiveThreshold(t *testing.T) {
	out := Compute([]model.Event{
		pass("A", teamHome, 50, 40, 61, 40), // Δ=11 — progressive
		pass("B", teamHome, 50, 40, 58, 40), // Δ=8 — not
	}, teamHome, teamAway)

	if got := out.Players["A"].ProgressivePasses; got != 1 {
		t.Errorf("A progressive passes: want 1, got %d", got)
	}
	if got := out.Players["B"].ProgressivePasses; got != 0 {
		t.Errorf("B progressive passes: want 0, got %d", got)
	}
}

func TestPass_SingleEventScenario(t *testing.T) {
	out := Compute([]model.Event{pass("X", "H", 40, 40, 85, 45)}, "H", "A")

	s := out.Players["X"]
	require.NotNil(t, s)
	require.Equal(t, 1, s.PassesAttempted)
	require.Equal(t, 1, s.PassesCompleted)
	require.Equal(t, 1, s.ProgressivePasses)
	require.Equal(t, 1, s.PassesIntoFinalThird)
	require.Equal(t, 0, s.PassesIntoPenaltyArea)
	require.Equal(t, 0, s.Shots)
	require.Equal(t, 0, s.ShotCreatingActions)
	require.Equal(t, "H", s.Team)
	// (40,40)→(85,45) is 45.3 units — also a long pass.
	require.Equal(t, 1, s.LongPassesAttempted)
	require.Equal(t, 1, s.LongPassesCompleted)
}

func TestPass_IncompleteStopsZoneCounters(t *testing.T) {
	ev := pass("A", teamHome, 40, 40, 85, 45)
	ev.Pass.Outcome = "Incomplete"

	out := Compute([]model.Event{ev}, teamHome, teamAway)
	s := out.Players["A"]
	if s.PassesAttempted != 1 || s.PassesCompleted != 0 {
		t.Errorf("attempted/completed: want 1/0, got %d/%d", s.PassesAttempted, s.PassesCompleted)
	}
	if s.ProgressivePasses != 0 || s.PassesIntoFinalThird != 0 {
		t.Error("incomplete pass must not earn progression or zone-entry counters")
	}
	// Distance accounting is independent of completion.
	if s.LongPassesAttempted != 1 {
		t.Errorf("long passes attempted: want 1, got %d", s.LongPassesAttempted)
	}
	if s.LongPassesCompleted != 0 {
		t.Errorf("long passes completed: want 0, got %d", s.LongPassesCompleted)
	}
}

func TestPass_NoPayloadCountsComplete(t *testing.T) {
	ev := pass("A", teamHome, 40, 40, 52, 40)
	ev.Pass = nil // absent payload — outcome unknown, counts complete

	out := Compute([]model.Event{ev}, teamHome, teamAway)
	if got := out.Players["A"].PassesCompleted; got != 1 {
		t.Errorf("passes completed: want 1, got %d", got)
	}
}

func TestPass_FlagsAndAssists(t *testing.T) {
	ev := pass("A", teamHome, 30, 10, 90, 40)
	ev.Pass.ThroughBall = true
	ev.Pass.Cross = true
	ev.Pass.Switch = true
	ev.Pass.GoalAssist = true

	out := Compute([]model.Event{ev}, teamHome, teamAway)
	s := out.Players["A"]
	if s.ThroughBalls != 1 || s.CrossesAttempted != 1 || s.CrossesCompleted != 1 || s.Switches != 1 {
		t.Errorf("flag counters: got %+v", s)
	}
	if s.KeyPasses != 1 {
		t.Errorf("goal assist should also count as a key pass, got %d", s.KeyPasses)
	}
	if s.Assists != 1 {
		t.Errorf("assists: want 1, got %d", s.Assists)
	}
}

func TestCarry_PenaltyAreaEntry(t *testing.T) {
	events := []model.Event{
		{Kind: model.KindCarry, Player: "A", Team: teamHome, X: 90, Y: 40, EndX: 105, EndY: 40},
		{Kind: model.KindCarry, Player: "A", Team: teamHome, X: 105, Y: 40, EndX: 110, EndY: 42},
	}
	out := Compute(events, teamHome, teamAway)
	if got := out.Players["A"].CarriesIntoPenaltyArea; got != 1 {
		t.Errorf("carries into penalty area: want exactly 1, got %d", got)
	}
}

func TestShot_OutcomeAccounting(t *testing.T) {
	events := []model.Event{
		shot("A", teamHome, "Goal", 0.5),
		shot("A", teamHome, "Saved", 0.1),
		shot("A", teamHome, "Saved to Post", 0.05),
		shot("A", teamHome, "Off T", 0.02),
		shot("A", teamHome, "Wayward", 0.01),
	}
	out := Compute(events, teamHome, teamAway)
	s := out.Players["A"]

	if s.Shots != 5 {
		t.Errorf("shots: want 5, got %d", s.Shots)
	}
	if s.ShotsOnTarget != 3 {
		t.Errorf("shots on target: want 3, got %d", s.ShotsOnTarget)
	}
	if s.Goals != 1 {
		t.Errorf("goals: want 1, got %d", s.Goals)
	}
	if s.Shots < s.ShotsOnTarget || s.Goals > s.ShotsOnTarget {
		t.Error("shot ordering invariant violated")
	}
	if s.XG < 0.679 || s.XG > 0.681 {
		t.Errorf("xG sum: want 0.68, got %f", s.XG)
	}
}

func TestDuel_Buckets(t *testing.T) {
	duel := func(player, category, outcome string) model.Event {
		return model.Event{
			Kind: model.KindDuel, Player: player, Team: teamHome,
			Duel: &model.DuelDetail{Category: category, Outcome: outcome},
		}
	}
	events := []model.Event{
		duel("A", "Aerial Lost", "Won"),
		duel("A", "Aerial Lost", "Lost Out"),
		duel("A", "Tackle", "Success In Play"),
		duel("A", "Tackle", "Lost In Play"),
		duel("A", "Tackle", "Success Out"),
	}
	out := Compute(events, teamHome, teamAway)
	s := out.Players["A"]

	if s.AerialDuelsWon != 1 || s.AerialDuelsLost != 1 {
		t.Errorf("aerial duels: want 1/1, got %d/%d", s.AerialDuelsWon, s.AerialDuelsLost)
	}
	if s.GroundDuelsWon != 2 || s.GroundDuelsLost != 1 {
		t.Errorf("ground duels: want 2/1, got %d/%d", s.GroundDuelsWon, s.GroundDuelsLost)
	}
}

func TestFoul_CardSubstrings(t *testing.T) {
	foul := func(card string) model.Event {
		return model.Event{
			Kind: model.KindFoulCommitted, Player: "A", Team: teamHome,
			Foul: &model.FoulDetail{Card: card},
		}
	}

	out := Compute([]model.Event{foul("Yellow Card"), foul("Second Yellow"), foul("Red Card")}, teamHome, teamAway)
	s := out.Players["A"]
	if s.FoulsCommitted != 3 {
		t.Errorf("fouls committed: want 3, got %d", s.FoulsCommitted)
	}
	if s.YellowCards != 2 {
		t.Errorf("yellow cards: want 2, got %d", s.YellowCards)
	}
	if s.RedCards != 1 {
		t.Errorf("red cards: want 1, got %d", s.RedCards)
	}

	// A label matching both substrings bumps both counters — the upstream
	// feed's labelling ambiguity is preserved, not corrected.
	out = Compute([]model.Event{foul("Second Yellow / Red")}, teamHome, teamAway)
	s = out.Players["A"]
	if s.YellowCards != 1 || s.RedCards != 1 {
		t.Errorf("combined label: want 1 yellow and 1 red, got %d/%d", s.YellowCards, s.RedCards)
	}
}

func TestKeeper_IndependentCategories(t *testing.T) {
	gk := func(category string) model.Event {
		return model.Event{
			Kind: model.KindGoalkeeper, Player: "GK", Team: teamHome,
			Keeper: &model.KeeperDetail{Category: category},
		}
	}
	events := []model.Event{
		gk("Shot Saved"),
		gk("Punch"),
		gk("Cross Collected"),
		gk("Sweeper Action"),
		gk("Cross Collected Save"), // matches two categories at once
	}
	out := Compute(events, teamHome, teamAway)
	s := out.Players["GK"]

	if s.Saves != 2 {
		t.Errorf("saves: want 2, got %d", s.Saves)
	}
	if s.Punches != 1 {
		t.Errorf("punches: want 1, got %d", s.Punches)
	}
	if s.CrossesStopped != 2 {
		t.Errorf("crosses stopped: want 2, got %d", s.CrossesStopped)
	}
	if s.SweeperActions != 1 {
		t.Errorf("sweeper actions: want 1, got %d", s.SweeperActions)
	}
}

func TestPlayerEvents_MissingActorSkipped(t *testing.T) {
	events := []model.Event{
		{Kind: model.KindPass, Team: teamHome, X: 40, Y: 40, EndX: 60, EndY: 40},
		pass("A", teamHome, 40, 40, 60, 40),
	}
	out := Compute(events, teamHome, teamAway)
	if len(out.Players) != 1 {
		t.Fatalf("want 1 player, got %d", len(out.Players))
	}
	if out.Players["A"].PassesAttempted != 1 {
		t.Error("the anonymous event must not reach any player's counters")
	}
}

func TestPassCompletionBound(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 10, 10, 20, 10),
		pass("A", teamHome, 20, 10, 90, 70),
	}
	events[1].Pass.Outcome = "Incomplete"

	out := Compute(events, teamHome, teamAway)
	for name, s := range out.Players {
		if s.PassesCompleted > s.PassesAttempted {
			t.Errorf("%s: completed %d > attempted %d", name, s.PassesCompleted, s.PassesAttempted)
		}
	}
}

// ---- Shot-creation attribution ----

func TestCreation_WindowCredit(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 40, 40, 60, 40),
		pass("B", teamHome, 60, 40, 80, 40),
		shot("C", teamHome, "Goal", 0.4),
	}
	out := Compute(events, teamHome, teamAway)

	for _, name := range []string{"A", "B"} {
		s := out.Players[name]
		if s.ShotCreatingActions != 1 {
			t.Errorf("%s SCA: want 1, got %d", name, s.ShotCreatingActions)
		}
		if s.GoalCreatingActions != 1 {
			t.Errorf("%s GCA: want 1, got %d", name, s.GoalCreatingActions)
		}
	}
	if got := out.Players["C"].ShotCreatingActions; got != 0 {
		t.Errorf("shooter must not credit itself, got SCA=%d", got)
	}
}

func TestCreation_BeyondWindowNotCredited(t *testing.T) {
	filler := func(n int) []model.Event {
		out := make([]model.Event, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, model.Event{Kind: model.KindPressure, Player: "P", Team: teamAway})
		}
		return out
	}

	events := []model.Event{pass("D", teamHome, 10, 10, 30, 10)}
	events = append(events, filler(5)...) // pushes D past the 5-event window
	events = append(events, shot("C", teamHome, "Goal", 0.2))

	out := Compute(events, teamHome, teamAway)
	if got := out.Players["D"].ShotCreatingActions; got != 0 {
		t.Errorf("D is outside the lookback window: want SCA=0, got %d", got)
	}
}

func TestCreation_OpponentEventsIgnored(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 40, 40, 60, 40),
		pass("X", teamAway, 60, 40, 70, 40),
		shot("C", teamHome, "Saved", 0.1),
	}
	out := Compute(events, teamHome, teamAway)

	if got := out.Players["A"].ShotCreatingActions; got != 1 {
		t.Errorf("A SCA: want 1, got %d", got)
	}
	if got := out.Players["A"].GoalCreatingActions; got != 0 {
		t.Errorf("saved shot must not earn GCA, got %d", got)
	}
	if got := out.Players["X"].ShotCreatingActions; got != 0 {
		t.Errorf("opponent X must not be credited, got %d", got)
	}
}

func TestCreation_AtMostTwoContributors(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 10, 10, 20, 10),
		pass("B", teamHome, 20, 10, 40, 10),
		pass("E", teamHome, 40, 10, 60, 10),
		shot("C", teamHome, "Goal", 0.3),
	}
	out := Compute(events, teamHome, teamAway)

	// Backward scan credits the two most recent distinct contributors.
	if got := out.Players["E"].ShotCreatingActions; got != 1 {
		t.Errorf("E SCA: want 1, got %d", got)
	}
	if got := out.Players["B"].ShotCreatingActions; got != 1 {
		t.Errorf("B SCA: want 1, got %d", got)
	}
	if got := out.Players["A"].ShotCreatingActions; got != 0 {
		t.Errorf("A is the third contributor back: want 0, got %d", got)
	}
}

func TestCreation_TwoShotsShareWindow(t *testing.T) {
	// One action feeding two shots is credited once per shot.
	events := []model.Event{
		pass("A", teamHome, 40, 40, 60, 40),
		shot("C", teamHome, "Saved", 0.1),
		shot("B", teamHome, "Goal", 0.6),
	}
	out := Compute(events, teamHome, teamAway)

	if got := out.Players["A"].ShotCreatingActions; got != 2 {
		t.Errorf("A fed both shots: want SCA=2, got %d", got)
	}
	if got := out.Players["A"].GoalCreatingActions; got != 1 {
		t.Errorf("A GCA: want 1, got %d", got)
	}
	// C's saved shot sits inside B's window — a shot is itself a creating kind.
	if got := out.Players["C"].ShotCreatingActions; got != 1 {
		t.Errorf("C SCA from B's goal: want 1, got %d", got)
	}
}

// ---- Team accumulator ----

func TestTeam_CountersAndRestriction(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 50, 40, 61, 40), // progressive
		pass("B", teamAway, 85, 40, 90, 40), // attacking-third pass
		{Kind: model.KindCarry, Player: "A", Team: teamHome, X: 30, Y: 40, EndX: 55, EndY: 40},
		{Kind: model.KindPressure, Player: "C", Team: teamHome,
			Pressure: &model.PressureDetail{Regain: true}},
		{Kind: model.KindDuel, Player: "C", Team: teamHome,
			Duel: &model.DuelDetail{Category: "Tackle", Outcome: "Won"}},
		shot("B", teamAway, "Saved", 0.1), // shot() ends at (118,40) — inside the box
		{Kind: model.KindShot, Player: "B", Team: teamAway, X: 70, Y: 40, EndX: 95, EndY: 40,
			Shot: &model.ShotDetail{Outcome: "Off T"}},
		pass("Z", "Some Third Team", 50, 40, 70, 40), // not a participant — ignored
	}
	out := Compute(events, teamHome, teamAway)

	h := out.Teams[teamHome]
	a := out.Teams[teamAway]
	require.NotNil(t, h)
	require.NotNil(t, a)

	require.Equal(t, 1, h.ProgressivePasses)
	require.Equal(t, 1, h.ProgressiveCarries)
	require.Equal(t, 1, h.Pressures)
	require.Equal(t, 1, h.PressureRegains)
	require.Equal(t, 1, h.Tackles)
	require.Equal(t, 1, a.ShotsInsideBox)
	require.Equal(t, 1, a.ShotsOutsideBox)
	require.Equal(t, 1, a.PassesAttackingThird)

	if _, ok := out.Teams["Some Third Team"]; ok {
		t.Error("non-participant team must not appear in the output")
	}

	// Home pressed twice (pressure + tackle) against one away attacking-third pass.
	require.True(t, h.PPDADefined)
	require.InDelta(t, 0.5, h.PPDA, 1e-9)
}

func TestTeam_PPDAGuard(t *testing.T) {
	// Away records no pressures, tackles, or interceptions.
	events := []model.Event{
		pass("A", teamHome, 85, 40, 95, 40),
		{Kind: model.KindPressure, Player: "B", Team: teamHome},
	}
	out := Compute(events, teamHome, teamAway)

	if out.Teams[teamAway].PPDADefined {
		t.Error("away PPDA must stay undefined with a zero denominator")
	}
	if !out.Teams[teamHome].PPDADefined {
		t.Error("home PPDA should be defined")
	}
	if got := out.Teams[teamHome].PPDA; got != 0 {
		t.Errorf("home PPDA with no opponent attacking-third passes: want 0, got %f", got)
	}
}

func TestCompute_InfersParticipants(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 10, 10, 30, 10),
		pass("X", teamAway, 10, 10, 30, 10),
	}
	out := Compute(events, "", "")
	if out.Home != teamHome || out.Away != teamAway {
		t.Errorf("inferred participants: got %q/%q", out.Home, out.Away)
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	out := Compute(nil, "", "")
	if len(out.Players) != 0 {
		t.Errorf("players: want empty map, got %d entries", len(out.Players))
	}
	if len(out.Teams) != 0 {
		t.Errorf("teams: want empty map, got %d entries", len(out.Teams))
	}
}

func TestCompute_UnknownKindIgnored(t *testing.T) {
	events := []model.Event{
		{Kind: model.KindUnknown, Player: "A", Team: teamHome},
		pass("A", teamHome, 10, 10, 30, 10),
	}
	out := Compute(events, teamHome, teamAway)
	s := out.Players["A"]
	if s.PassesAttempted != 1 {
		t.Errorf("passes attempted: want 1, got %d", s.PassesAttempted)
	}
}

func TestPlayerTeam_SetOnFirstEvent(t *testing.T) {
	events := []model.Event{
		pass("A", teamHome, 10, 10, 30, 10),
		// Later event carries a different team label — the assignment sticks.
		pass("A", teamAway, 10, 10, 30, 10),
	}
	out := Compute(events, teamHome, teamAway)
	if got := out.Players["A"].Team; got != teamHome {
		t.Errorf("player team: want %q from first event, got %q", teamHome, got)
	}
}
