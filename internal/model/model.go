package model

// EventKind identifies the variant of a canonical match event.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindPass
	KindCarry
	KindPressure
	KindShot
	KindInterception
	KindClearance
	KindBlock
	KindBallRecovery
	KindDuel
	KindDribble
	KindFoulCommitted
	KindFoulWon
	KindGoalkeeper
)

func (k EventKind) String() string {
	switch k {
	case KindPass:
		return "Pass"
	case KindCarry:
		return "Carry"
	case KindPressure:
		return "Pressure"
	case KindShot:
		return "Shot"
	case KindInterception:
		return "Interception"
	case KindClearance:
		return "Clearance"
	case KindBlock:
		return "Block"
	case KindBallRecovery:
		return "Ball Recovery"
	case KindDuel:
		return "Duel"
	case KindDribble:
		return "Dribble"
	case KindFoulCommitted:
		return "Foul Committed"
	case KindFoulWon:
		return "Foul Won"
	case KindGoalkeeper:
		return "Goalkeeper"
	default:
		return "?"
	}
}

// ---- Canonical events produced by the normalization boundary ----

// PassDetail carries the pass-specific payload. An empty Outcome means the
// pass was completed (providers only annotate failures).
type PassDetail struct {
	Outcome     string
	ThroughBall bool
	Cross       bool
	Switch      bool
	ShotAssist  bool
	GoalAssist  bool
}

type PressureDetail struct {
	Regain       bool
	Counterpress bool
}

type ShotDetail struct {
	XG      float64
	Outcome string
}

type DuelDetail struct {
	Category string // e.g. "Aerial Lost", "Tackle"
	Outcome  string
}

type DribbleDetail struct {
	Outcome string
}

type FoulDetail struct {
	Card string
}

type KeeperDetail struct {
	Category string
}

// Event is one canonical match event. Player and Team may be empty (the
// accumulators skip such events). Start and end coordinates are always
// populated: the normalizer defaults a missing location to (0,0) and a
// missing end location to the start location. Pitch orientation is 0→120
// along the acting team's attacking direction, y in [0,80].
type Event struct {
	Kind   EventKind
	Player string
	Team   string

	X, Y       float64
	EndX, EndY float64

	Pass     *PassDetail
	Pressure *PressureDetail
	Shot     *ShotDetail
	Duel     *DuelDetail
	Dribble  *DribbleDetail
	Foul     *FoulDetail
	Keeper   *KeeperDetail
}

// ---- Derived per-match statistics ----

// PlayerMatchStats holds the counters derived for one player in one match.
type PlayerMatchStats struct {
	MatchID string
	Name    string
	Team    string // set on the player's first observed event

	// Passing
	PassesAttempted       int
	PassesCompleted       int
	ProgressivePasses     int
	PassesIntoFinalThird  int
	PassesIntoPenaltyArea int
	LongPassesAttempted   int
	LongPassesCompleted   int
	ThroughBalls          int
	CrossesAttempted      int
	CrossesCompleted      int
	Switches              int
	KeyPasses             int
	Assists               int

	// Carrying
	ProgressiveCarries     int
	CarriesIntoFinalThird  int
	CarriesIntoPenaltyArea int

	// Pressing
	Pressures        int
	PressureRegains  int
	Counterpressures int

	// Shooting
	Shots         int
	XG            float64
	Goals         int
	ShotsOnTarget int

	// Defending
	Interceptions  int
	Clearances     int
	Blocks         int
	BallRecoveries int

	// Duels
	AerialDuelsWon  int
	AerialDuelsLost int
	GroundDuelsWon  int
	GroundDuelsLost int

	// Dribbling
	DribblesAttempted int
	DribblesCompleted int

	// Discipline
	FoulsCommitted int
	FoulsWon       int
	YellowCards    int
	RedCards       int

	// Goalkeeping
	Saves          int
	Punches        int
	CrossesStopped int
	SweeperActions int

	// Chain credit
	ShotCreatingActions int
	GoalCreatingActions int
}

func (s *PlayerMatchStats) PassCompletionPct() float64 {
	if s.PassesAttempted == 0 {
		return 0
	}
	return float64(s.PassesCompleted) / float64(s.PassesAttempted) * 100
}

func (s *PlayerMatchStats) DribbleSuccessPct() float64 {
	if s.DribblesAttempted == 0 {
		return 0
	}
	return float64(s.DribblesCompleted) / float64(s.DribblesAttempted) * 100
}

func (s *PlayerMatchStats) AerialWinPct() float64 {
	total := s.AerialDuelsWon + s.AerialDuelsLost
	if total == 0 {
		return 0
	}
	return float64(s.AerialDuelsWon) / float64(total) * 100
}

// HasKeeperActions reports whether any goalkeeping counter is non-zero.
func (s *PlayerMatchStats) HasKeeperActions() bool {
	return s.Saves > 0 || s.Punches > 0 || s.CrossesStopped > 0 || s.SweeperActions > 0
}

// TeamMatchStats holds the counters derived for one team in one match.
// PPDA is only meaningful when PPDADefined is true: a team that recorded no
// pressures, tackles, or interceptions has no defined pressing ratio.
type TeamMatchStats struct {
	MatchID string
	Name    string

	Pressures            int
	PressureRegains      int
	ProgressivePasses    int
	ProgressiveCarries   int
	ShotsInsideBox       int
	ShotsOutsideBox      int
	Tackles              int
	Interceptions        int
	Clearances           int
	Blocks               int
	PassesAttackingThird int

	PPDA        float64
	PPDADefined bool
}

// MatchStats is the combined output for one match: the per-player and
// per-team mappings handed to the persistence layer.
type MatchStats struct {
	MatchID string
	Home    string
	Away    string
	Players map[string]*PlayerMatchStats
	Teams   map[string]*TeamMatchStats
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	MatchID     string
	Competition string
	Season      string
	MatchDate   string
	HomeTeam    string
	AwayTeam    string
	HomeScore   int
	AwayScore   int
	Source      string // "statsbomb" or "file"
}

// PlayerAggregate holds one player's counters summed across all stored matches.
type PlayerAggregate struct {
	Name    string
	Matches int

	PassesAttempted     int
	PassesCompleted     int
	ProgressivePasses   int
	ProgressiveCarries  int
	KeyPasses           int
	Assists             int
	Shots               int
	Goals               int
	XG                  float64
	ShotsOnTarget       int
	Pressures           int
	PressureRegains     int
	Interceptions       int
	BallRecoveries      int
	DribblesAttempted   int
	DribblesCompleted   int
	ShotCreatingActions int
	GoalCreatingActions int
}

func (a *PlayerAggregate) PassCompletionPct() float64 {
	if a.PassesAttempted == 0 {
		return 0
	}
	return float64(a.PassesCompleted) / float64(a.PassesAttempted) * 100
}

func (a *PlayerAggregate) GoalsPerMatch() float64 {
	if a.Matches == 0 {
		return 0
	}
	return float64(a.Goals) / float64(a.Matches)
}

func (a *PlayerAggregate) XGPerShot() float64 {
	if a.Shots == 0 {
		return 0
	}
	return a.XG / float64(a.Shots)
}
