package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	id := s.MatchID
	if len(id) > 12 {
		id = id[:12]
	}
	fmt.Fprintf(w, "\n%s %d – %d %s  |  Date: %s  |  Source: %s  |  ID: %s\n\n",
		s.HomeTeam, s.HomeScore, s.AwayScore, s.AwayTeam, s.MatchDate, s.Source, id)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintPassingTable prints the passing and carrying table.
// If focus is non-empty, that player's row is marked with ">".
func PrintPassingTable(w io.Writer, stats []model.PlayerMatchStats, focus string) {
	table := newTable(w)
	table.Header(
		" ", "NAME", "TEAM", "PASS_ATT", "PASS_CMP", "CMP%", "PROG_P", "FT_P", "PA_P",
		"LONG_ATT", "LONG_CMP", "THRU", "CROSS", "SWITCH", "PROG_C", "FT_C", "PA_C",
	)

	for _, s := range stats {
		marker := " "
		if focus != "" && s.Name == focus {
			marker = ">"
		}
		table.Append(
			marker,
			s.Name,
			s.Team,
			strconv.Itoa(s.PassesAttempted),
			strconv.Itoa(s.PassesCompleted),
			fmt.Sprintf("%.0f%%", s.PassCompletionPct()),
			strconv.Itoa(s.ProgressivePasses),
			strconv.Itoa(s.PassesIntoFinalThird),
			strconv.Itoa(s.PassesIntoPenaltyArea),
			strconv.Itoa(s.LongPassesAttempted),
			strconv.Itoa(s.LongPassesCompleted),
			strconv.Itoa(s.ThroughBalls),
			strconv.Itoa(s.CrossesAttempted),
			strconv.Itoa(s.Switches),
			strconv.Itoa(s.ProgressiveCarries),
			strconv.Itoa(s.CarriesIntoFinalThird),
			strconv.Itoa(s.CarriesIntoPenaltyArea),
		)
	}
	table.Render()
}

// PrintAttackingTable prints shooting, chance creation, and dribbling.
func PrintAttackingTable(w io.Writer, stats []model.PlayerMatchStats, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "TEAM", "SHOTS", "SOT", "GOALS", "xG", "KP", "AST", "SCA", "GCA", "DRIB", "DRIB%")

	for _, s := range stats {
		marker := " "
		if focus != "" && s.Name == focus {
			marker = ">"
		}
		dribPct := "—"
		if s.DribblesAttempted > 0 {
			dribPct = fmt.Sprintf("%.0f%%", s.DribbleSuccessPct())
		}
		table.Append(
			marker,
			s.Name,
			s.Team,
			strconv.Itoa(s.Shots),
			strconv.Itoa(s.ShotsOnTarget),
			strconv.Itoa(s.Goals),
			fmt.Sprintf("%.2f", s.XG),
			strconv.Itoa(s.KeyPasses),
			strconv.Itoa(s.Assists),
			strconv.Itoa(s.ShotCreatingActions),
			strconv.Itoa(s.GoalCreatingActions),
			strconv.Itoa(s.DribblesAttempted),
			dribPct,
		)
	}
	table.Render()
}

// PrintDefendingTable prints pressing, duels, and discipline.
func PrintDefendingTable(w io.Writer, stats []model.PlayerMatchStats, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "TEAM", "PRESS", "REGAIN", "CPRESS", "INT", "CLR", "BLK",
		"RECOV", "AER_W", "AER_L", "AER%", "GRD_W", "GRD_L", "FLS", "FW", "YC", "RC")

	for _, s := range stats {
		marker := " "
		if focus != "" && s.Name == focus {
			marker = ">"
		}
		aerPct := "—"
		if s.AerialDuelsWon+s.AerialDuelsLost > 0 {
			aerPct = fmt.Sprintf("%.0f%%", s.AerialWinPct())
		}
		table.Append(
			marker,
			s.Name,
			s.Team,
			strconv.Itoa(s.Pressures),
			strconv.Itoa(s.PressureRegains),
			strconv.Itoa(s.Counterpressures),
			strconv.Itoa(s.Interceptions),
			strconv.Itoa(s.Clearances),
			strconv.Itoa(s.Blocks),
			strconv.Itoa(s.BallRecoveries),
			strconv.Itoa(s.AerialDuelsWon),
			strconv.Itoa(s.AerialDuelsLost),
			aerPct,
			strconv.Itoa(s.GroundDuelsWon),
			strconv.Itoa(s.GroundDuelsLost),
			strconv.Itoa(s.FoulsCommitted),
			strconv.Itoa(s.FoulsWon),
			strconv.Itoa(s.YellowCards),
			strconv.Itoa(s.RedCards),
		)
	}
	table.Render()
}

// PrintKeeperTable prints goalkeeping rows. Players without any keeper
// actions are omitted; the table is skipped entirely when no one qualifies.
func PrintKeeperTable(w io.Writer, stats []model.PlayerMatchStats) {
	var keepers []model.PlayerMatchStats
	for _, s := range stats {
		if s.HasKeeperActions() {
			keepers = append(keepers, s)
		}
	}
	if len(keepers) == 0 {
		return
	}

	table := newTable(w)
	table.Header("NAME", "TEAM", "SAVES", "PUNCHES", "CROSSES_STOPPED", "SWEEPER")

	for _, s := range keepers {
		table.Append(
			s.Name,
			s.Team,
			strconv.Itoa(s.Saves),
			strconv.Itoa(s.Punches),
			strconv.Itoa(s.CrossesStopped),
			strconv.Itoa(s.SweeperActions),
		)
	}
	table.Render()
}

// PrintTeamTable prints the per-team pressing and progression table.
// An undefined pressing ratio renders as "—".
func PrintTeamTable(w io.Writer, stats []model.TeamMatchStats) {
	table := newTable(w)
	table.Header("TEAM", "PRESS", "REGAIN", "PROG_P", "PROG_C", "SHOT_IN", "SHOT_OUT",
		"TKL", "INT", "CLR", "BLK", "ATT3_PASS", "PPDA")

	for _, s := range stats {
		ppda := "—"
		if s.PPDADefined {
			ppda = fmt.Sprintf("%.2f", s.PPDA)
		}
		table.Append(
			s.Name,
			strconv.Itoa(s.Pressures),
			strconv.Itoa(s.PressureRegains),
			strconv.Itoa(s.ProgressivePasses),
			strconv.Itoa(s.ProgressiveCarries),
			strconv.Itoa(s.ShotsInsideBox),
			strconv.Itoa(s.ShotsOutsideBox),
			strconv.Itoa(s.Tackles),
			strconv.Itoa(s.Interceptions),
			strconv.Itoa(s.Clearances),
			strconv.Itoa(s.Blocks),
			strconv.Itoa(s.PassesAttackingThird),
			ppda,
		)
	}
	table.Render()
}

// PrintPlayerAggregate prints a player's counters summed across all stored matches.
func PrintPlayerAggregate(w io.Writer, a model.PlayerAggregate) {
	table := newTable(w)
	table.Header("PLAYER", "MATCHES", "PASS_ATT", "CMP%", "PROG_P", "PROG_C", "KP", "AST",
		"SHOTS", "SOT", "GOALS", "G/MATCH", "xG", "xG/SHOT", "PRESS", "SCA", "GCA")

	xgPerShot := "—"
	if a.Shots > 0 {
		xgPerShot = fmt.Sprintf("%.2f", a.XGPerShot())
	}
	table.Append(
		a.Name,
		strconv.Itoa(a.Matches),
		strconv.Itoa(a.PassesAttempted),
		fmt.Sprintf("%.0f%%", a.PassCompletionPct()),
		strconv.Itoa(a.ProgressivePasses),
		strconv.Itoa(a.ProgressiveCarries),
		strconv.Itoa(a.KeyPasses),
		strconv.Itoa(a.Assists),
		strconv.Itoa(a.Shots),
		strconv.Itoa(a.ShotsOnTarget),
		strconv.Itoa(a.Goals),
		fmt.Sprintf("%.2f", a.GoalsPerMatch()),
		fmt.Sprintf("%.2f", a.XG),
		xgPerShot,
		strconv.Itoa(a.Pressures),
		strconv.Itoa(a.ShotCreatingActions),
		strconv.Itoa(a.GoalCreatingActions),
	)
	table.Render()
}
