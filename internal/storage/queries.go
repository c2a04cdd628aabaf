package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// MatchExists returns true if a match with the given id is already stored.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertMatch inserts a match record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) UpsertMatch(summary model.MatchSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(id, competition, season, match_date, home_team, away_team, home_score, away_score, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.MatchID, summary.Competition, summary.Season, summary.MatchDate,
		summary.HomeTeam, summary.AwayTeam, summary.HomeScore, summary.AwayScore,
		summary.Source,
	)
	return err
}

// UpsertMatchStats stores all player and team rows for a match in one
// transaction. Player and team names are resolved to stable ids, creating
// rows in the name tables on first sight.
func (db *DB) UpsertMatchStats(stats *model.MatchStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	playerStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_match_stats(
			match_id, player_id, team_id,
			passes_attempted, passes_completed, progressive_passes,
			passes_into_final_third, passes_into_penalty_area,
			long_passes_attempted, long_passes_completed, through_balls,
			crosses_attempted, crosses_completed, switches, key_passes, assists,
			progressive_carries, carries_into_final_third, carries_into_penalty_area,
			pressures, pressure_regains, counterpressures,
			shots, xg, goals, shots_on_target,
			interceptions, clearances, blocks, ball_recoveries,
			aerial_duels_won, aerial_duels_lost, ground_duels_won, ground_duels_lost,
			dribbles_attempted, dribbles_completed,
			fouls_committed, fouls_won, yellow_cards, red_cards,
			saves, punches, crosses_stopped, sweeper_actions,
			shot_creating_actions, goal_creating_actions
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	for _, s := range stats.Players {
		playerID, err := ensureID(tx, "players", s.Name)
		if err != nil {
			return err
		}
		teamID, err := ensureID(tx, "teams", s.Team)
		if err != nil {
			return err
		}
		_, err = playerStmt.Exec(
			stats.MatchID, playerID, teamID,
			s.PassesAttempted, s.PassesCompleted, s.ProgressivePasses,
			s.PassesIntoFinalThird, s.PassesIntoPenaltyArea,
			s.LongPassesAttempted, s.LongPassesCompleted, s.ThroughBalls,
			s.CrossesAttempted, s.CrossesCompleted, s.Switches, s.KeyPasses, s.Assists,
			s.ProgressiveCarries, s.CarriesIntoFinalThird, s.CarriesIntoPenaltyArea,
			s.Pressures, s.PressureRegains, s.Counterpressures,
			s.Shots, s.XG, s.Goals, s.ShotsOnTarget,
			s.Interceptions, s.Clearances, s.Blocks, s.BallRecoveries,
			s.AerialDuelsWon, s.AerialDuelsLost, s.GroundDuelsWon, s.GroundDuelsLost,
			s.DribblesAttempted, s.DribblesCompleted,
			s.FoulsCommitted, s.FoulsWon, s.YellowCards, s.RedCards,
			s.Saves, s.Punches, s.CrossesStopped, s.SweeperActions,
			s.ShotCreatingActions, s.GoalCreatingActions,
		)
		if err != nil {
			return fmt.Errorf("insert player_match_stats for %q: %w", s.Name, err)
		}
	}

	teamStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO team_match_stats(
			match_id, team_id,
			pressures, pressure_regains, progressive_passes, progressive_carries,
			shots_inside_box, shots_outside_box,
			tackles, interceptions, clearances, blocks,
			passes_attacking_third, ppda
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer teamStmt.Close()

	for _, s := range stats.Teams {
		teamID, err := ensureID(tx, "teams", s.Name)
		if err != nil {
			return err
		}
		var ppda sql.NullFloat64
		if s.PPDADefined {
			ppda = sql.NullFloat64{Float64: s.PPDA, Valid: true}
		}
		_, err = teamStmt.Exec(
			stats.MatchID, teamID,
			s.Pressures, s.PressureRegains, s.ProgressivePasses, s.ProgressiveCarries,
			s.ShotsInsideBox, s.ShotsOutsideBox,
			s.Tackles, s.Interceptions, s.Clearances, s.Blocks,
			s.PassesAttackingThird, ppda,
		)
		if err != nil {
			return fmt.Errorf("insert team_match_stats for %q: %w", s.Name, err)
		}
	}

	return tx.Commit()
}

// ensureID resolves a name to its row id in the players or teams table,
// inserting the name on first sight. Ids stay stable across matches.
func ensureID(tx *sql.Tx, table, name string) (int64, error) {
	if _, err := tx.Exec("INSERT OR IGNORE INTO "+table+"(name) VALUES (?)", name); err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow("SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolve %s id for %q: %w", table, name, err)
	}
	return id, nil
}

// ListMatches returns all stored match summaries ordered by match_date desc.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT id, competition, season, match_date, home_team, away_team, home_score, away_score, source
		FROM matches ORDER BY match_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.MatchID, &s.Competition, &s.Season, &s.MatchDate,
			&s.HomeTeam, &s.AwayTeam, &s.HomeScore, &s.AwayScore, &s.Source); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose id starts with the given prefix.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	var s model.MatchSummary
	err := db.conn.QueryRow(`
		SELECT id, competition, season, match_date, home_team, away_team, home_score, away_score, source
		FROM matches WHERE id LIKE ? LIMIT 1`, prefix+"%").
		Scan(&s.MatchID, &s.Competition, &s.Season, &s.MatchDate,
			&s.HomeTeam, &s.AwayTeam, &s.HomeScore, &s.AwayScore, &s.Source)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetPlayerStats returns all player stats for a match id.
func (db *DB) GetPlayerStats(matchID string) ([]model.PlayerMatchStats, error) {
	rows, err := db.conn.Query(`
		SELECT pl.name, t.name,
		       p.passes_attempted, p.passes_completed, p.progressive_passes,
		       p.passes_into_final_third, p.passes_into_penalty_area,
		       p.long_passes_attempted, p.long_passes_completed, p.through_balls,
		       p.crosses_attempted, p.crosses_completed, p.switches, p.key_passes, p.assists,
		       p.progressive_carries, p.carries_into_final_third, p.carries_into_penalty_area,
		       p.pressures, p.pressure_regains, p.counterpressures,
		       p.shots, p.xg, p.goals, p.shots_on_target,
		       p.interceptions, p.clearances, p.blocks, p.ball_recoveries,
		       p.aerial_duels_won, p.aerial_duels_lost, p.ground_duels_won, p.ground_duels_lost,
		       p.dribbles_attempted, p.dribbles_completed,
		       p.fouls_committed, p.fouls_won, p.yellow_cards, p.red_cards,
		       p.saves, p.punches, p.crosses_stopped, p.sweeper_actions,
		       p.shot_creating_actions, p.goal_creating_actions
		FROM player_match_stats p
		JOIN players pl ON pl.id = p.player_id
		JOIN teams t ON t.id = p.team_id
		WHERE p.match_id = ?
		ORDER BY t.name, pl.name`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerMatchStats
	for rows.Next() {
		var s model.PlayerMatchStats
		if err := rows.Scan(
			&s.Name, &s.Team,
			&s.PassesAttempted, &s.PassesCompleted, &s.ProgressivePasses,
			&s.PassesIntoFinalThird, &s.PassesIntoPenaltyArea,
			&s.LongPassesAttempted, &s.LongPassesCompleted, &s.ThroughBalls,
			&s.CrossesAttempted, &s.CrossesCompleted, &s.Switches, &s.KeyPasses, &s.Assists,
			&s.ProgressiveCarries, &s.CarriesIntoFinalThird, &s.CarriesIntoPenaltyArea,
			&s.Pressures, &s.PressureRegains, &s.Counterpressures,
			&s.Shots, &s.XG, &s.Goals, &s.ShotsOnTarget,
			&s.Interceptions, &s.Clearances, &s.Blocks, &s.BallRecoveries,
			&s.AerialDuelsWon, &s.AerialDuelsLost, &s.GroundDuelsWon, &s.GroundDuelsLost,
			&s.DribblesAttempted, &s.DribblesCompleted,
			&s.FoulsCommitted, &s.FoulsWon, &s.YellowCards, &s.RedCards,
			&s.Saves, &s.Punches, &s.CrossesStopped, &s.SweeperActions,
			&s.ShotCreatingActions, &s.GoalCreatingActions,
		); err != nil {
			return nil, err
		}
		s.MatchID = matchID
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetTeamStats returns both team rows for a match id.
func (db *DB) GetTeamStats(matchID string) ([]model.TeamMatchStats, error) {
	rows, err := db.conn.Query(`
		SELECT tm.name,
		       t.pressures, t.pressure_regains, t.progressive_passes, t.progressive_carries,
		       t.shots_inside_box, t.shots_outside_box,
		       t.tackles, t.interceptions, t.clearances, t.blocks,
		       t.passes_attacking_third, t.ppda
		FROM team_match_stats t
		JOIN teams tm ON tm.id = t.team_id
		WHERE t.match_id = ?
		ORDER BY tm.name`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TeamMatchStats
	for rows.Next() {
		var s model.TeamMatchStats
		var ppda sql.NullFloat64
		if err := rows.Scan(
			&s.Name,
			&s.Pressures, &s.PressureRegains, &s.ProgressivePasses, &s.ProgressiveCarries,
			&s.ShotsInsideBox, &s.ShotsOutsideBox,
			&s.Tackles, &s.Interceptions, &s.Clearances, &s.Blocks,
			&s.PassesAttackingThird, &ppda,
		); err != nil {
			return nil, err
		}
		s.MatchID = matchID
		if ppda.Valid {
			s.PPDA = ppda.Float64
			s.PPDADefined = true
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetPlayerAggregate sums a player's counters across all stored matches.
// Returns nil when the player has no stored rows.
func (db *DB) GetPlayerAggregate(name string) (*model.PlayerAggregate, error) {
	var a model.PlayerAggregate
	err := db.conn.QueryRow(`
		SELECT pl.name, COUNT(1),
		       SUM(p.passes_attempted), SUM(p.passes_completed),
		       SUM(p.progressive_passes), SUM(p.progressive_carries),
		       SUM(p.key_passes), SUM(p.assists),
		       SUM(p.shots), SUM(p.goals), SUM(p.xg), SUM(p.shots_on_target),
		       SUM(p.pressures), SUM(p.pressure_regains),
		       SUM(p.interceptions), SUM(p.ball_recoveries),
		       SUM(p.dribbles_attempted), SUM(p.dribbles_completed),
		       SUM(p.shot_creating_actions), SUM(p.goal_creating_actions)
		FROM player_match_stats p
		JOIN players pl ON pl.id = p.player_id
		WHERE pl.name = ?
		GROUP BY pl.name`, name).
		Scan(&a.Name, &a.Matches,
			&a.PassesAttempted, &a.PassesCompleted,
			&a.ProgressivePasses, &a.ProgressiveCarries,
			&a.KeyPasses, &a.Assists,
			&a.Shots, &a.Goals, &a.XG, &a.ShotsOnTarget,
			&a.Pressures, &a.PressureRegains,
			&a.Interceptions, &a.BallRecoveries,
			&a.DribblesAttempted, &a.DribblesCompleted,
			&a.ShotCreatingActions, &a.GoalCreatingActions)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// PutRawEvents caches a provider event payload for a match.
func (db *DB) PutRawEvents(matchID string, payload []byte) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO raw_events(match_id, payload, fetched_at)
		VALUES (?, ?, ?)`, matchID, payload, time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetRawEvents returns a cached event payload, or nil when absent.
func (db *DB) GetRawEvents(matchID string) ([]byte, error) {
	var payload []byte
	err := db.conn.QueryRow("SELECT payload FROM raw_events WHERE match_id = ?", matchID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}
