package record

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SlotSummary aggregates one player's match record
type SlotSummary struct {
	Slot        int
	Wins        int64
	Kills       int64
	Deaths      int64
	Shots       int64
	DamageDealt float64
	Pickups     int64
}

// Summary aggregates a recorded match
type Summary struct {
	MatchID uint
	Rounds  int64
	Draws   int64
	Slots   []SlotSummary
}

// Summarize flushes pending rows and aggregates the current match
func (r *Recorder) Summarize(players int) (Summary, error) {
	if err := r.Flush(); err != nil {
		return Summary{}, err
	}

	s := Summary{MatchID: r.matchID, Slots: make([]SlotSummary, players)}
	db := r.db

	if err := db.Model(&Round{}).Where("match_id = ? AND ended_at IS NOT NULL", r.matchID).Count(&s.Rounds).Error; err != nil {
		return s, fmt.Errorf("failed to count rounds: %w", err)
	}
	if err := db.Model(&Round{}).Where("match_id = ? AND ended_at IS NOT NULL AND winner IS NULL", r.matchID).Count(&s.Draws).Error; err != nil {
		return s, fmt.Errorf("failed to count draws: %w", err)
	}

	for slot := range s.Slots {
		ss := &s.Slots[slot]
		ss.Slot = slot

		queries := []struct {
			model any
			where string
			dst   *int64
		}{
			{&Round{}, "match_id = ? AND winner = ?", &ss.Wins},
			{&KillEvent{}, "match_id = ? AND killer = ?", &ss.Kills},
			{&KillEvent{}, "match_id = ? AND victim = ?", &ss.Deaths},
			{&ShotEvent{}, "match_id = ? AND slot = ?", &ss.Shots},
			{&PickupEvent{}, "match_id = ? AND slot = ?", &ss.Pickups},
		}
		for _, q := range queries {
			if err := db.Model(q.model).Where(q.where, r.matchID, slot).Count(q.dst).Error; err != nil {
				return s, fmt.Errorf("failed to aggregate slot %d: %w", slot, err)
			}
		}

		err := db.Model(&DamageEvent{}).
			Where("match_id = ? AND attacker = ? AND victim <> ?", r.matchID, slot, slot).
			Select("COALESCE(SUM(applied), 0)").Scan(&ss.DamageDealt).Error
		if err != nil {
			return s, fmt.Errorf("failed to sum damage for slot %d: %w", slot, err)
		}
	}

	return s, nil
}

// Log writes the summary as one structured line per slot
func (s Summary) Log(log zerolog.Logger) {
	log.Info().Uint("match", s.MatchID).Int64("rounds", s.Rounds).Int64("draws", s.Draws).Msg("Match summary")
	for _, ss := range s.Slots {
		log.Info().
			Int("slot", ss.Slot).
			Int64("wins", ss.Wins).
			Int64("kills", ss.Kills).
			Int64("deaths", ss.Deaths).
			Int64("shots", ss.Shots).
			Float64("damage", ss.DamageDealt).
			Int64("pickups", ss.Pickups).
			Msg("Player summary")
	}
}
