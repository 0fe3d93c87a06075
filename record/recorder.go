package record

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lixenwraith/tank-arena/event"
)

const memoryDSN = "file::memory:"

// OpenDB opens a SQLite database at path, or a private in-memory one when path is empty
func OpenDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = memoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// Every in-memory connection is a separate database
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// Recorder persists match history from routed game events
// Per-tick rows are buffered and written in batches when a round ends or the recorder closes
type Recorder struct {
	db      *gorm.DB
	logger  zerolog.Logger
	now     func() time.Time
	matchID uint

	round        *Round
	roundNumber  int
	lastAttacker map[int]int

	shots   []ShotEvent
	damage  []DamageEvent
	kills   []KillEvent
	pickups []PickupEvent
}

// NewRecorder migrates the schema and opens a new match row
func NewRecorder(db *gorm.DB, layout string, players int, log zerolog.Logger) (*Recorder, error) {
	r := &Recorder{
		db:           db,
		logger:       log.With().Str("component", "recorder").Logger(),
		now:          time.Now,
		lastAttacker: make(map[int]int),
	}

	if err := db.AutoMigrate(DatabaseModels...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	match := Match{StartedAt: r.now(), Layout: layout, Players: players}
	if err := db.Create(&match).Error; err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	r.matchID = match.ID
	r.logger.Info().Uint("match", match.ID).Str("layout", layout).Msg("Recording match")

	return r, nil
}

// MatchID returns the primary key of the running match
func (r *Recorder) MatchID() uint {
	return r.matchID
}

// EventTypes implements event.Handler
func (r *Recorder) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventRoundStarted,
		event.EventRoundEnded,
		event.EventProjectileFired,
		event.EventDamageTaken,
		event.EventTankDestroyed,
		event.EventPickupCollected,
	}
}

// HandleEvent implements event.Handler
func (r *Recorder) HandleEvent(ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.RoundPayload:
		if ev.Type == event.EventRoundStarted {
			r.startRound(ev.Tick, p)
		} else {
			r.endRound(ev.Tick, p)
		}

	case *event.ProjectileFiredPayload:
		r.shots = append(r.shots, ShotEvent{
			Time:    r.now(),
			MatchID: r.matchID,
			Round:   r.roundNumber,
			Tick:    ev.Tick,
			Slot:    p.Spawn.Owner,
			Speed:   p.Spawn.Speed(),
			PosX:    p.Spawn.Position.X,
			PosZ:    p.Spawn.Position.Z,
			Yaw:     p.Spawn.Yaw,
		})

	case *event.DamagePayload:
		if p.Attacker >= 0 {
			r.lastAttacker[p.Slot] = p.Attacker
		}
		r.damage = append(r.damage, DamageEvent{
			Time:     r.now(),
			MatchID:  r.matchID,
			Round:    r.roundNumber,
			Tick:     ev.Tick,
			Victim:   p.Slot,
			Attacker: slotOrNull(p.Attacker),
			Source:   p.Source,
			Raw:      p.Raw,
			Applied:  p.Applied,
			Health:   p.Health,
		})

	case *event.TankPayload:
		if ev.Type != event.EventTankDestroyed {
			return
		}
		killer := -1
		if a, ok := r.lastAttacker[p.Slot]; ok && a != p.Slot {
			killer = a
		}
		delete(r.lastAttacker, p.Slot)
		r.kills = append(r.kills, KillEvent{
			Time:    r.now(),
			MatchID: r.matchID,
			Round:   r.roundNumber,
			Tick:    ev.Tick,
			Victim:  p.Slot,
			Killer:  slotOrNull(killer),
			PosX:    p.Position.X,
			PosZ:    p.Position.Z,
		})

	case *event.PickupPayload:
		r.pickups = append(r.pickups, PickupEvent{
			Time:      r.now(),
			MatchID:   r.matchID,
			Round:     r.roundNumber,
			Tick:      ev.Tick,
			Slot:      p.Slot,
			Pad:       p.Pad,
			Kind:      p.Kind.String(),
			Magnitude: p.Magnitude,
		})
	}
}

func (r *Recorder) startRound(tick uint64, p *event.RoundPayload) {
	r.roundNumber = p.Round
	clear(r.lastAttacker)

	round := &Round{
		MatchID:   r.matchID,
		Number:    p.Round,
		StartTick: tick,
		StartedAt: r.now(),
	}
	if err := r.db.Create(round).Error; err != nil {
		r.logger.Error().Err(err).Int("round", p.Round).Msg("Failed to record round start")
		return
	}
	r.round = round
}

func (r *Recorder) endRound(tick uint64, p *event.RoundPayload) {
	if err := r.Flush(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to flush round events")
	}
	if r.round == nil {
		return
	}

	r.round.EndTick = tick
	r.round.EndedAt = sql.NullTime{Time: r.now(), Valid: true}
	r.round.Winner = slotOrNull(p.Winner)
	if err := r.db.Save(r.round).Error; err != nil {
		r.logger.Error().Err(err).Int("round", p.Round).Msg("Failed to record round end")
	}
	r.round = nil
}

// Flush writes all buffered event rows in one transaction
// On failure the buffered rows are discarded and the error reports how many
func (r *Recorder) Flush() error {
	if len(r.shots)+len(r.damage)+len(r.kills)+len(r.pickups) == 0 {
		return nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(r.shots) > 0 {
			if err := tx.CreateInBatches(r.shots, 500).Error; err != nil {
				return err
			}
		}
		if len(r.damage) > 0 {
			if err := tx.CreateInBatches(r.damage, 500).Error; err != nil {
				return err
			}
		}
		if len(r.kills) > 0 {
			if err := tx.CreateInBatches(r.kills, 500).Error; err != nil {
				return err
			}
		}
		if len(r.pickups) > 0 {
			if err := tx.CreateInBatches(r.pickups, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
	// Buffers are cleared either way; a batch that failed once fails again
	pending := len(r.shots) + len(r.damage) + len(r.kills) + len(r.pickups)
	r.shots = r.shots[:0]
	r.damage = r.damage[:0]
	r.kills = r.kills[:0]
	r.pickups = r.pickups[:0]

	if err != nil {
		return fmt.Errorf("failed to write events, %d rows dropped: %w", pending, err)
	}
	return nil
}

// Close flushes pending rows, stamps the match end and releases the connection
func (r *Recorder) Close() error {
	flushErr := r.Flush()

	err := r.db.Model(&Match{}).Where("id = ?", r.matchID).
		Update("ended_at", sql.NullTime{Time: r.now(), Valid: true}).Error
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to stamp match end")
	}

	sqlDB, dbErr := r.db.DB()
	if dbErr == nil {
		dbErr = sqlDB.Close()
	}

	if flushErr != nil {
		return flushErr
	}
	return dbErr
}

func slotOrNull(slot int) sql.NullInt32 {
	if slot < 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(slot), Valid: true}
}
