package scoreboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tank-arena/event"
)

const (
	// AppName is the gdata application directory
	AppName = "tank_arena"

	scoreObject   = "scoreboard"
	scoreProperty = "standings.yaml"
)

// Standings is the persisted all-time record
type Standings struct {
	Rounds   int       `yaml:"rounds"`
	Draws    int       `yaml:"draws"`
	Wins     []int     `yaml:"wins"` // Indexed by slot
	LastPlay time.Time `yaml:"last_play"`
}

// Board keeps all-time standings across program runs
// A nil manager keeps standings in memory only
type Board struct {
	mu        sync.Mutex
	manager   *gdata.Manager
	standings Standings
	logger    zerolog.Logger
	now       func() time.Time
}

// Open loads standings from the platform data directory
// Storage failures degrade to an in-memory board and are logged, not returned
func Open(appName string, log zerolog.Logger) *Board {
	b := &Board{
		logger: log.With().Str("component", "scoreboard").Logger(),
		now:    time.Now,
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		b.logger.Warn().Err(err).Msg("Scoreboard storage unavailable, standings will not persist")
		return b
	}
	b.manager = manager

	if err := b.Load(); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to load standings, starting fresh")
		b.standings = Standings{}
	}
	return b
}

// NewMemoryBoard creates a board that never touches disk
func NewMemoryBoard() *Board {
	return &Board{logger: zerolog.Nop(), now: time.Now}
}

// Load replaces the in-memory standings with the stored copy, if any
func (b *Board) Load() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.manager == nil || !b.manager.ObjectPropExists(scoreObject, scoreProperty) {
		return nil
	}

	data, err := b.manager.LoadObjectProp(scoreObject, scoreProperty)
	if err != nil {
		return fmt.Errorf("failed to read standings: %w", err)
	}

	var s Standings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse standings: %w", err)
	}
	b.standings = s
	return nil
}

// Save writes standings to the platform data directory
func (b *Board) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saveLocked()
}

func (b *Board) saveLocked() error {
	if b.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(b.standings)
	if err != nil {
		return fmt.Errorf("failed to encode standings: %w", err)
	}
	if err := b.manager.SaveObjectProp(scoreObject, scoreProperty, data); err != nil {
		return fmt.Errorf("failed to write standings: %w", err)
	}
	return nil
}

// RecordRound adds one finished round; winner < 0 is a draw
func (b *Board) RecordRound(winner int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.standings.Rounds++
	b.standings.LastPlay = b.now()
	if winner < 0 {
		b.standings.Draws++
	} else {
		for len(b.standings.Wins) <= winner {
			b.standings.Wins = append(b.standings.Wins, 0)
		}
		b.standings.Wins[winner]++
	}

	if err := b.saveLocked(); err != nil {
		b.logger.Error().Err(err).Msg("Failed to persist standings")
	}
}

// Standings returns a copy of the current record
func (b *Board) Standings() Standings {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.standings
	s.Wins = append([]int(nil), b.standings.Wins...)
	return s
}

// Reset clears all standings and persists the empty record
func (b *Board) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.standings = Standings{}
	return b.saveLocked()
}

// Persistent reports whether standings survive the process
func (b *Board) Persistent() bool {
	return b.manager != nil
}

// EventTypes implements event.Handler
func (b *Board) EventTypes() []event.EventType {
	return []event.EventType{event.EventRoundEnded}
}

// HandleEvent implements event.Handler
func (b *Board) HandleEvent(ev event.GameEvent) {
	if p, ok := ev.Payload.(*event.RoundPayload); ok {
		b.RecordRound(p.Winner)
	}
}

// Log writes the standings as one structured line
func (s Standings) Log(log zerolog.Logger) {
	arr := zerolog.Arr()
	for _, w := range s.Wins {
		arr.Int(w)
	}
	log.Info().Int("rounds", s.Rounds).Int("draws", s.Draws).Array("wins", arr).Msg("All-time standings")
}
