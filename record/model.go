package record

import (
	"database/sql"
	"time"
)

// DatabaseModels lists every table migrated by the recorder
var DatabaseModels = []interface{}{
	&Match{},
	&Round{},
	&ShotEvent{},
	&DamageEvent{},
	&KillEvent{},
	&PickupEvent{},
}

// Match is one program run
type Match struct {
	ID        uint      `gorm:"primarykey;autoIncrement;"`
	StartedAt time.Time `gorm:"index:idx_match_started_at"`
	EndedAt   sql.NullTime
	Layout    string `gorm:"size:64"`
	Players   int
}

func (*Match) TableName() string {
	return "matches"
}

// Round is one spawn-to-survivor cycle within a match
type Round struct {
	ID        uint   `gorm:"primarykey;autoIncrement;"`
	MatchID   uint   `gorm:"index:idx_round_match_id"`
	Number    int    `gorm:"index:idx_round_number"`
	StartTick uint64 // Simulation tick of RoundStarted
	EndTick   uint64 // Simulation tick of RoundEnded, zero while running
	StartedAt time.Time
	EndedAt   sql.NullTime
	Winner    sql.NullInt32 // NULL on draw or while running
}

func (*Round) TableName() string {
	return "rounds"
}

// ShotEvent is one projectile launch
type ShotEvent struct {
	ID      uint `gorm:"primarykey;autoIncrement;"`
	Time    time.Time
	MatchID uint `gorm:"index:idx_shot_match_id"`
	Round   int  `gorm:"index:idx_shot_round"`
	Tick    uint64
	Slot    int
	Speed   float64 // Launch force
	PosX    float64
	PosZ    float64
	Yaw     float64
}

func (*ShotEvent) TableName() string {
	return "shot_events"
}

// DamageEvent is one damage application after resist
type DamageEvent struct {
	ID       uint `gorm:"primarykey;autoIncrement;"`
	Time     time.Time
	MatchID  uint `gorm:"index:idx_damage_match_id"`
	Round    int  `gorm:"index:idx_damage_round"`
	Tick     uint64
	Victim   int           `gorm:"index:idx_damage_victim"`
	Attacker sql.NullInt32 // NULL for environment damage
	Source   string        `gorm:"size:32"`
	Raw      float64
	Applied  float64
	Health   float64 // Victim health after application
}

func (*DamageEvent) TableName() string {
	return "damage_events"
}

// KillEvent is one death transition
type KillEvent struct {
	ID      uint `gorm:"primarykey;autoIncrement;"`
	Time    time.Time
	MatchID uint `gorm:"index:idx_kill_match_id"`
	Round   int  `gorm:"index:idx_kill_round"`
	Tick    uint64
	Victim  int
	Killer  sql.NullInt32 // Last attacker, NULL for environment or self-inflicted
	PosX    float64
	PosZ    float64
}

func (*KillEvent) TableName() string {
	return "kill_events"
}

// PickupEvent is one item collection
type PickupEvent struct {
	ID        uint `gorm:"primarykey;autoIncrement;"`
	Time      time.Time
	MatchID   uint `gorm:"index:idx_pickup_match_id"`
	Round     int  `gorm:"index:idx_pickup_round"`
	Tick      uint64
	Slot      int
	Pad       int
	Kind      string `gorm:"size:16"`
	Magnitude float64
}

func (*PickupEvent) TableName() string {
	return "pickup_events"
}
