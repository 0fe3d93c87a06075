package parameter

import "time"

// Durable effect multipliers, fixed per kind regardless of pickup count
const (
	// EffectSpeedMultiplier scales movement and turning while Speed is active
	EffectSpeedMultiplier = 1.4

	// EffectResistMultiplier scales incoming damage while Barrier is active
	EffectResistMultiplier = 0.1
)

// Pickup magnitudes
const (
	// PickupHealFraction is the fraction of max health restored by a medkit
	PickupHealFraction = 0.5

	// PickupSpeedDuration is how long a speed pickup lasts
	PickupSpeedDuration = 10 * time.Second

	// PickupBarrierDuration is how long a barrier pickup lasts
	PickupBarrierDuration = 10 * time.Second

	// PickupDynamiteDamage is the raw damage of a dynamite pickup before resist
	PickupDynamiteDamage = 99999999.0

	// PickupSpawnInterval is the delay between an empty pad and its next item
	PickupSpawnInterval = 8 * time.Second

	// PickupRadius is the overlap radius of an item on a pad
	PickupRadius = 1.0
)
