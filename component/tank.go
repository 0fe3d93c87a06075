package component

// TankState is the aggregate owned by exactly one tank instance
// Subsystems receive pointers to the parts they own or read
type TankState struct {
	Slot      int
	Active    bool
	Driving   bool // Engine audio state, true when move or turn input exceeds the idle threshold
	Health    HealthComponent
	Charge    ChargeComponent
	Effects   EffectComponent
	Modifiers ModifierComponent
	Transform TransformComponent
}
