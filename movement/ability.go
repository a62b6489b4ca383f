package movement

// Latch is armed by ground contact and disarmed by the ability it gates.
type Latch uint8

const (
	Armed Latch = iota
	Disarmed
)

func (l Latch) String() string {
	if l == Armed {
		return "armed"
	}
	return "disarmed"
}

// DashPhase is the force-override window of a dash.
type DashPhase uint8

const (
	DashIdle DashPhase = iota
	DashActive
)

// DashCharge tracks the post-dash cooldown.
type DashCharge uint8

const (
	ChargeReady DashCharge = iota
	ChargeCooling
)

// DashStatus is the coarse dash state shown in logs and overlays.
type DashStatus string

const (
	DashStatusReady       DashStatus = "ready"
	DashStatusActive      DashStatus = "active"
	DashStatusCoolingDown DashStatus = "cooling_down"
)

// DashState keeps the window, the cooldown and the floor latch as separate
// fields so each timer only ever touches its own part.
type DashState struct {
	Phase  DashPhase
	Charge DashCharge
	Floor  Latch
}

func (d DashState) CanStart() bool {
	return d.Charge == ChargeReady && d.Floor == Armed
}

func (d DashState) Start() DashState {
	return DashState{Phase: DashActive, Charge: ChargeCooling, Floor: Disarmed}
}

func (d DashState) End() DashState {
	d.Phase = DashIdle
	return d
}

func (d DashState) Recharge() DashState {
	d.Charge = ChargeReady
	return d
}

func (d DashState) Status() DashStatus {
	switch {
	case d.Phase == DashActive:
		return DashStatusActive
	case d.Charge == ChargeCooling || d.Floor == Disarmed:
		return DashStatusCoolingDown
	}
	return DashStatusReady
}

// Abilities is the whole cooldown state owned by one controller.
type Abilities struct {
	Dash     DashState
	WallJump Latch
}

// SpawnAbilities is the state a freshly spawned character starts with.
func SpawnAbilities() Abilities {
	return Abilities{
		Dash:     DashState{Phase: DashIdle, Charge: ChargeReady, Floor: Armed},
		WallJump: Armed,
	}
}

// Land re-arms both floor latches. It is the only way they are re-armed.
func (a Abilities) Land() Abilities {
	a.Dash.Floor = Armed
	a.WallJump = Armed
	return a
}

func (a Abilities) CanWallJump() bool {
	return a.WallJump == Armed
}

func (a Abilities) IsDashing() bool { return a.Dash.Phase == DashActive }
func (a Abilities) DashReady() bool { return a.Dash.Charge == ChargeReady }
func (a Abilities) GroundedSinceLastDash() bool { return a.Dash.Floor == Armed }
func (a Abilities) GroundedSinceLastWallJump() bool {
	return a.WallJump == Armed
}
