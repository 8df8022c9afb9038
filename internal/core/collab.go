package core

// TransitionOptions describes an animated room change handed to a renderer.
type TransitionOptions struct {
	Direction Direction
	FromRoom  int
	ToRoom    int
	FromPath  []Point // Player positions in the old room (start, edge)
	ToPath    []Point // Player positions in the new room (edge, final)
	Before    *Frame
	After     *Frame
}

// EdgeOptions tunes the blocked-edge visual cue.
type EdgeOptions struct {
	Room int
	X, Y int
}

// IndicatorKind classifies combat feedback text.
type IndicatorKind string

const (
	IndicatorDamage   IndicatorKind = "damage"
	IndicatorMiss     IndicatorKind = "miss"
	IndicatorShield   IndicatorKind = "shield"
	IndicatorCooldown IndicatorKind = "cooldown"
	IndicatorRevive   IndicatorKind = "revive"
	IndicatorDefeat   IndicatorKind = "defeat"
	IndicatorInfo     IndicatorKind = "info"
)

// IndicatorOptions positions combat feedback text.
type IndicatorOptions struct {
	Kind IndicatorKind
	Room int
	X, Y int
}

// FlashOptions tunes a full-screen flash.
type FlashOptions struct {
	Color     Color
	Intensity float64
}

// Renderer is the presentation boundary. The simulation never draws itself;
// it asks the renderer for frames and visual cues.
type Renderer interface {
	Draw()
	CaptureGameplayFrame() *Frame
	StartRoomTransition(opts TransitionOptions) bool
	FlashEdge(dir Direction, opts EdgeOptions)
	ShowCombatIndicator(text string, opts IndicatorOptions)
	FlashScreen(opts FlashOptions)
}

// DialogMeta describes who is speaking.
type DialogMeta struct {
	Speaker string
	NPCID   string
}

// Dialog is the conversation boundary used by movement when the player bumps
// into an NPC or while a dialog is on screen.
type Dialog interface {
	ShowDialog(text string, meta DialogMeta)
	CloseDialog()
	Active() bool
	// NextPage advances the dialog and reports whether it closed.
	NextPage() bool
}

// Interactions runs post-move checks (pickups, switches) for the player's cell.
type Interactions interface {
	HandlePlayerInteractions()
}

// NopRenderer ignores every request. CaptureGameplayFrame returns nil and
// transitions never start, so moves commit synchronously.
type NopRenderer struct{}

func (NopRenderer) Draw()                                        {}
func (NopRenderer) CaptureGameplayFrame() *Frame                 { return nil }
func (NopRenderer) StartRoomTransition(TransitionOptions) bool   { return false }
func (NopRenderer) FlashEdge(Direction, EdgeOptions)             {}
func (NopRenderer) ShowCombatIndicator(string, IndicatorOptions) {}
func (NopRenderer) FlashScreen(FlashOptions)                     {}

var _ Renderer = NopRenderer{}
