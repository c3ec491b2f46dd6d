package game

// Effect is a visual effect flag the rules toggle on the renderer.
type Effect uint8

const (
	EffectFlash Effect = iota
	EffectDamage

	effectCount
)

func (e Effect) String() string {
	switch e {
	case EffectFlash:
		return "flash"
	case EffectDamage:
		return "damage"
	}
	return "effect(?)"
}

// Renderer is the part of the render collaborator the game logic drives.
type Renderer interface {
	SetEffect(effect Effect, on bool)
	Effect(effect Effect) bool
}

// EffectFlags is a plain Renderer implementation meant to be embedded by renderers.
type EffectFlags struct {
	flags [effectCount]bool
}

func (f *EffectFlags) SetEffect(effect Effect, on bool) {
	if effect < effectCount {
		f.flags[effect] = on
	}
}

func (f *EffectFlags) Effect(effect Effect) bool {
	return effect < effectCount && f.flags[effect]
}
