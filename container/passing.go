package container

// Passing selects who releases a wrapped handle and when.
type Passing int

const (
	// Automatic handles are owned by the host for the current call.
	Automatic Passing = iota
	// Constant handles are Automatic handles the extension must not mutate.
	Constant
	// Manual handles are owned by this layer and freed exactly once.
	Manual
	// Shared handles are reference-counted by the host; a drop disowns.
	Shared
)

func (p Passing) String() string {
	switch p {
	case Automatic:
		return "Automatic"
	case Constant:
		return "Constant"
	case Manual:
		return "Manual"
	case Shared:
		return "Shared"
	}
	return "Unknown"
}

// lifecycle tracks release responsibility for one wrapper. Moves and Pass
// clear owned so the release hook fires at most once per responsibility.
type lifecycle struct {
	mode  Passing
	owned bool
}

func lifecycleFor(mode Passing) lifecycle {
	return lifecycle{mode: mode, owned: mode == Manual || mode == Shared}
}

// drop invokes the release hook matching the mode, once.
func (lc *lifecycle) drop(free, disown func()) {
	if !lc.owned {
		return
	}
	lc.owned = false
	switch lc.mode {
	case Manual:
		free()
	case Shared:
		disown()
	}
}

// abandon transfers release responsibility away from this wrapper.
func (lc *lifecycle) abandon() { lc.owned = false }
