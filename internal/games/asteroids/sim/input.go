package sim

import "github.com/vovakirdan/tui-asteroids/internal/dispatch"

// Control flag names accepted by OnPress and OnRelease.
const (
	FlagThrust = "thrust"
	FlagLeft   = "left"
	FlagRight  = "right"
	FlagFire   = "fire"
	FlagSlow   = "slow"
)

// Flags lists every control flag name.
var Flags = []string{FlagThrust, FlagLeft, FlagRight, FlagFire, FlagSlow}

// OnPress sets one control flag. Unknown names leave w unchanged.
func OnPress(w World, flag string) World {
	return setFlag(w, flag, true)
}

// OnRelease clears one control flag. Unknown names leave w unchanged.
func OnRelease(w World, flag string) World {
	return setFlag(w, flag, false)
}

// ReleaseAll clears every control flag, as on focus loss.
func ReleaseAll(w World) World {
	w.Ship.Controls = Controls{}
	return w
}

func setFlag(w World, flag string, on bool) World {
	c := &w.Ship.Controls
	switch flag {
	case FlagThrust:
		c.Thrust = on
	case FlagLeft:
		c.Left = on
	case FlagRight:
		c.Right = on
	case FlagFire:
		c.Fire = on
	case FlagSlow:
		c.Slow = on
	}
	return w
}

// Press is the reducer form of OnPress.
func Press(flag string) dispatch.Reducer[World] {
	return func(w World, _ dispatch.Effects[World]) World {
		return OnPress(w, flag)
	}
}

// Release is the reducer form of OnRelease.
func Release(flag string) dispatch.Reducer[World] {
	return func(w World, _ dispatch.Effects[World]) World {
		return OnRelease(w, flag)
	}
}

// ReleaseAllFlags is the reducer form of ReleaseAll.
func ReleaseAllFlags() dispatch.Reducer[World] {
	return func(w World, _ dispatch.Effects[World]) World {
		return ReleaseAll(w)
	}
}
