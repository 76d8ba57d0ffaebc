package theme

// Scheme is a display appearance.
type Scheme string

const (
	Light  Scheme = "light"
	Dark   Scheme = "dark"
	System Scheme = "system"
)

func Parse(s string) (Scheme, bool) {
	switch Scheme(s) {
	case Light, Dark, System:
		return Scheme(s), true
	default:
		return "", false
	}
}

// Resolve derives the effective appearance from the platform report
// and the user override. It is recomputed per request instead of
// mutating any shared styling state: the override wins unless it
// defers to the system, and anything but an explicit dark report
// resolves light.
func Resolve(system, override Scheme) Scheme {
	if override == Light || override == Dark {
		return override
	}
	if system == Dark {
		return Dark
	}
	return Light
}
