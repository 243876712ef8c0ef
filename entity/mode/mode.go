package mode

// Mode is how the estimators are laid out on the host surface. It is fixed
// for the lifetime of a session.
type Mode uint8

const (
	Embedded Mode = iota
	Window
)

func FromWindowFlag(window bool) Mode {
	if window {
		return Window
	}
	return Embedded
}

func (m Mode) String() string {
	if m == Window {
		return "window"
	}
	return "embedded"
}
