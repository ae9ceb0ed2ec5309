package event

// Type is the kind of input event a backend reports.
type Type int

const (
	Press   Type = iota // key went down
	Release             // key went up
	Hold                // key still down, repeated every frame
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}
