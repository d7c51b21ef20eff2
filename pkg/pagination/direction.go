package pagination

import "fmt"

// Direction tells whether a cursor anchors the start of a forward page
// or the end of a backward page.
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Prev:
		return "prev"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case Next, Prev:
		return []byte(d.String()), nil
	default:
		return nil, fmt.Errorf("unknown direction %d", int(d))
	}
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "next":
		*d = Next
	case "prev":
		*d = Prev
	default:
		return &DecodeError{Kind: UnknownDirection}
	}
	return nil
}
