package menubar

// Key names the keys the bar reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeySpace
	KeyEscape
	KeyHome
	KeyEnd
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyEnter:  "enter",
	KeySpace:  "space",
	KeyEscape: "escape",
	KeyHome:   "home",
	KeyEnd:    "end",
	KeyLeft:   "left",
	KeyUp:     "up",
	KeyRight:  "right",
	KeyDown:   "down",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Direction selects the target of MoveFocus within a sibling set.
type Direction int

const (
	Next Direction = iota
	Prev
	First
	Last
)
