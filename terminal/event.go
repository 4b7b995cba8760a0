package terminal

import "github.com/gdamore/tcell/v2"

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt // Synthetic wake-up posted by the program
	EventClosed    // Screen finalized, no more events
)

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyCtrlC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Event represents a terminal input event
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Width  int // For EventResize
	Height int // For EventResize
}

var keyFromTcell = map[tcell.Key]Key{
	tcell.KeyEscape:  KeyEscape,
	tcell.KeyEnter:   KeyEnter,
	tcell.KeyTab:     KeyTab,
	tcell.KeyBacktab: KeyBacktab,
	tcell.KeyCtrlC:   KeyCtrlC,
	tcell.KeyUp:      KeyUp,
	tcell.KeyDown:    KeyDown,
	tcell.KeyLeft:    KeyLeft,
	tcell.KeyRight:   KeyRight,
}

// translate converts a tcell event; nil means the screen was finalized
func translate(ev tcell.Event) Event {
	switch e := ev.(type) {
	case nil:
		return Event{Type: EventClosed}
	case *tcell.EventKey:
		if e.Key() == tcell.KeyRune {
			return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune()}
		}
		if k, ok := keyFromTcell[e.Key()]; ok {
			return Event{Type: EventKey, Key: k}
		}
		return Event{Type: EventKey, Key: KeyNone}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	}
	return Event{Type: EventNone}
}

// toTcell builds the tcell event injected by PostEvent
func toTcell(ev Event) tcell.Event {
	switch ev.Type {
	case EventResize:
		return tcell.NewEventResize(ev.Width, ev.Height)
	case EventKey:
		if ev.Key == KeyRune {
			return tcell.NewEventKey(tcell.KeyRune, ev.Rune, tcell.ModNone)
		}
		for tk, k := range keyFromTcell {
			if k == ev.Key {
				return tcell.NewEventKey(tk, 0, tcell.ModNone)
			}
		}
	}
	return tcell.NewEventInterrupt(nil)
}
