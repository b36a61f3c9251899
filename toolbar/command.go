package toolbar

import "fmt"

// Command names a toolbar action dispatched to the controller.
type Command int

const (
	Bold Command = iota
	Italic
	Header
	List
	AddLink
	RemoveLink

	// Change carries a replacement document state. It is dispatched by the
	// editor surface and never rendered as a button.
	Change
)

var buttons = []Command{Bold, Italic, Header, List, AddLink, RemoveLink}

// Commands returns the rendered commands in toolbar order.
func Commands() []Command {
	return append([]Command(nil), buttons...)
}

func (c Command) String() string {
	switch c {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Header:
		return "header"
	case List:
		return "list"
	case AddLink:
		return "addLink"
	case RemoveLink:
		return "removeLink"
	case Change:
		return "change"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Label is the default button text of c.
func (c Command) Label() string {
	switch c {
	case Bold:
		return "B"
	case Italic:
		return "I"
	case Header:
		return "H2"
	case List:
		return "• List"
	case AddLink:
		return "Link"
	case RemoveLink:
		return "Unlink"
	default:
		return c.String()
	}
}
