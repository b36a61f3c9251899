package controller

// Mode is the controller's interaction state.
type Mode int

const (
	// Editing routes input to the text surface.
	Editing Mode = iota
	// LinkPrompt routes input to the URL field; editing is paused underneath.
	LinkPrompt
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case LinkPrompt:
		return "link-prompt"
	default:
		return "unknown"
	}
}

// LinkSession is the state of the URL prompt. It exists only while the
// controller is in LinkPrompt.
type LinkSession struct {
	Active bool
	URL    string
}
