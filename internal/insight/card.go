package insight

// State is the observable lifecycle of one exemplar's commentary.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Card is the presentation-side state for an expandable exemplar entry.
// It is fetched at most once while loaded; a failure collapses the card and
// allows a later retry.
type Card struct {
	Request  Request
	State    State
	Expanded bool
	Text     string
	Err      error
}

// NewCard returns an idle, collapsed card.
func NewCard(req Request) *Card {
	return &Card{Request: req}
}

// Toggle handles a click. It returns true when the caller must start a fetch
// and later call Resolve.
func (c *Card) Toggle() bool {
	switch c.State {
	case StateLoaded:
		c.Expanded = !c.Expanded
		return false
	case StateLoading:
		return false
	default:
		c.State = StateLoading
		c.Expanded = true
		c.Err = nil
		return true
	}
}

// Resolve completes a fetch started by Toggle.
func (c *Card) Resolve(text string, err error) {
	if c.State != StateLoading {
		return
	}
	if err != nil {
		c.State = StateFailed
		c.Expanded = false
		c.Err = err
		return
	}
	c.State = StateLoaded
	c.Text = text
}
