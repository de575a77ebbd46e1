package events

import "fmt"

// StateMsg tells the model the shared state changed. The model reads the
// current state itself, so a late message is harmless.
type StateMsg struct{}

// StatusMsg reports the outcome of a background action.
type StatusMsg struct {
	Text string
	Err  error
}

// Describe renders the status for the footer.
func (m StatusMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("error: %v", m.Err)
	}
	return m.Text
}
