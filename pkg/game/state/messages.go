package state

// MaxMessages is the number of lines kept in the message log
const MaxMessages = 5

// Messages is the player-facing message log
type Messages struct {
	lines []string
}

// Add appends a message, keeping only the last MaxMessages
func (m *Messages) Add(msg string) {
	m.lines = append(m.lines, msg)

	if len(m.lines) > MaxMessages {
		m.lines = m.lines[len(m.lines)-MaxMessages:]
	}
}

// Clear removes all messages
func (m *Messages) Clear() {
	m.lines = nil
}

// Lines returns a copy of the log, oldest first
func (m *Messages) Lines() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}
