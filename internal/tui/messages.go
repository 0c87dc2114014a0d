package tui

// replyMsg carries the assistant's answer back to the update loop.
type replyMsg struct {
	err   error
	reply string
}
