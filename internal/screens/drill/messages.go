package drill

// sessionStartedMsg is sent once the selector has ordered the queue.
type sessionStartedMsg struct {
	Err error
}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}

// resumeMsg is returned by the quit dialog when the learner keeps going.
type resumeMsg struct{}

// tickMsg refreshes the elapsed time. gen identifies the tick chain.
type tickMsg struct {
	gen int
}
