package trainer

import "io"

// uiLogWriter feeds log output into the channel read by UIModel. Writes never
// block the logger: when the UI falls behind, lines are dropped from the panel
// while still reaching the log file.
type uiLogWriter struct {
	ch chan<- string
}

// NewUILogWriter returns an io.Writer suitable for log.New, forwarding each write to ch
func NewUILogWriter(ch chan<- string) io.Writer {
	if ch == nil {
		panic("UILogWriter: channel cannot be nil")
	}
	return &uiLogWriter{ch: ch}
}

func (w *uiLogWriter) Write(p []byte) (int, error) {
	select {
	case w.ch <- string(p):
	default:
	}
	return len(p), nil
}
