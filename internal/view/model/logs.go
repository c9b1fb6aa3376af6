package model

type LogItem struct {
	Bytes []byte
}

type LogChan chan *LogItem

// LogsBuffer collects log lines for the logs page.
type LogsBuffer struct {
	LogChan
}

func NewLogsBuffer() *LogsBuffer {
	return &LogsBuffer{
		LogChan: make(LogChan, 500),
	}
}

// Write implement io Writer interface. Lines are dropped while the buffer is
// full so logging never blocks on the UI.
func (l *LogsBuffer) Write(p []byte) (int, error) {
	item := &LogItem{Bytes: append([]byte(nil), p...)}
	select {
	case l.LogChan <- item:
	default:
	}
	return len(p), nil
}
