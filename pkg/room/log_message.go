package room

import (
	"strings"

	"flip7-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping the most recent ones
func (d *Dealer) addLogMessages(messages ...*playable.LogMessage) {
	d.logLock.Lock()
	defer d.logLock.Unlock()

	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// recentLogMessages returns a copy of the buffered log messages
func (d *Dealer) recentLogMessages() []*playable.LogMessage {
	d.logLock.Lock()
	defer d.logLock.Unlock()

	m := make([]*playable.LogMessage, len(d.logMessages))
	copy(m, d.logMessages)
	return m
}

// historyResponse replays the buffered messages for someone who just joined
func historyResponse(messages []*playable.LogMessage) *playable.Response {
	lines := make([]string, 0, len(messages)+1)
	lines = append(lines, "--- last game ---")
	for _, m := range messages {
		lines = append(lines, m.Message)
	}

	return playable.NewResponse("history", messages, "%s", strings.Join(lines, "\n"))
}
