package mqtt

import "log"

// queuedMsg is a serialized MQTT message held for replay after the
// broker connection comes back.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog is a bounded FIFO of messages queued while disconnected.
// When full, the oldest message is dropped: for a monitoring stream the
// newest decisions matter most. Not safe for concurrent use — the
// caller must synchronize.
type backlog struct {
	msgs    []queuedMsg
	limit   int
	dropped int
}

func newBacklog(limit int) *backlog {
	return &backlog{limit: limit}
}

func (b *backlog) add(msg queuedMsg) {
	if len(b.msgs) == b.limit {
		if b.dropped == 0 {
			log.Printf("mqtt: backlog full (%d messages), dropping oldest", b.limit)
		}
		b.dropped++
		copy(b.msgs, b.msgs[1:])
		b.msgs[len(b.msgs)-1] = msg
		return
	}
	b.msgs = append(b.msgs, msg)
}

// flush returns all queued messages oldest-first and empties the
// backlog.
func (b *backlog) flush() []queuedMsg {
	if len(b.msgs) == 0 {
		return nil
	}
	if b.dropped > 0 {
		log.Printf("mqtt: %d messages were dropped while disconnected", b.dropped)
	}
	out := b.msgs
	b.msgs = nil
	b.dropped = 0
	return out
}

func (b *backlog) len() int {
	return len(b.msgs)
}
