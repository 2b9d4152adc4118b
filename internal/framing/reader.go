package framing

// Inbox accumulates bytes read off a non-blocking socket and peels
// complete frames off the front as they become available, mirroring
// process_player_packets' buffer-until-a-full-packet-is-available loop.
type Inbox struct {
	buf       []byte
	threshold int
}

// NewInbox returns an empty inbox. threshold is NoCompression until the
// connection negotiates a SetCompression threshold.
func NewInbox() *Inbox {
	return &Inbox{threshold: NoCompression}
}

// SetThreshold updates the compression threshold frames are decoded
// with, called once after a SetCompression packet has been processed.
func (b *Inbox) SetThreshold(threshold int) {
	b.threshold = threshold
}

// Feed appends freshly read socket bytes to the inbox.
func (b *Inbox) Feed(p []byte) {
	b.buf = append(b.buf, p...)
}

// Next pulls the next complete frame's id and payload off the inbox. ok
// is false once the remaining buffered bytes don't yet form a complete
// frame; callers should stop draining and wait for more socket data.
func (b *Inbox) Next() (id int32, payload []byte, ok bool, err error) {
	consumed, id, payload, err := DecodeFrame(b.buf, b.threshold)
	if err == ErrNeedMore {
		return 0, nil, false, nil
	}
	if err != nil {
		return 0, nil, false, err
	}
	b.buf = b.buf[consumed:]
	return id, payload, true, nil
}

// Pending reports how many undrained bytes remain buffered.
func (b *Inbox) Pending() int {
	return len(b.buf)
}
