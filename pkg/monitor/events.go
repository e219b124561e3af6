package monitor

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// State carries a cache index (uint16) followed by an encoded
	// register state, compressed if the hub compresses.
	State Type = iota
	// StateCache carries only the cache index of a state the client
	// has already received.
	StateCache
	// StateCacheSync carries every cached state, sent on connect as
	// repeated (length uint16, index uint16, data) records.
	StateCacheSync
	// ServerInfo carries the client count followed by an (ID, average
	// latency uint16) pair per client.
	ServerInfo
	// ClientClosing carries the ID of a client that disconnected.
	ClientClosing
)

// Event is the first byte of a message sent by a client.
type Event = uint8

const (
	// KeepAlive asks the hub for a ServerInfo message.
	KeepAlive Event = 254
	// Closing tells the hub the client is disconnecting.
	Closing Event = 255
)
