package types

type RunMode string

const (
	// ModeLocal is the mode for running both the API server and the webhook consumer locally
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
	// ModeConsumer is the mode for running just the webhook consumer
	ModeConsumer RunMode = "consumer"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// PubSubType is the transport backing the webhook event pipeline
type PubSubType string

const (
	MemoryPubSub PubSubType = "memory"
)
