package config

import "time"

// Parser defaults.
const (
	DefaultKeepDefinitions   = false
	DefaultKeepXrefs         = false
	DefaultKeepIntersections = false
	DefaultNameFromID        = false
	DefaultIgnoreSynonyms    = false
	DefaultProgressInterval  = 250 * time.Millisecond
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Telemetry defaults.
const (
	DefaultOTLPInsecure = false
	DefaultSampleRatio  = 0.0
)

// Output defaults.
const (
	DefaultOutputFormat  = "text"
	DefaultColor         = true
	DefaultTopNamespaces = 10
)
