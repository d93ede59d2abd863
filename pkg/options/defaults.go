package options

const (
	// DefaultDataDir is used when no directory is supplied to the store or server CLI.
	DefaultDataDir = "."

	// DefaultSegmentPrefix is the filename prefix used for segment files.
	// A segment file is named "<prefix>-<index>.ember".
	DefaultSegmentPrefix = "segment"

	// DefaultAddr is the default host:port the server listens on and the client dials.
	DefaultAddr = "127.0.0.1:4000"

	// DefaultEngine names the native log-structured engine.
	DefaultEngine = "kvs"

	// BoltEngine names the bbolt-backed alternate engine.
	BoltEngine = "bolt"
)

// defaultOptions holds the baseline configuration applied before any OptionFunc runs.
var defaultOptions = Options{
	DataDir:       DefaultDataDir,
	SegmentPrefix: DefaultSegmentPrefix,
	Addr:          DefaultAddr,
	Engine:        DefaultEngine,
}

// NewDefaultOptions returns a copy of Ember's baseline configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
