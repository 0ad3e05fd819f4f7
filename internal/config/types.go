package config

const (
	// EnvPrefix prefixes every environment variable read by Load
	EnvPrefix = "TREEPP"

	// OutputFileName is the report written to the working directory
	OutputFileName = "tree_plus_plus.txt"

	// DefaultLogFormat is used when TREEPP_LOG_FORMAT is not set
	DefaultLogFormat = "json"

	// MaxVerbosity is the highest verbosity level that changes anything
	MaxVerbosity = 3
)
