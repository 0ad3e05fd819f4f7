// Package config provides configuration management for treepp. It reads the
// environment through viper and validates the result. Command-line flags are
// applied on top by the commands package.
//
// # Environment Variables
//
//	TREEPP_VERBOSE      Verbosity level, a number or a run of 'v's ("vv" = 2)
//	TREEPP_LOG_FORMAT   Log encoding: json|console (default: json)
//	TREEPP_NO_COLOR     Disable colored console output (true/false)
//	TREEPP_NO_PROGRESS  Disable the terminal status line (true/false)
//	TREEPP_QUIET        Do not print the summary (true/false)
//
// # What is not configurable
//
// The report is always written to tree_plus_plus.txt in the working
// directory, and the ignore rules are compiled in (see pkg/filter).
package config
