package config

import "time"

const (
	// DefaultRebar is the build tool looked up on PATH
	DefaultRebar = "rebar"
	// DefaultErl is the Erlang runtime looked up on PATH
	DefaultErl = "erl"
	// DefaultExtraPath is appended to PATH for child processes; editor-launched processes often lack it
	DefaultExtraPath = "/usr/local/bin"
	// DefaultSentinelSuite is a suite name that never exists, so rebar compiles and runs nothing
	DefaultSentinelSuite = "erlt_unexisting_test"
	// DefaultEunitDir is where rebar places compiled eunit beams, relative to the build root
	DefaultEunitDir = ".eunit"
	// DefaultTimeout of zero leaves external commands unbounded
	DefaultTimeout time.Duration = 0
	// DefaultConfigFile is read from the working directory when present
	DefaultConfigFile = "erlt.yaml"
	// DefaultEnvFile is loaded from the working directory when present
	DefaultEnvFile = ".env"
	// DefaultHistoryDir is the history directory, relative to the build root
	DefaultHistoryDir = ".erlt"
	// DefaultHistoryFile is the history file name
	DefaultHistoryFile = "history.json"
	// DefaultHistoryLimit caps the number of stored runs
	DefaultHistoryLimit = 50
)

// DefaultPathsToIgnore are the directories skipped when listing tests
var DefaultPathsToIgnore = []string{
	"_build",
	"deps",
	"ebin",
	".eunit",
	".erlt",
	"_checkouts",
	"node_modules",
}
