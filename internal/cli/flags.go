package cli

import (
	"time"

	"erlt/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	// Global
	ConfigFile string
	Rebar      string
	Erl        string
	Timeout    time.Duration
	NoProgress bool
	NoHistory  bool

	// run
	File   string
	Offset int
	Line   int
	Col    int
	Stdin  bool

	// list
	NameFilter string

	// history
	Root  string
	Plain bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile: f.ConfigFile,
		Rebar:      f.Rebar,
		Erl:        f.Erl,
		Timeout:    f.Timeout,
		NoProgress: f.NoProgress,
		NoHistory:  f.NoHistory,
	}
}
