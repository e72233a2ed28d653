// Package model defines shared data structures.
package model

import "time"

// CharacterStat holds the distribution statistics for a single character,
// stored as fractions in [0,1].
type CharacterStat struct {
	Average  float64
	MinRange float64
	MaxRange float64
}

// Credential is a username/password pair from a colon-delimited line.
type Credential struct {
	Username string
	Password string
}

// PrefixStat captures standalone and follow-on counts for a password prefix.
type PrefixStat struct {
	Prefix          string `json:"prefix"`
	StandaloneCount int    `json:"standalone_count"`
	FollowingCount  int    `json:"following_count"`
}

// ConvertConfig defines converter paths.
type ConvertConfig struct {
	InputPath  string
	OutputPath string
}

// CorpusConfig defines the corpus tree and analysis threshold.
type CorpusConfig struct {
	Root      string
	Threshold int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Last         int
	Distribution string
	Interactive  bool
}

// ScanSummary describes one recorded prefix-statistics run.
type ScanSummary struct {
	ScanID      int64
	StartedAt   time.Time
	Root        string
	Threshold   int
	Files       int
	Credentials int
}
