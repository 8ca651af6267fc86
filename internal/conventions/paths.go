package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default lybic data directory name (relative to home).
	DefaultDataDir = ".lybic"
	// ProfileFile is the CLI connection profile filename.
	ProfileFile = "config.yaml"
	// JournalFile is the action journal database filename.
	JournalFile = "journal.db"
	// EnvFile is the dotenv file loaded by the CLI from the working directory.
	EnvFile = ".env"
)

// Environment variables read by the CLI.
const (
	EnvOrgID    = "LYBIC_ORG_ID"
	EnvAPIKey   = "LYBIC_API_KEY"
	EnvEndpoint = "LYBIC_API_ENDPOINT"
)

// DataDir returns the lybic data directory inside a home directory.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir)
}

// ProfilePath returns the path of the CLI profile inside a data directory.
func ProfilePath(dataDir string) string {
	return filepath.Join(dataDir, ProfileFile)
}

// JournalPath returns the path of the action journal inside a data directory.
func JournalPath(dataDir string) string {
	return filepath.Join(dataDir, JournalFile)
}
