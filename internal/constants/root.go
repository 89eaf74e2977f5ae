package constants

import "time"

const (
	AppName            = "homeplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/homeplan/homeplan.db"
	Version            = "v0.3.0"

	// ConnectionEnvVar overrides the keyring when selecting a PostgreSQL backend
	ConnectionEnvVar = "HOMEPLAN_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "homeplan-"
	BackupFileSuffix = ".db"

	// Library lookup constants
	LibraryRetryAttempts = 3
	LibraryRetryDelay    = 100 * time.Millisecond
	LibraryRetryMaxDelay = 2 * time.Second
	LibraryCacheSize     = 512

	// HTTP server defaults
	DefaultListenAddr = "127.0.0.1:8787"
	ShutdownTimeout   = 5 * time.Second
)
