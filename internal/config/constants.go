package config

const (
	DefaultPort = 3000

	// DefaultDatabasePath is the default path for the SQLite database
	DefaultDatabasePath = "./ebooks.db"

	// DefaultUploadsDir holds uploaded covers and book files
	DefaultUploadsDir = "./uploads"
)
