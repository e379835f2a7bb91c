package http

import (
	"github.com/mrlokans/ebookshelf/internal/library"
)

// RouterConfig holds all dependencies needed to create the router.
type RouterConfig struct {
	Service *library.Service
	// Database and Uploads back the /health checks; either may be nil.
	Database Pinger
	Uploads  Pinger
	Version  string

	// MaxMultipartMemory is the in-memory part of a multipart body; the
	// rest spills to temp files.
	MaxMultipartMemory int64
	// CORSAllowedOrigins enables CORS when non-empty.
	CORSAllowedOrigins []string
}
