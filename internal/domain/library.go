package domain

import (
	"strings"
	"time"
)

// Library sign-in channels.
const (
	LibraryViaManual = "manual"
	LibraryViaQR     = "qr"
)

// LibraryLog is a single library sign-in record. Logs are append-only:
// there is no update or delete operation.
type LibraryLog struct {
	ID        string
	Date      string // YYYY-MM-DD wall-clock date as entered
	TimeIn    string // HH:MM:SS wall-clock time as entered
	Name      string
	YearLevel string
	Course    string
	Purpose   string
	Extra     string
	Via       string
	CreatedAt time.Time
}

// NormalizeVia maps arbitrary input onto the two supported channels.
func NormalizeVia(via string) string {
	if strings.ToLower(strings.TrimSpace(via)) == LibraryViaQR {
		return LibraryViaQR
	}
	return LibraryViaManual
}
