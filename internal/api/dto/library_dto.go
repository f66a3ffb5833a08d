package dto

import (
	"time"

	"github.com/campus-kit/registrar-service/internal/domain"
)

// CreateLibraryLogRequest is a library sign-in payload. The simplified QR
// variant omits date, timeIn and course.
type CreateLibraryLogRequest struct {
	Date      string `json:"date"`
	TimeIn    string `json:"timeIn"`
	Name      string `json:"name"`
	YearLevel string `json:"yearLevel"`
	Course    string `json:"course"`
	Purpose   string `json:"purpose"`
	Extra     string `json:"extra"`
	Via       string `json:"via"`
}

// LibraryLogResponse is the wire shape of a sign-in record.
type LibraryLogResponse struct {
	ID        string    `json:"_id"`
	Date      string    `json:"date"`
	TimeIn    string    `json:"timeIn"`
	Name      string    `json:"name"`
	YearLevel string    `json:"yearLevel"`
	Course    string    `json:"course"`
	Purpose   string    `json:"purpose"`
	Extra     string    `json:"extra"`
	Via       string    `json:"via"`
	CreatedAt time.Time `json:"createdAt"`
}

// LibraryLogResponseFrom maps a domain record to its wire shape.
func LibraryLogResponseFrom(l *domain.LibraryLog) LibraryLogResponse {
	return LibraryLogResponse{
		ID:        l.ID,
		Date:      l.Date,
		TimeIn:    l.TimeIn,
		Name:      l.Name,
		YearLevel: l.YearLevel,
		Course:    l.Course,
		Purpose:   l.Purpose,
		Extra:     l.Extra,
		Via:       l.Via,
		CreatedAt: l.CreatedAt,
	}
}

// LibraryLogPageResponse is a paginated log listing.
type LibraryLogPageResponse struct {
	Rows     []LibraryLogResponse `json:"rows"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}
