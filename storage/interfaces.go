package storage

import "football-stats/models"

// ReportWriter is the interface any report sink must satisfy.
type ReportWriter interface {
	Write(report *models.Report) (runID string, err error)
	Close() error
}

// RejectionWriter is the interface for persisting rows dropped during cleaning.
type RejectionWriter interface {
	WriteRejected(rejected []models.Rejection) error
	Close() error
}
