package models

import "time"

// Document is the row stored in the documents table.
type Document struct {
	DocumentID     int64     `db:"document_id"`
	RequestID      int64     `db:"request_id"`
	FileName       string    `db:"file_name"`
	ExternalFileID string    `db:"external_file_id"`
	Kind           string    `db:"kind"`
	UploadedBy     string    `db:"uploaded_by"`
	UploadedAt     time.Time `db:"uploaded_at"`
}

// Holiday is the row stored in the holidays table.
type Holiday struct {
	HolidayDate time.Time `db:"holiday_date"`
	Description string    `db:"description"`
}
