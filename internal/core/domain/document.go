package domain

import "time"

// DocumentKind classifies files attached to a Request.
type DocumentKind string

const (
	DocumentInitialRequest    DocumentKind = "INITIAL_REQUEST"
	DocumentSignedRequest     DocumentKind = "SIGNED_REQUEST"
	DocumentRegistrationProof DocumentKind = "REGISTRATION_PROOF"
	DocumentCommitmentNote    DocumentKind = "COMMITMENT_NOTE"
	DocumentPaymentProof      DocumentKind = "PAYMENT_PROOF"
	DocumentTravelReport      DocumentKind = "TRAVEL_REPORT"
	DocumentLodgingProof      DocumentKind = "LODGING_PROOF"
	DocumentOther             DocumentKind = "OTHER"
)

// Document references a file kept by the external document store.
type Document struct {
	DocumentID     int64        `json:"documentID"`
	RequestID      int64        `json:"requestID"`
	FileName       string       `json:"fileName"`
	ExternalFileID string       `json:"externalFileID"`
	Kind           DocumentKind `json:"kind"`
	UploadedBy     string       `json:"uploadedBy"`
	UploadedAt     time.Time    `json:"uploadedAt"`
}

// DocumentRefs is what the document orchestrator hands back for a Request.
type DocumentRefs struct {
	FolderID    string `json:"folderID"`
	FolderURL   string `json:"folderURL,omitempty"`
	DocumentID  string `json:"documentID"`
	DocumentURL string `json:"documentURL,omitempty"`
	FileName    string `json:"fileName,omitempty"`
}
