// Package gdrive lays out request folders in Google Drive and fills the request
// document from a Google Docs template.
package gdrive

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
)

const (
	receivedDocumentsFolder = "1 - Documentos recebidos na requisição"
	folderURLPrefix         = "https://drive.google.com/drive/folders/"

	roleReader = "reader"
	roleWriter = "writer"
)

// storage is the subset of Drive and Docs operations the orchestrator needs.
type storage interface {
	FindFolder(ctx context.Context, name, parentID string) (id string, found bool, err error)
	CreateFolder(ctx context.Context, name, parentID string) (string, error)
	CopyFile(ctx context.Context, fileID, name, parentID string) (id string, webURL string, err error)
	Grant(ctx context.Context, fileID, email, role string) error
	ReplaceText(ctx context.Context, documentID string, replacements map[string]string) error
}

// Orchestrator implements portssvc.DocumentOrchestrator on top of Drive and Docs.
type Orchestrator struct {
	store        storage
	rootFolderID string
	templateID   string
}

var _ portssvc.DocumentOrchestrator = (*Orchestrator)(nil)

// ProcessFolderName is the folder, and document title, of one request.
func ProcessFolderName(number domain.CaseNumber, requesterName string) string {
	return fmt.Sprintf("Diaria %s - %s", number.String(), requesterName)
}

// CreateRequestDocuments builds <year>/<process>/<received documents>, copies the
// template into it, fills the placeholders and shares the folder.
func (o *Orchestrator) CreateRequestDocuments(ctx context.Context, job portssvc.DocumentJob) (*domain.DocumentRefs, error) {
	yearFolder, err := o.ensureFolder(ctx, strconv.Itoa(job.CaseNumber.Year), o.rootFolderID)
	if err != nil {
		return nil, err
	}
	processName := ProcessFolderName(job.CaseNumber, job.RequesterName)
	processFolder, err := o.ensureFolder(ctx, processName, yearFolder)
	if err != nil {
		return nil, err
	}
	receivedFolder, err := o.ensureFolder(ctx, receivedDocumentsFolder, processFolder)
	if err != nil {
		return nil, err
	}

	docID, docURL, err := o.store.CopyFile(ctx, o.templateID, processName, receivedFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to copy request template: %w", err)
	}

	replacements := make(map[string]string, len(job.Placeholders))
	for tag, value := range job.Placeholders {
		replacements["<<"+tag+">>"] = value
	}
	if err := o.store.ReplaceText(ctx, docID, replacements); err != nil {
		return nil, fmt.Errorf("failed to fill request document %s: %w", docID, err)
	}

	if err := o.share(ctx, processFolder, job); err != nil {
		return nil, err
	}

	return &domain.DocumentRefs{
		FolderID:    processFolder,
		FolderURL:   folderURLPrefix + processFolder,
		DocumentID:  docID,
		DocumentURL: docURL,
		FileName:    processName,
	}, nil
}

func (o *Orchestrator) ensureFolder(ctx context.Context, name, parentID string) (string, error) {
	id, found, err := o.store.FindFolder(ctx, name, parentID)
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %q: %w", name, err)
	}
	if found {
		return id, nil
	}
	id, err = o.store.CreateFolder(ctx, name, parentID)
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	return id, nil
}

func (o *Orchestrator) share(ctx context.Context, folderID string, job portssvc.DocumentJob) error {
	grants := make(map[string]string)
	for _, email := range job.ReaderEmails {
		grants[email] = roleReader
	}
	// writer wins when someone is listed twice
	for _, email := range job.WriterEmails {
		grants[email] = roleWriter
	}

	emails := make([]string, 0, len(grants))
	for email := range grants {
		if email != "" {
			emails = append(emails, email)
		}
	}
	sort.Strings(emails)

	for _, email := range emails {
		if err := o.store.Grant(ctx, folderID, email, grants[email]); err != nil {
			return fmt.Errorf("failed to grant %s access to %s: %w", grants[email], email, err)
		}
	}
	return nil
}

// DisabledOrchestrator is used when Drive settings are incomplete.
type DisabledOrchestrator struct{}

var _ portssvc.DocumentOrchestrator = DisabledOrchestrator{}

func (DisabledOrchestrator) CreateRequestDocuments(_ context.Context, _ portssvc.DocumentJob) (*domain.DocumentRefs, error) {
	return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "document storage is not configured", nil)
}
