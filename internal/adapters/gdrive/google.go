package gdrive

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// NewOrchestrator authenticates with a service-account key file and returns an
// orchestrator rooted at rootFolderID that copies templateID.
func NewOrchestrator(ctx context.Context, credentialsFile, rootFolderID, templateID string) (*Orchestrator, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read google service account file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, raw, drive.DriveScope, docs.DocumentsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google service account credentials: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	docsSvc, err := docs.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create docs client: %w", err)
	}

	return &Orchestrator{
		store:        &googleStorage{drive: driveSvc, docs: docsSvc},
		rootFolderID: rootFolderID,
		templateID:   templateID,
	}, nil
}

type googleStorage struct {
	drive *drive.Service
	docs  *docs.Service
}

func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func (g *googleStorage) FindFolder(ctx context.Context, name, parentID string) (string, bool, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		escapeQuery(name), escapeQuery(parentID), folderMimeType)
	list, err := g.drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", false, err
	}
	if len(list.Files) == 0 {
		return "", false, nil
	}
	return list.Files[0].Id, true, nil
}

func (g *googleStorage) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	folder, err := g.drive.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Fields("id").SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return folder.Id, nil
}

func (g *googleStorage) CopyFile(ctx context.Context, fileID, name, parentID string) (string, string, error) {
	file, err := g.drive.Files.Copy(fileID, &drive.File{
		Name:    name,
		Parents: []string{parentID},
	}).Fields("id", "webViewLink").SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return "", "", err
	}
	return file.Id, file.WebViewLink, nil
}

func (g *googleStorage) Grant(ctx context.Context, fileID, email, role string) error {
	_, err := g.drive.Permissions.Create(fileID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	}).SendNotificationEmail(false).SupportsAllDrives(true).Context(ctx).Do()
	return err
}

func (g *googleStorage) ReplaceText(ctx context.Context, documentID string, replacements map[string]string) error {
	if len(replacements) == 0 {
		return nil
	}
	tags := make([]string, 0, len(replacements))
	for tag := range replacements {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	requests := make([]*docs.Request, 0, len(tags))
	for _, tag := range tags {
		requests = append(requests, &docs.Request{
			ReplaceAllText: &docs.ReplaceAllTextRequest{
				ContainsText: &docs.SubstringMatchCriteria{Text: tag, MatchCase: true},
				ReplaceText:  replacements[tag],
			},
		})
	}
	_, err := g.docs.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{Requests: requests}).Context(ctx).Do()
	return err
}
