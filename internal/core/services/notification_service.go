package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
)

const driveFolderURL = "https://drive.google.com/drive/folders/"

// NotificationService renders lifecycle e-mails. Delivery failures are logged only.
type NotificationService struct {
	BaseService
	users  portsrepo.UserReader
	sender portssvc.NotificationSender
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(users portsrepo.UserReader, sender portssvc.NotificationSender) *NotificationService {
	return &NotificationService{users: users, sender: sender}
}

// NotifySubmitted tells internal control a request awaits analysis and confirms it to the requester.
func (s *NotificationService) NotifySubmitted(ctx context.Context, req domain.Request) {
	if req.CaseNumber == nil {
		return
	}
	number := req.CaseNumber.String()

	requester, err := s.users.FindUserByID(ctx, req.RequesterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load requester for notification", slog.Int64("request_id", req.RequestID))
		return
	}
	link := folderLink(req)

	reviewers, err := s.users.FindUsersByRole(ctx, domain.RoleInternalControl)
	if err != nil {
		s.LogError(ctx, err, "Failed to load internal control for notification", slog.Int64("request_id", req.RequestID))
	} else if to := emailsOf(reviewers); len(to) > 0 {
		s.send(ctx, req, portssvc.Notification{
			To:      to,
			Subject: fmt.Sprintf("Nova Solicitação de Diária #%s - Aguardando Análise", number),
			Body:    fmt.Sprintf("Nova solicitação de diária #%s.\n\nSolicitante: %s\nAcesse a pasta: %s", number, requester.Name, link),
		})
	}

	if requester.Email != "" {
		s.send(ctx, req, portssvc.Notification{
			To:      []string{requester.Email},
			Subject: fmt.Sprintf("Sua solicitação de diária #%s foi criada", number),
			Body:    fmt.Sprintf("Sua solicitação de diária #%s foi criada com sucesso.\n\nAcesse a pasta: %s", number, link),
		})
	}
}

// NotifyTransition tells the requester their request moved.
func (s *NotificationService) NotifyTransition(ctx context.Context, req domain.Request, history domain.ProcessHistory) {
	requester, err := s.users.FindUserByID(ctx, req.RequesterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load requester for notification", slog.Int64("request_id", req.RequestID))
		return
	}
	if requester.Email == "" {
		return
	}

	ref := fmt.Sprintf("%d", req.RequestID)
	if req.CaseNumber != nil {
		ref = req.CaseNumber.String()
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Sua solicitação de diária #%s mudou para: %s.", ref, history.NewStatus.Label())
	if history.Note != "" {
		fmt.Fprintf(&body, "\n\nObservação: %s", history.Note)
	}
	if req.DocumentFolderID != "" {
		fmt.Fprintf(&body, "\n\nAcesse a pasta: %s", folderLink(req))
	}

	s.send(ctx, req, portssvc.Notification{
		To:      []string{requester.Email},
		Subject: fmt.Sprintf("Solicitação de diária #%s: %s", ref, history.NewStatus.Label()),
		Body:    body.String(),
	})
}

func (s *NotificationService) send(ctx context.Context, req domain.Request, n portssvc.Notification) {
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to send notification",
			slog.Int64("request_id", req.RequestID),
			slog.String("subject", n.Subject))
		return
	}
	s.LogDebug(ctx, "Notification sent", slog.Int64("request_id", req.RequestID), slog.Int("recipients", len(n.To)))
}

func folderLink(req domain.Request) string {
	if req.DocumentFolderID == "" {
		return "(pasta ainda não disponível)"
	}
	return driveFolderURL + req.DocumentFolderID
}

var _ portssvc.NotificationSvc = (*NotificationService)(nil)
