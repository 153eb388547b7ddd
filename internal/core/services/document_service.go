package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/core/workflow"
	"github.com/SscSPs/travel_allowance_app/internal/utils"
	"github.com/SscSPs/travel_allowance_app/internal/utils/reimbursement"
)

const documentLockTTL = 2 * time.Minute

// DocumentService produces the folder and request document of submitted requests.
type DocumentService struct {
	BaseService
	requests     portsrepo.RequestRepositoryFacade
	documents    portsrepo.DocumentRepositoryFacade
	users        portsrepo.UserRepositoryFacade
	orchestrator portssvc.DocumentOrchestrator
	locker       portssvc.Locker
	location     *time.Location
	now          func() time.Time
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(
	repos portsrepo.RepositoryProvider,
	orchestrator portssvc.DocumentOrchestrator,
	locker portssvc.Locker,
	roles portssvc.RoleLookup,
	loc *time.Location,
) *DocumentService {
	if loc == nil {
		loc = time.UTC
	}
	return &DocumentService{
		BaseService:  BaseService{Roles: roles},
		requests:     repos.RequestRepo,
		documents:    repos.DocumentRepo,
		users:        repos.UserRepo,
		orchestrator: orchestrator,
		locker:       locker,
		location:     loc,
		now:          time.Now,
	}
}

// GenerateForRequest creates the documents of a submitted request and records them.
// Concurrent runs for the same request are serialized by the locker.
func (s *DocumentService) GenerateForRequest(ctx context.Context, requestID int64) (*domain.DocumentRefs, error) {
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "request-documents:"+strconv.FormatInt(requestID, 10), documentLockTTL)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				s.LogError(ctx, err, "Failed to release document lock", slog.Int64("request_id", requestID))
			}
		}()
	}

	request, err := s.requests.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.CaseNumber == nil {
		return nil, apperrors.NewValidationFailedError("documents are only generated for submitted requests")
	}

	requester, err := s.users.FindUserByID(ctx, request.RequesterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load requester", slog.Int64("request_id", requestID))
		return nil, err
	}
	placeholders, err := BuildPlaceholders(*request, *requester, s.location)
	if err != nil {
		s.LogError(ctx, err, "Request has no stored unit value", slog.Int64("request_id", requestID))
		return nil, err
	}
	reviewers, err := s.users.FindUsersByRole(ctx, domain.RoleInternalControl)
	if err != nil {
		s.LogError(ctx, err, "Failed to load internal control users")
		return nil, err
	}

	job := portssvc.DocumentJob{
		CaseNumber:     *request.CaseNumber,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,
		Placeholders:   placeholders,
		ReaderEmails:   []string{requester.Email},
		WriterEmails:   emailsOf(reviewers),
	}

	refs, err := s.orchestrator.CreateRequestDocuments(ctx, job)
	if err != nil {
		s.LogError(ctx, err, "Failed to create request documents",
			slog.Int64("request_id", requestID),
			slog.String("case_number", request.CaseNumber.String()))
		return nil, err
	}

	if err := s.requests.UpdateDocumentRefs(ctx, requestID, refs.FolderID, refs.DocumentID); err != nil {
		s.LogError(ctx, err, "Failed to record document references", slog.Int64("request_id", requestID))
		return nil, err
	}
	_, err = s.documents.SaveDocument(ctx, domain.Document{
		RequestID:      requestID,
		FileName:       refs.FileName,
		ExternalFileID: refs.DocumentID,
		Kind:           domain.DocumentInitialRequest,
		UploadedBy:     request.RequesterID,
		UploadedAt:     s.now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record request document", slog.Int64("request_id", requestID))
		return nil, err
	}

	s.LogInfo(ctx, "Request documents generated",
		slog.Int64("request_id", requestID),
		slog.String("case_number", request.CaseNumber.String()),
		slog.String("folder_id", refs.FolderID))
	return refs, nil
}

// RegenerateDocuments reruns generation. Only internal control and administrators may ask for it.
func (s *DocumentService) RegenerateDocuments(ctx context.Context, requestID int64, actorID string) (*domain.DocumentRefs, error) {
	actor, err := s.LookupActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdministrator(*actor) && !hasRole(*actor, domain.RoleInternalControl) {
		return nil, apperrors.NewAppError(http.StatusForbidden, "only internal control can regenerate documents", apperrors.ErrForbidden)
	}
	return s.GenerateForRequest(ctx, requestID)
}

// ListDocuments lists the files of a request the actor may see.
func (s *DocumentService) ListDocuments(ctx context.Context, requestID int64, actorID string) ([]domain.Document, error) {
	actor, err := s.LookupActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	request, err := s.requests.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load request", slog.Int64("request_id", requestID))
		}
		return nil, err
	}
	if !workflow.CanView(*request, *actor) {
		return nil, apperrors.NewAppError(http.StatusForbidden, "request belongs to someone else", apperrors.ErrForbidden)
	}
	return s.documents.ListDocumentsByRequestID(ctx, requestID)
}

// BuildPlaceholders renders the template values of a submitted request.
// Every figure comes from the stored trip and totals, including the unit
// value and fuel price they were computed with.
func BuildPlaceholders(request domain.Request, requester domain.User, loc *time.Location) (map[string]string, error) {
	if !request.Totals.UnitValue.IsPositive() {
		return nil, apperrors.NewConfigurationError("unitValue")
	}
	allowance := reimbursement.ComputeAllowance(reimbursement.AllowanceInput{
		Destination:    request.Destination,
		DepartureAt:    &request.DepartureAt,
		ReturnAt:       &request.ReturnAt,
		ExplicitCounts: request.ExplicitCounts,
		ExplicitRegion: request.ExplicitRegion,
		UnitValue:      request.Totals.UnitValue,
		Location:       loc,
	})
	withOvernight := allowance.Line(domain.AllowanceWithOvernight)
	withoutOvernight := allowance.Line(domain.AllowanceWithoutOvernight)
	halfDay := allowance.Line(domain.AllowanceHalfDay)

	plate := "-"
	if request.VehiclePlate != nil {
		plate = *request.VehiclePlate
	}
	fee := "-"
	if request.RequestsRegistrationFee {
		fee = utils.FormatBRL(request.Totals.RegistrationFee)
	}
	distance := "-"
	if !request.Totals.DisplacementMissing {
		distance = utils.FormatDecimalBR(request.Totals.TotalDistanceKm, 1) + " km"
	}
	fuelPrice := "-"
	if request.Totals.FuelPrice.IsPositive() {
		fuelPrice = utils.FormatBRL(request.Totals.FuelPrice)
	}

	placeholders := map[string]string{
		"FINALIDADE":         request.Purpose,
		"DESTINO":            request.Destination,
		"SOLICITANTE":        requester.Name,
		"EMAIL_SOLICITANTE":  requester.Email,
		"DATA_IDA":           request.DepartureAt.In(loc).Format("02/01/2006 15:04"),
		"DATA_RETORNO":       request.ReturnAt.In(loc).Format("02/01/2006 15:04"),
		"MEIO_TRANSPORTE":    request.Transport.Label(),
		"PLACA_VEICULO":      plate,
		"QTD_COM_PERNOITE":   strconv.Itoa(withOvernight.Count),
		"VALOR_COM_PERNOITE": utils.FormatBRL(withOvernight.Subtotal),
		"QTD_SEM_PERNOITE":   strconv.Itoa(withoutOvernight.Count),
		"VALOR_SEM_PERNOITE": utils.FormatBRL(withoutOvernight.Subtotal),
		"QTD_MEIA_DIARIA":    strconv.Itoa(halfDay.Count),
		"VALOR_MEIA_DIARIA":  utils.FormatBRL(halfDay.Subtotal),
		"VALOR_UNIDADE":      utils.FormatBRL(request.Totals.UnitValue),
		"TOTAL_DIARIAS":      utils.FormatBRL(request.Totals.AllowanceTotal),
		"DISTANCIA_KM":       distance,
		"PRECO_COMBUSTIVEL":  fuelPrice,
		"VALOR_DESLOCAMENTO": utils.FormatBRL(request.Totals.DisplacementTotal),
		"TAXA_INSCRICAO":     fee,
		"TOTAL_EMPENHAR":     utils.FormatBRL(request.Totals.GrandTotal),
		"DATA_SOLICITACAO":   request.CreatedAt.In(loc).Format("02/01/2006"),
	}
	if request.CaseNumber != nil {
		placeholders["NUMERO_PROCESSO"] = request.CaseNumber.String()
		placeholders["ANO"] = fmt.Sprint(request.CaseNumber.Year)
	}
	return placeholders, nil
}

func emailsOf(users []domain.User) []string {
	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}
	return emails
}

var _ portssvc.DocumentSvc = (*DocumentService)(nil)
