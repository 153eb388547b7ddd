package domain

import "fmt"

// Status is the lifecycle position of a Request.
type Status string

const (
	StatusDraft                         Status = "DRAFT"
	StatusAdminReview                   Status = "ADMIN_REVIEW"
	StatusAwaitingRequestSignatures     Status = "AWAITING_REQUEST_SIGNATURES"
	StatusAwaitingRegistrationProof     Status = "AWAITING_REGISTRATION_PROOF"
	StatusAwaitingCommitment            Status = "AWAITING_COMMITMENT"
	StatusAwaitingPayment               Status = "AWAITING_PAYMENT"
	StatusAwaitingExpenseReport         Status = "AWAITING_EXPENSE_REPORT"
	StatusExpenseReportReviewInternal   Status = "EXPENSE_REPORT_REVIEW_INTERNAL"
	StatusAwaitingReportSignatures      Status = "AWAITING_REPORT_SIGNATURES"
	StatusExpenseReportReviewAccounting Status = "EXPENSE_REPORT_REVIEW_ACCOUNTING"
	StatusArchived                      Status = "ARCHIVED"
	StatusCorrectionPending             Status = "CORRECTION_PENDING"
	StatusRejected                      Status = "REJECTED"
	StatusCancelled                     Status = "CANCELLED"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusDraft,
	StatusAdminReview,
	StatusAwaitingRequestSignatures,
	StatusAwaitingRegistrationProof,
	StatusAwaitingCommitment,
	StatusAwaitingPayment,
	StatusAwaitingExpenseReport,
	StatusExpenseReportReviewInternal,
	StatusAwaitingReportSignatures,
	StatusExpenseReportReviewAccounting,
	StatusArchived,
	StatusCorrectionPending,
	StatusRejected,
	StatusCancelled,
}

// InitialStatus is the only status a Request can be created in.
const InitialStatus = StatusDraft

var statusLabels = map[Status]string{
	StatusDraft:                         "Rascunho",
	StatusAdminReview:                   "Aguardando Análise Administrativa",
	StatusAwaitingRequestSignatures:     "Aguardando Assinaturas (Solicitação)",
	StatusAwaitingRegistrationProof:     "Aguardando Comprovante de Inscrição",
	StatusAwaitingCommitment:            "Aguardando Empenho",
	StatusAwaitingPayment:               "Aguardando Pagamento",
	StatusAwaitingExpenseReport:         "Aguardando Prestação de Contas",
	StatusExpenseReportReviewInternal:   "PC em Análise (Controle Interno)",
	StatusAwaitingReportSignatures:      "Aguardando Assinaturas (PC)",
	StatusExpenseReportReviewAccounting: "PC em Análise (Contabilidade)",
	StatusArchived:                      "Processo Arquivado",
	StatusCorrectionPending:             "Correção Pendente",
	StatusRejected:                      "Indeferido",
	StatusCancelled:                     "Cancelado",
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable name shown to users and in e-mails.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStatus converts raw text into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Role identifies a group of actors allowed to act on certain statuses.
type Role string

const (
	RoleRequester       Role = "requester"
	RoleInternalControl Role = "internal_control"
	RoleAdmin           Role = "admin"
	RoleSignatory       Role = "signatory"
	RoleAccounting      Role = "accounting"
	RolePayment         Role = "payment"
)

// AllRoles lists every role known to the system.
var AllRoles = []Role{
	RoleRequester,
	RoleInternalControl,
	RoleAdmin,
	RoleSignatory,
	RoleAccounting,
	RolePayment,
}

// DefaultRole is granted to every newly registered user.
const DefaultRole = RoleRequester

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts raw text into a Role.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}
