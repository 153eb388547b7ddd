package services

import (
	"time"

	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/core/workflow"
	"github.com/SscSPs/travel_allowance_app/internal/platform/config"
	"github.com/SscSPs/travel_allowance_app/internal/utils/reimbursement"
)

// Collaborators are the outbound adapters the services talk to.
// Nil members disable the matching feature.
type Collaborators struct {
	ParametersCache portssvc.ParametersCache
	Distance        portssvc.DistanceProvider
	Documents       portssvc.DocumentOrchestrator
	Locker          portssvc.Locker
	Sender          portssvc.NotificationSender
	// Engine is required.
	Engine *workflow.Engine
	// FollowUpRunner schedules post-commit work. Nil runs it in a goroutine.
	FollowUpRunner func(func())
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	deadline := reimbursement.DeadlinePolicy{
		BusinessDays:          cfg.DeadlineBusinessDays,
		BusinessDaysAirTicket: cfg.DeadlineBusinessDaysAir,
		Location:              loc,
	}
	if deadline.BusinessDays <= 0 || deadline.BusinessDaysAirTicket <= 0 {
		deadline = reimbursement.DefaultDeadlinePolicy(loc)
	}

	// Users first, every other service resolves actors through it.
	users := NewUserService(repos.UserRepo)
	container.User = users

	parameters := NewParametersService(repos.ParametersRepo, collab.ParametersCache, users)
	container.Parameters = parameters
	container.Holiday = NewHolidayService(repos.HolidayRepo, users, loc)

	container.Calculation = NewCalculationService(
		parameters,
		collab.Distance,
		repos.HolidayRepo,
		WithDistanceOrigin(cfg.DistanceOrigin),
		WithDeadlinePolicy(deadline),
		WithDisplacementFallbackZero(cfg.DisplacementFallbackZero),
	)
	container.Request = NewRequestService(repos.RequestRepo, container.Calculation, users)

	if collab.Documents != nil {
		container.Document = NewDocumentService(repos, collab.Documents, collab.Locker, users, loc)
	}
	container.Notification = NewNotificationService(repos.UserRepo, collab.Sender)

	workflowOptions := []WorkflowOption{
		WithWorkflowDeadlinePolicy(deadline),
		WithWorkflowNotifier(container.Notification),
	}
	if container.Document != nil {
		workflowOptions = append(workflowOptions, WithWorkflowDocuments(container.Document))
	}
	if collab.FollowUpRunner != nil {
		workflowOptions = append(workflowOptions, WithFollowUpRunner(collab.FollowUpRunner))
	}
	container.Workflow = NewWorkflowService(
		repos.RequestRepo,
		repos.HolidayRepo,
		collab.Engine,
		container.Calculation,
		users,
		workflowOptions...,
	)

	return container
}
