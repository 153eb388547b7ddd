package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/core/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) expectAdmin(ctx context.Context) {
	suite.mockUserRepo.On("FindUserByID", ctx, adminID).
		Return(&domain.User{UserID: adminID, Roles: []domain.Role{domain.RoleAdmin}}, nil).Once()
}

// --- LookupActor Tests ---

func (suite *UserServiceTestSuite) TestLookupActor_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, reviewerID).
		Return(&domain.User{UserID: reviewerID, Roles: []domain.Role{domain.RoleInternalControl}}, nil).Once()

	actor, err := suite.service.LookupActor(ctx, reviewerID)

	suite.Require().NoError(err)
	suite.Equal(reviewerID, actor.UserID)
	suite.Equal([]domain.Role{domain.RoleInternalControl}, actor.Roles)
}

func (suite *UserServiceTestSuite) TestLookupActor_UnknownIsUnauthorized() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	actor, err := suite.service.LookupActor(ctx, "ghost")

	suite.Nil(actor)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- CreateUser Tests ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	suite.expectAdmin(ctx)
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		_, err := uuid.Parse(user.UserID)
		return err == nil &&
			user.Name == "Maria Souza" &&
			user.Email == "maria@camara.sc.gov.br" &&
			len(user.Roles) == 1 && user.Roles[0] == domain.RoleRequester &&
			user.CreatedBy == adminID
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Name: " Maria Souza ", Email: "Maria@Camara.SC.gov.br"}, adminID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_KeepsSuppliedID() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.expectAdmin(ctx)
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == id
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{UserID: id, Name: "X", Email: "x@y.z"}, adminID)

	suite.Require().NoError(err)
	suite.Equal(id, created.UserID)
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	ctx := context.Background()
	suite.expectAdmin(ctx)
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Name: "X", Email: "x@y.z"}, adminID)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestCreateUser_RequiresAdministrator() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).
		Return(&domain.User{UserID: ownerID, Roles: []domain.Role{domain.RoleRequester}}, nil).Once()

	created, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Name: "X", Email: "x@y.z"}, ownerID)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

// --- SetUserRoles Tests ---

func (suite *UserServiceTestSuite) TestSetUserRoles_Success() {
	ctx := context.Background()
	roles := []domain.Role{domain.RoleRequester, domain.RoleSignatory}
	suite.expectAdmin(ctx)
	suite.mockUserRepo.On("SetUserRoles", ctx, ownerID, roles, adminID).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).Return(&domain.User{UserID: ownerID, Roles: roles}, nil).Once()

	user, err := suite.service.SetUserRoles(ctx, ownerID, dto.UpdateUserRolesRequest{Roles: []string{"requester", "signatory"}}, adminID)

	suite.Require().NoError(err)
	suite.Equal(roles, user.Roles)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSetUserRoles_UnknownRole() {
	ctx := context.Background()
	suite.expectAdmin(ctx)

	_, err := suite.service.SetUserRoles(ctx, ownerID, dto.UpdateUserRolesRequest{Roles: []string{"mayor"}}, adminID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Reads ---

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestListUsers_DefaultLimit() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, 50, 0).Return([]domain.User{{UserID: "a"}}, nil).Once()

	users, err := suite.service.ListUsers(ctx, 0, -3)

	suite.Require().NoError(err)
	suite.Len(users, 1)
}

func (suite *UserServiceTestSuite) TestListUsers_RepoError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, 10, 0).Return(nil, assert.AnError).Once()

	users, err := suite.service.ListUsers(ctx, 10, 0)

	suite.Nil(users)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *UserServiceTestSuite) TestListUsersByRole() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsersByRole", ctx, domain.RoleInternalControl).
		Return([]domain.User{{UserID: reviewerID}}, nil).Once()

	users, err := suite.service.ListUsersByRole(ctx, domain.RoleInternalControl)
	suite.Require().NoError(err)
	suite.Len(users, 1)

	_, err = suite.service.ListUsersByRole(ctx, domain.Role("mayor"))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- EnsureAdministrator Tests ---

func (suite *UserServiceTestSuite) TestEnsureAdministrator_CreatesMissing() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, id).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == id && user.IsStaff && user.HasRole(domain.RoleAdmin) && user.HasRole(domain.RoleRequester)
	})).Return(nil).Once()

	user, err := suite.service.EnsureAdministrator(ctx, id, "Admin", "admin@example.org")

	suite.Require().NoError(err)
	suite.True(user.IsAdministrator())
}

func (suite *UserServiceTestSuite) TestEnsureAdministrator_KeepsExisting() {
	ctx := context.Background()
	existing := &domain.User{UserID: adminID, IsStaff: true}
	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(existing, nil).Once()

	user, err := suite.service.EnsureAdministrator(ctx, adminID, "Admin", "admin@example.org")

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
