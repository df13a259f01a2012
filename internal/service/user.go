package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloverpass/internal/auth"
	"cloverpass/internal/model"
	"cloverpass/internal/repository"
	"cloverpass/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// businessAdminAssignable is the role subset a business admin may grant.
var businessAdminAssignable = map[string]bool{
	model.RoleStaff: true,
	model.RoleHost:  true,
}

// UserService performs the privileged user-creation flow: authorize, filter
// roles, check for duplicates, create the account, then write the profile.
type UserService struct {
	accounts   repository.IAccountRepository
	profiles   repository.IProfileRepository
	reconciler IReconcileEnqueuer
	log        *zap.SugaredLogger
}

// IReconcileEnqueuer is the slice of the reconciliation queue the user
// service needs when a partial write leaves an orphaned account.
type IReconcileEnqueuer interface {
	Enqueue(ctx context.Context, task *model.ReconciliationTask) error
}

func NewUserService(accounts repository.IAccountRepository, profiles repository.IProfileRepository, reconciler IReconcileEnqueuer, log *zap.SugaredLogger) *UserService {
	return &UserService{accounts: accounts, profiles: profiles, reconciler: reconciler, log: log}
}

// CreatedUser is the success payload of a provisioning call.
type CreatedUser struct {
	UID        string   `json:"uid"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	BusinessID string   `json:"businessId,omitempty"`
}

// resolveGrant applies the privilege-containment rules for role assignment:
// a superadmin may grant anything and target any business; a business admin
// is cut down to {staff, host} and always targets their own business,
// whatever the payload claimed.
func resolveGrant(caller *model.Profile, requested []string, requestedBusiness string) (model.RoleList, *primitive.ObjectID, error) {
	if caller.Roles.Has(model.RoleSuperAdmin) {
		var biz *primitive.ObjectID
		if requestedBusiness != "" {
			oid, err := util.ParseObjectID(requestedBusiness)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s", ErrValidation, "invalid businessId")
			}
			biz = &oid
		}
		roles := model.RoleList(requested)
		if biz == nil && !roles.Has(model.RoleSuperAdmin) {
			return nil, nil, fmt.Errorf("%w: %s", ErrValidation, "businessId is required for non-superadmin roles")
		}
		return roles, biz, nil
	}

	if caller.Roles.Has(model.RoleBusinessAdmin) {
		if caller.BusinessID == nil {
			return nil, nil, ErrNoBusiness
		}
		filtered := model.RoleList{}
		for _, r := range requested {
			if businessAdminAssignable[r] {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) == 0 {
			return nil, nil, ErrRoleNotPermitted
		}
		// Never the caller-supplied value.
		biz := *caller.BusinessID
		return filtered, &biz, nil
	}

	return nil, nil, ErrForbidden
}

// CreatePlatformUser provisions a new identity plus profile. Caller must be
// superadmin or business_admin; the handler has already validated shape.
func (s *UserService) CreatePlatformUser(ctx context.Context, caller *model.Profile, req *model.CreatePlatformUserRequest) (*CreatedUser, error) {
	roles, businessID, err := resolveGrant(caller, req.Roles, req.BusinessID)
	if err != nil {
		return nil, err
	}
	return s.provision(ctx, caller, req.Name, req.Email, req.Password, req.DNI, roles, businessID)
}

// CreateStaff is the business-panel variant: the caller must hold
// business_admin or staff with an associated business, may only grant
// {staff, host}, and the target business is always the caller's own.
func (s *UserService) CreateStaff(ctx context.Context, caller *model.Profile, req *model.CreateStaffRequest) (*CreatedUser, error) {
	if !caller.Roles.HasAny(model.RoleBusinessAdmin, model.RoleStaff) {
		return nil, ErrForbidden
	}
	if caller.BusinessID == nil {
		return nil, ErrNoBusiness
	}
	filtered := model.RoleList{}
	for _, r := range req.Roles {
		if businessAdminAssignable[r] {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil, ErrRoleNotPermitted
	}
	biz := *caller.BusinessID
	return s.provision(ctx, caller, req.Name, req.Email, req.Password, req.DNI, filtered, &biz)
}

// provision runs the non-transactional account-then-profile write. The
// duplicate-email pre-check is advisory; a concurrent create racing past it
// surfaces as the unique-index error, which maps to the same conflict.
func (s *UserService) provision(ctx context.Context, caller *model.Profile, name, email, password, dni string, roles model.RoleList, businessID *primitive.ObjectID) (*CreatedUser, error) {
	email = util.NormalizeEmail(email)

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	acc := &model.Account{
		UID:          util.GenerateUID(),
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	now := time.Now()
	profile := &model.Profile{
		UID:         acc.UID,
		DisplayName: name,
		Email:       email,
		DNI:         dni,
		Roles:       roles,
		BusinessID:  businessID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.profiles.Create(ctx, profile); err != nil {
		// The account exists but its profile does not: an unprovisioned
		// identity. Queue a repair instead of leaving it silent.
		s.log.Errorw("profile write failed after account creation, queueing reconciliation",
			"uid", acc.UID, "email", email, "error", err)
		task := &model.ReconciliationTask{
			UID:     acc.UID,
			Email:   email,
			Action:  model.ReconcileCompleteProfile,
			Profile: profile,
		}
		if qerr := s.reconciler.Enqueue(ctx, task); qerr != nil {
			s.log.Errorw("reconciliation enqueue failed, orphaned account remains",
				"uid", acc.UID, "error", qerr)
		}
		return nil, err
	}

	s.log.Infow("user provisioned",
		"uid", acc.UID, "roles", []string(roles), "createdBy", caller.UID)

	created := &CreatedUser{UID: acc.UID, Email: email, Roles: roles}
	if businessID != nil {
		created.BusinessID = businessID.Hex()
	}
	return created, nil
}
