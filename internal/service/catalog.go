package service

import (
	"context"
	"fmt"
	"time"

	"cloverpass/internal/model"
	"cloverpass/internal/repository"
	"cloverpass/pkg/generic"
	"cloverpass/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CatalogService covers the tenant-scoped entity CRUD behind the panels:
// businesses, promotions, events, tickets, boxes, promoters. Every mutation
// re-checks tenancy server-side; client-side checks are never trusted.
type CatalogService struct {
	businesses repository.IBusinessRepository
	promotions repository.IPromotionRepository
	events     generic.BaseRepository[*model.Event]
	tickets    generic.BaseRepository[*model.Ticket]
	boxes      generic.BaseRepository[*model.Box]
	promoters  generic.BaseRepository[*model.Promoter]
	log        *zap.SugaredLogger
}

func NewCatalogService(
	businesses repository.IBusinessRepository,
	promotions repository.IPromotionRepository,
	events generic.BaseRepository[*model.Event],
	tickets generic.BaseRepository[*model.Ticket],
	boxes generic.BaseRepository[*model.Box],
	promoters generic.BaseRepository[*model.Promoter],
	log *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		businesses: businesses,
		promotions: promotions,
		events:     events,
		tickets:    tickets,
		boxes:      boxes,
		promoters:  promoters,
		log:        log,
	}
}

// resolveTenant decides which business a panel mutation targets. Superadmins
// may name any business; everyone else is pinned to their own.
func resolveTenant(caller *model.Profile, requestedHex string) (primitive.ObjectID, error) {
	if caller.Roles.Has(model.RoleSuperAdmin) {
		if requestedHex == "" {
			return primitive.NilObjectID, fmt.Errorf("%w: businessId is required", ErrValidation)
		}
		return util.ParseObjectID(requestedHex)
	}
	if caller.BusinessID == nil {
		return primitive.NilObjectID, ErrNoBusiness
	}
	return *caller.BusinessID, nil
}

// CreateBusiness registers a new tenant. Superadmin only; enforced by the
// route, re-checked here.
func (s *CatalogService) CreateBusiness(ctx context.Context, caller *model.Profile, req *model.CreateBusinessRequest) (*model.Business, error) {
	if !caller.Roles.Has(model.RoleSuperAdmin) {
		return nil, ErrForbidden
	}
	b := &model.Business{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Active:      true,
		CreatedBy:   caller.UID,
	}
	return s.businesses.Create(ctx, b)
}

// ListBusinesses returns every tenant for superadmins; a business admin only
// ever sees their own.
func (s *CatalogService) ListBusinesses(ctx context.Context, caller *model.Profile) ([]*model.Business, error) {
	if caller.Roles.Has(model.RoleSuperAdmin) {
		return s.businesses.List(ctx)
	}
	if caller.BusinessID == nil {
		return nil, ErrNoBusiness
	}
	own, err := s.businesses.FindByID(ctx, *caller.BusinessID)
	if err != nil {
		return nil, err
	}
	if own == nil {
		return []*model.Business{}, nil
	}
	return []*model.Business{own}, nil
}

func (s *CatalogService) GetBusiness(ctx context.Context, caller *model.Profile, idHex string) (*model.Business, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid business id", ErrValidation)
	}
	if !s.canManageBusiness(caller, id) {
		return nil, ErrForbidden
	}
	b, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// CreatePromotion creates a promotion and pre-generates its QR codes.
func (s *CatalogService) CreatePromotion(ctx context.Context, caller *model.Profile, req *model.CreatePromotionRequest) (*model.Promotion, error) {
	businessID, err := resolveTenant(caller, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate before startDate", ErrValidation)
	}

	codes := make([]model.PromotionCode, 0, req.CodeCount)
	now := time.Now()
	for i := 0; i < req.CodeCount; i++ {
		codes = append(codes, model.PromotionCode{
			Code:     util.GenerateRedemptionCode(),
			Status:   model.CodeStatusUnused,
			IssuedAt: now,
		})
	}

	p := &model.Promotion{
		BusinessID:  businessID,
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Codes:       codes,
		CreatedBy:   caller.UID,
	}
	return s.promotions.Create(ctx, p)
}

// GenerateCodes appends freshly issued codes to an existing promotion the
// caller is allowed to manage.
func (s *CatalogService) GenerateCodes(ctx context.Context, caller *model.Profile, promotionIDHex string, count int) ([]model.PromotionCode, error) {
	if count <= 0 || count > 1000 {
		return nil, fmt.Errorf("%w: count must be between 1 and 1000", ErrValidation)
	}
	promotionID, err := util.ParseObjectID(promotionIDHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid promotion id", ErrValidation)
	}
	promo, err := s.promotions.FindByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrNotFound
	}
	if !s.canManageBusiness(caller, promo.BusinessID) {
		return nil, ErrForbidden
	}

	now := time.Now()
	codes := make([]model.PromotionCode, 0, count)
	for i := 0; i < count; i++ {
		codes = append(codes, model.PromotionCode{
			Code:     util.GenerateRedemptionCode(),
			Status:   model.CodeStatusUnused,
			IssuedAt: now,
		})
	}
	if err := s.promotions.AppendCodes(ctx, promotionID, codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *CatalogService) ListPromotions(ctx context.Context, caller *model.Profile, businessIDHex string) ([]*model.Promotion, error) {
	businessID, err := resolveTenant(caller, businessIDHex)
	if err != nil {
		return nil, err
	}
	return s.promotions.ListByBusiness(ctx, businessID)
}

func (s *CatalogService) canManageBusiness(caller *model.Profile, businessID primitive.ObjectID) bool {
	if caller.Roles.Has(model.RoleSuperAdmin) {
		return true
	}
	return caller.BusinessID != nil && *caller.BusinessID == businessID
}

// CreateEvent creates an event under the caller's tenant.
func (s *CatalogService) CreateEvent(ctx context.Context, caller *model.Profile, req *model.CreateEventRequest) (*model.Event, error) {
	businessID, err := resolveTenant(caller, req.BusinessID)
	if err != nil {
		return nil, err
	}
	e := &model.Event{
		BusinessID: businessID,
		Name:       req.Name,
		Venue:      req.Venue,
		Date:       req.Date,
		Status:     req.Status,
		CreatedAt:  time.Now(),
		CreatedBy:  caller.UID,
		UpdatedAt:  time.Now(),
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *CatalogService) ListEvents(ctx context.Context, caller *model.Profile, businessIDHex string) ([]*model.Event, error) {
	businessID, err := resolveTenant(caller, businessIDHex)
	if err != nil {
		return nil, err
	}
	return s.events.List(ctx, bson.M{"businessId": businessID})
}

// CreateTicket creates a ticket type under an event the caller manages.
func (s *CatalogService) CreateTicket(ctx context.Context, caller *model.Profile, req *model.CreateTicketRequest) (*model.Ticket, error) {
	event, err := s.ownedEvent(ctx, caller, req.EventID)
	if err != nil {
		return nil, err
	}
	t := &model.Ticket{
		BusinessID: event.BusinessID,
		EventID:    event.ID,
		Name:       req.Name,
		Cost:       req.Cost,
		Status:     req.Status,
		CreatedAt:  time.Now(),
		CreatedBy:  caller.UID,
		UpdatedAt:  time.Now(),
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateBox creates a box under an event the caller manages.
func (s *CatalogService) CreateBox(ctx context.Context, caller *model.Profile, req *model.CreateBoxRequest) (*model.Box, error) {
	event, err := s.ownedEvent(ctx, caller, req.EventID)
	if err != nil {
		return nil, err
	}
	b := &model.Box{
		BusinessID: event.BusinessID,
		EventID:    event.ID,
		Name:       req.Name,
		Capacity:   req.Capacity,
		Cost:       req.Cost,
		Status:     req.Status,
		CreatedAt:  time.Now(),
		CreatedBy:  caller.UID,
		UpdatedAt:  time.Now(),
	}
	if err := s.boxes.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CreatePromoter attaches a promoter to the caller's tenant.
func (s *CatalogService) CreatePromoter(ctx context.Context, caller *model.Profile, req *model.CreatePromoterRequest) (*model.Promoter, error) {
	businessID, err := resolveTenant(caller, req.BusinessID)
	if err != nil {
		return nil, err
	}
	p := &model.Promoter{
		BusinessID: businessID,
		Name:       req.Name,
		Email:      util.NormalizeEmail(req.Email),
		Phone:      req.Phone,
		Active:     true,
		CreatedAt:  time.Now(),
		CreatedBy:  caller.UID,
		UpdatedAt:  time.Now(),
	}
	if err := s.promoters.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListPromoters(ctx context.Context, caller *model.Profile, businessIDHex string) ([]*model.Promoter, error) {
	businessID, err := resolveTenant(caller, businessIDHex)
	if err != nil {
		return nil, err
	}
	return s.promoters.List(ctx, bson.M{"businessId": businessID})
}

func (s *CatalogService) ownedEvent(ctx context.Context, caller *model.Profile, eventIDHex string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, eventIDHex)
	if err != nil {
		if err == generic.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canManageBusiness(caller, event.BusinessID) {
		return nil, ErrForbidden
	}
	return event, nil
}
