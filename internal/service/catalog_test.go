package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloverpass/internal/model"
	"cloverpass/pkg/generic"
	"cloverpass/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memEntityRepo[T generic.Entity] struct {
	byID map[primitive.ObjectID]T
}

func newMemEntityRepo[T generic.Entity]() *memEntityRepo[T] {
	return &memEntityRepo[T]{byID: map[primitive.ObjectID]T{}}
}

func (m *memEntityRepo[T]) Create(_ context.Context, entity T) error {
	if entity.GetID().IsZero() {
		entity.SetID(primitive.NewObjectID())
	}
	m.byID[entity.GetID()] = entity
	return nil
}

func (m *memEntityRepo[T]) GetByID(_ context.Context, id string) (T, error) {
	var zero T
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, errors.New("invalid id")
	}
	entity, ok := m.byID[oid]
	if !ok {
		return zero, generic.ErrNotFound
	}
	return entity, nil
}

func (m *memEntityRepo[T]) List(_ context.Context, _ bson.M) ([]T, error) {
	out := []T{}
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEntityRepo[T]) Update(_ context.Context, entity T) error {
	if _, ok := m.byID[entity.GetID()]; !ok {
		return generic.ErrNotFound
	}
	m.byID[entity.GetID()] = entity
	return nil
}

func (m *memEntityRepo[T]) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid id")
	}
	if _, ok := m.byID[oid]; !ok {
		return generic.ErrNotFound
	}
	delete(m.byID, oid)
	return nil
}

type memBusinessRepo struct {
	byID map[primitive.ObjectID]*model.Business
}

func (m *memBusinessRepo) Create(_ context.Context, b *model.Business) (*model.Business, error) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.byID[b.ID] = b
	return b, nil
}

func (m *memBusinessRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Business, error) {
	return m.byID[id], nil
}

func (m *memBusinessRepo) List(_ context.Context) ([]*model.Business, error) {
	out := []*model.Business{}
	for _, b := range m.byID {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBusinessRepo) Update(_ context.Context, b *model.Business) error { return nil }
func (m *memBusinessRepo) Delete(context.Context, primitive.ObjectID) error  { return nil }
func (m *memBusinessRepo) Count(context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

type memPromotionRepo struct {
	byID map[primitive.ObjectID]*model.Promotion
}

func (m *memPromotionRepo) Create(_ context.Context, p *model.Promotion) (*model.Promotion, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.byID[p.ID] = p
	return p, nil
}

func (m *memPromotionRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Promotion, error) {
	return m.byID[id], nil
}

func (m *memPromotionRepo) ListByBusiness(_ context.Context, businessID primitive.ObjectID) ([]*model.Promotion, error) {
	out := []*model.Promotion{}
	for _, p := range m.byID {
		if p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPromotionRepo) Update(_ context.Context, p *model.Promotion) error { return nil }
func (m *memPromotionRepo) Delete(context.Context, primitive.ObjectID) error   { return nil }

func (m *memPromotionRepo) AppendCodes(_ context.Context, id primitive.ObjectID, codes []model.PromotionCode) error {
	p, ok := m.byID[id]
	if !ok {
		return generic.ErrNotFound
	}
	p.Codes = append(p.Codes, codes...)
	return nil
}

func (m *memPromotionRepo) RedeemCode(_ context.Context, id primitive.ObjectID, code, redeemedBy string) (*model.Promotion, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, generic.ErrNotFound
	}
	for i := range p.Codes {
		if p.Codes[i].Code == code && p.Codes[i].Status == model.CodeStatusUnused {
			now := time.Now()
			p.Codes[i].Status = model.CodeStatusUsed
			p.Codes[i].RedeemedAt = &now
			p.Codes[i].RedeemedBy = redeemedBy
			return p, nil
		}
	}
	return nil, errors.New("code not redeemable")
}

func (m *memPromotionRepo) TotalGeneratedCodes(_ context.Context) (int64, error) {
	var total int64
	for _, p := range m.byID {
		total += int64(len(p.Codes))
	}
	return total, nil
}

func newCatalogFixture() (*CatalogService, *memBusinessRepo, *memPromotionRepo, *memEntityRepo[*model.Event]) {
	businesses := &memBusinessRepo{byID: map[primitive.ObjectID]*model.Business{}}
	promotions := &memPromotionRepo{byID: map[primitive.ObjectID]*model.Promotion{}}
	events := newMemEntityRepo[*model.Event]()
	svc := NewCatalogService(businesses, promotions, events,
		newMemEntityRepo[*model.Ticket](), newMemEntityRepo[*model.Box](), newMemEntityRepo[*model.Promoter](),
		zap.NewNop().Sugar())
	return svc, businesses, promotions, events
}

func staffCaller(biz primitive.ObjectID) *model.Profile {
	return &model.Profile{UID: "staff-1", Roles: model.RoleList{model.RoleStaff}, BusinessID: &biz}
}

func TestCreateBusinessSuperadminOnly(t *testing.T) {
	svc, businesses, _, _ := newCatalogFixture()

	_, err := svc.CreateBusiness(context.Background(), staffCaller(primitive.NewObjectID()), &model.CreateBusinessRequest{Name: "Bar Central"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}

	b, err := svc.CreateBusiness(context.Background(), superadminCaller(), &model.CreateBusinessRequest{Name: "Bar Central"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if businesses.byID[b.ID] == nil {
		t.Fatalf("business not stored")
	}
	if !b.Active {
		t.Fatalf("new business must start active")
	}
}

func TestListBusinessesScopedToCaller(t *testing.T) {
	svc, businesses, _, _ := newCatalogFixture()
	own := &model.Business{ID: primitive.NewObjectID(), Name: "Mine"}
	other := &model.Business{ID: primitive.NewObjectID(), Name: "Theirs"}
	businesses.byID[own.ID] = own
	businesses.byID[other.ID] = other

	all, err := svc.ListBusinesses(context.Background(), superadminCaller())
	if err != nil {
		t.Fatalf("superadmin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("superadmin sees %d businesses, want 2", len(all))
	}

	admin := &model.Profile{UID: "b1", Roles: model.RoleList{model.RoleBusinessAdmin}, BusinessID: &own.ID}
	mine, err := svc.ListBusinesses(context.Background(), admin)
	if err != nil {
		t.Fatalf("business admin list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != own.ID {
		t.Fatalf("business admin must only see their own tenant, got %v", mine)
	}
}

func TestListBusinessesWithoutBusiness(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	caller := &model.Profile{UID: "b1", Roles: model.RoleList{model.RoleBusinessAdmin}}

	_, err := svc.ListBusinesses(context.Background(), caller)
	if !errors.Is(err, ErrNoBusiness) {
		t.Fatalf("got %v, want ErrNoBusiness", err)
	}
}

func TestGetBusinessCrossTenantForbidden(t *testing.T) {
	svc, businesses, _, _ := newCatalogFixture()
	own := primitive.NewObjectID()
	other := &model.Business{ID: primitive.NewObjectID(), Name: "Theirs"}
	businesses.byID[other.ID] = other

	_, err := svc.GetBusiness(context.Background(), staffCaller(own), other.ID.Hex())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}

	if _, err := svc.GetBusiness(context.Background(), superadminCaller(), other.ID.Hex()); err != nil {
		t.Fatalf("superadmin get: %v", err)
	}
}

func TestCreatePromotionPinnedToCallerTenant(t *testing.T) {
	svc, _, promotions, _ := newCatalogFixture()
	own := primitive.NewObjectID()
	foreign := primitive.NewObjectID()

	now := time.Now()
	p, err := svc.CreatePromotion(context.Background(), staffCaller(own), &model.CreatePromotionRequest{
		BusinessID: foreign.Hex(),
		Title:      "2x1 Jueves",
		Status:     model.PromotionStatusActive,
		StartDate:  now,
		EndDate:    now.Add(24 * time.Hour),
		CodeCount:  5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.BusinessID != own {
		t.Fatalf("promotion landed in %s, want caller's %s", p.BusinessID.Hex(), own.Hex())
	}
	if len(promotions.byID[p.ID].Codes) != 5 {
		t.Fatalf("expected 5 pre-generated codes, got %d", len(p.Codes))
	}
	for _, c := range p.Codes {
		if !util.IsRedemptionCode(c.Code) {
			t.Fatalf("bad code format %q", c.Code)
		}
		if c.Status != model.CodeStatusUnused {
			t.Fatalf("fresh code has status %q", c.Status)
		}
	}
}

func TestCreatePromotionRejectsInvertedDates(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	now := time.Now()

	_, err := svc.CreatePromotion(context.Background(), staffCaller(primitive.NewObjectID()), &model.CreatePromotionRequest{
		Title:     "Bad Dates",
		Status:    model.PromotionStatusActive,
		StartDate: now,
		EndDate:   now.Add(-time.Hour),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestCreatePromotionSuperadminNeedsExplicitBusiness(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	now := time.Now()

	_, err := svc.CreatePromotion(context.Background(), superadminCaller(), &model.CreatePromotionRequest{
		Title:     "No Tenant",
		Status:    model.PromotionStatusActive,
		StartDate: now,
		EndDate:   now.Add(time.Hour),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestGenerateCodesCrossTenantForbidden(t *testing.T) {
	svc, _, promotions, _ := newCatalogFixture()
	foreign := primitive.NewObjectID()
	promo := &model.Promotion{ID: primitive.NewObjectID(), BusinessID: foreign}
	promotions.byID[promo.ID] = promo

	_, err := svc.GenerateCodes(context.Background(), staffCaller(primitive.NewObjectID()), promo.ID.Hex(), 10)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if len(promo.Codes) != 0 {
		t.Fatalf("codes appended despite rejection")
	}
}

func TestGenerateCodesAppends(t *testing.T) {
	svc, _, promotions, _ := newCatalogFixture()
	own := primitive.NewObjectID()
	promo := &model.Promotion{ID: primitive.NewObjectID(), BusinessID: own}
	promotions.byID[promo.ID] = promo

	codes, err := svc.GenerateCodes(context.Background(), staffCaller(own), promo.ID.Hex(), 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(codes) != 3 || len(promo.Codes) != 3 {
		t.Fatalf("got %d returned, %d stored", len(codes), len(promo.Codes))
	}
}

func TestCreateTicketUnderForeignEventForbidden(t *testing.T) {
	svc, _, _, events := newCatalogFixture()
	foreign := primitive.NewObjectID()
	event := &model.Event{ID: primitive.NewObjectID(), BusinessID: foreign, Name: "Noche VIP"}
	events.byID[event.ID] = event

	_, err := svc.CreateTicket(context.Background(), staffCaller(primitive.NewObjectID()), &model.CreateTicketRequest{
		EventID: event.ID.Hex(), Name: "General", Status: model.PromotionStatusActive,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestCreateTicketInheritsEventTenant(t *testing.T) {
	svc, _, _, events := newCatalogFixture()
	own := primitive.NewObjectID()
	event := &model.Event{ID: primitive.NewObjectID(), BusinessID: own, Name: "Noche VIP"}
	events.byID[event.ID] = event

	ticket, err := svc.CreateTicket(context.Background(), staffCaller(own), &model.CreateTicketRequest{
		EventID: event.ID.Hex(), Name: "General", Status: model.PromotionStatusActive,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.BusinessID != own || ticket.EventID != event.ID {
		t.Fatalf("ticket not bound to event tenant: %+v", ticket)
	}
}

func TestCreateTicketMissingEvent(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	_, err := svc.CreateTicket(context.Background(), staffCaller(primitive.NewObjectID()), &model.CreateTicketRequest{
		EventID: primitive.NewObjectID().Hex(), Name: "General", Status: model.PromotionStatusActive,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
