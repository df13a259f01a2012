package server

import (
	"context"
	"time"

	"cloverpass/internal/auth"
	"cloverpass/internal/config"
	"cloverpass/internal/handler"
	"cloverpass/internal/model"
	"cloverpass/internal/repository"
	"cloverpass/internal/service"
	"cloverpass/pkg/generic"
	"cloverpass/pkg/util"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Repositories groups every persistence dependency.
type Repositories struct {
	Accounts        repository.IAccountRepository
	Profiles        repository.IProfileRepository
	Businesses      repository.IBusinessRepository
	Promotions      repository.IPromotionRepository
	Events          generic.BaseRepository[*model.Event]
	Tickets         generic.BaseRepository[*model.Ticket]
	Boxes           generic.BaseRepository[*model.Box]
	Promoters       generic.BaseRepository[*model.Promoter]
	Members         repository.IMemberRepository
	Reconciliations repository.IReconciliationRepository
}

// Services groups the business logic layer.
type Services struct {
	Tokens      *auth.TokenService
	Sessions    *service.SessionService
	Profiles    *service.ProfileService
	Users       *service.UserService
	Stats       *service.StatsService
	DNI         *service.DNIService
	Catalog     *service.CatalogService
	Redemptions *service.RedemptionService
	Reconciler  *service.ReconcilerService
}

// Handlers groups the HTTP layer.
type Handlers struct {
	Session    *handler.SessionHandler
	User       *handler.UserHandler
	Stats      *handler.StatsHandler
	DNI        *handler.DNIHandler
	Business   *handler.BusinessHandler
	Promotion  *handler.PromotionHandler
	Event      *handler.EventHandler
	Promoter   *handler.PromoterHandler
	Redemption *handler.RedemptionHandler
}

func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Accounts:        repository.NewAccountRepository(db),
		Profiles:        repository.NewProfileRepository(db),
		Businesses:      repository.NewBusinessRepository(db),
		Promotions:      repository.NewPromotionRepository(db),
		Events:          repository.NewEventRepository(db),
		Tickets:         repository.NewTicketRepository(db),
		Boxes:           repository.NewBoxRepository(db),
		Promoters:       repository.NewPromoterRepository(db),
		Members:         repository.NewMemberRepository(db),
		Reconciliations: repository.NewReconciliationRepository(db),
	}
}

func InitServices(cfg *config.Config, repos *Repositories, log *zap.SugaredLogger) *Services {
	tokens := auth.NewTokenService(cfg.Session.JWTSecret, cfg.Session.TokenTTL)
	return &Services{
		Tokens:      tokens,
		Sessions:    service.NewSessionService(repos.Accounts, repos.Profiles, tokens, log),
		Profiles:    service.NewProfileService(repos.Profiles, log),
		Users:       service.NewUserService(repos.Accounts, repos.Profiles, repos.Reconciliations, log),
		Stats:       service.NewStatsService(repos.Businesses, repos.Profiles, repos.Members, repos.Promotions, log),
		DNI:         service.NewDNIService(cfg.DNI, log),
		Catalog:     service.NewCatalogService(repos.Businesses, repos.Promotions, repos.Events, repos.Tickets, repos.Boxes, repos.Promoters, log),
		Redemptions: service.NewRedemptionService(repos.Promotions, log),
		Reconciler:  service.NewReconcilerService(cfg.Reconciler, repos.Reconciliations, repos.Accounts, repos.Profiles, log),
	}
}

func InitHandlers(cfg *config.Config, services *Services) *Handlers {
	return &Handlers{
		Session:    handler.NewSessionHandler(services.Sessions, services.Profiles, cfg.Session),
		User:       handler.NewUserHandler(services.Users),
		Stats:      handler.NewStatsHandler(services.Stats),
		DNI:        handler.NewDNIHandler(services.DNI),
		Business:   handler.NewBusinessHandler(services.Catalog),
		Promotion:  handler.NewPromotionHandler(services.Catalog),
		Event:      handler.NewEventHandler(services.Catalog),
		Promoter:   handler.NewPromoterHandler(services.Catalog),
		Redemption: handler.NewRedemptionHandler(services.Redemptions),
	}
}

// PopulateInitialData ensures indexes and seeds the bootstrap superadmin so
// a fresh deployment has a way in. No-op when the password is unset or the
// account already exists.
func PopulateInitialData(cfg *config.Config, repos *Repositories, log *zap.SugaredLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repos.Accounts.EnsureIndexes(ctx); err != nil {
		return err
	}

	if cfg.Bootstrap.AdminPassword == "" {
		return nil
	}
	email := util.NormalizeEmail(cfg.Bootstrap.AdminEmail)
	existing, err := repos.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Bootstrap.AdminPassword)
	if err != nil {
		return err
	}
	acc := &model.Account{
		UID:          util.GenerateUID(),
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := repos.Accounts.Create(ctx, acc); err != nil {
		return err
	}
	profile := &model.Profile{
		UID:         acc.UID,
		DisplayName: cfg.Bootstrap.AdminName,
		Email:       email,
		Roles:       model.RoleList{model.RoleSuperAdmin},
	}
	if _, err := repos.Profiles.Create(ctx, profile); err != nil {
		return err
	}
	log.Infow("seeded bootstrap superadmin", "email", email)
	return nil
}
