// service/company_service.go
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

// ICompanyService defines the interface for company operations
type ICompanyService interface {
	CreateCompany(ctx context.Context, in model.NewCompany) (*model.Company, error)
	GetCompany(ctx context.Context, id string) (*model.Company, error)
	ListCompanies(ctx context.Context, params ListParams) ([]*model.Company, error)
	UpdateCompany(ctx context.Context, id string, patch model.CompanyPatch, decision pdp_model.PolicyDecision) (*model.Company, error)
	DeleteCompany(ctx context.Context, id string) error
}

// CompanyService handles tenants. Reads go through the cache. Updates and
// deletes evict the entry before returning, and again from the event bus.
type CompanyService struct {
	*ResourceService[model.Company, *model.Company, model.CompanyPatch]
	users        Store[model.User, *model.User]
	cacheService util.ICacheService
}

var _ ICompanyService = &CompanyService{}

func NewCompanyService(store Store[model.Company, *model.Company], users Store[model.User, *model.User], validationUtil *util.ValidationUtil, cacheService util.ICacheService, notificationSvc *util.NotificationService, eventBus *util.EventBus) *CompanyService {
	service := &CompanyService{
		ResourceService: NewResourceService[model.Company, *model.Company, model.CompanyPatch](pdp_model.ResourceCompany, store, validationUtil, notificationSvc, eventBus),
		users:           users,
		cacheService:    cacheService,
	}

	eventBus.Subscribe(util.EventType(string(pdp_model.ResourceCompany), util.ChangeUpdated), service.evict)
	eventBus.Subscribe(util.EventType(string(pdp_model.ResourceCompany), util.ChangeDeleted), service.evict)

	return service
}

func (s *CompanyService) evict(ctx context.Context, event util.Event) error {
	ev, ok := event.Payload.(ChangeEvent)
	if !ok {
		return nil
	}
	return s.evictCompany(ctx, ev.ID)
}

func (s *CompanyService) evictCompany(ctx context.Context, id string) error {
	if err := s.cacheService.DeleteCompany(ctx, id); err != nil {
		logger.Warn("Failed to evict company from cache", zap.Error(err), zap.String("companyID", id))
		return err
	}
	return nil
}

// CreateCompany stores the company and, when a password is given, the COMPANY
// login sharing its id. A failed login write rolls the company back.
func (s *CompanyService) CreateCompany(ctx context.Context, in model.NewCompany) (*model.Company, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidateStruct(in); err != nil {
		return nil, err
	}

	company := in.Company
	company.ID = ""
	company.IsActive = true

	var passwordHash []byte
	if in.Password != "" {
		passwordHash, err = bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.store.Create(ctx, &company)
	if err != nil {
		logger.Error("Error creating company", zap.Error(err), zap.String("userID", principal.ID()))
		return nil, err
	}

	if passwordHash != nil {
		login := &model.User{
			ID:           created.ID,
			Name:         created.Name,
			Email:        created.Email,
			PasswordHash: string(passwordHash),
			Role:         model.RoleCompany,
			CompanyID:    created.ID,
			IsActive:     true,
		}
		if _, err := s.users.Create(ctx, login); err != nil {
			logger.Error("Error provisioning company login, rolling back company",
				zap.Error(err),
				zap.String("companyID", created.ID))
			if delErr := s.store.Delete(ctx, created.ID); delErr != nil {
				logger.Error("Failed to roll back company", zap.Error(delErr), zap.String("companyID", created.ID))
			}
			return nil, err
		}
	}

	if err := s.cacheService.SetCompany(ctx, created); err != nil {
		logger.Warn("Failed to cache company", zap.Error(err), zap.String("companyID", created.ID))
	}
	s.publish(ctx, util.ChangeCreated, created.ID, created.ID, nil, created)

	logger.Info("Company created successfully",
		zap.String("companyID", created.ID),
		zap.Bool("loginProvisioned", passwordHash != nil),
		zap.String("userID", principal.ID()))
	return created, nil
}

// GetCompany retrieves a company, trying the cache first
func (s *CompanyService) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	cached, err := s.cacheService.GetCompany(ctx, id)
	if err == nil && cached != nil {
		return cached, nil
	}

	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetCompany(ctx, company); err != nil {
		logger.Warn("Failed to cache company", zap.Error(err), zap.String("companyID", id))
	}
	return company, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context, params ListParams) ([]*model.Company, error) {
	return s.List(ctx, params)
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id string, patch model.CompanyPatch, decision pdp_model.PolicyDecision) (*model.Company, error) {
	updated, err := s.Update(ctx, id, patch, decision)
	if err != nil {
		return nil, err
	}
	_ = s.evictCompany(ctx, id)
	return updated, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	if err := s.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.evictCompany(ctx, id)
	return nil
}
