package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/access"
	"freiplatz/internal/logging"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

// CarrierCacheInvalidator drops cached carrier associations of an account.
type CarrierCacheInvalidator interface {
	Invalidate(accountID uuid.UUID)
}

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Me(ctx context.Context, p *access.Principal) (*response_models.AccountResponse, error)

	List(ctx context.Context, p *access.Principal, page, limit int) (*response_models.Paged[response_models.AccountResponse], error)
	Create(ctx context.Context, p *access.Principal, request request_models.CreateAccountRequest) (*response_models.AccountResponse, error)
	Update(ctx context.Context, p *access.Principal, id uuid.UUID, request request_models.UpdateAccountRequest) (*response_models.AccountResponse, error)
	Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error
	LinkCarrier(ctx context.Context, p *access.Principal, accountID, carrierID uuid.UUID) error
	UnlinkCarrier(ctx context.Context, p *access.Principal, accountID, carrierID uuid.UUID) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	carrierRepo repositories.CarrierRepository
	tokens      *utils.TokenManager
	cache       CarrierCacheInvalidator
	audit       AuditServiceInterface
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	carrierRepo repositories.CarrierRepository,
	tokens *utils.TokenManager,
	cache CarrierCacheInvalidator,
	audit AuditServiceInterface,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		carrierRepo: carrierRepo,
		tokens:      tokens,
		cache:       cache,
		audit:       audit,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, strings.TrimSpace(request.Email))
	if err != nil {
		return nil, dbError(err)
	}
	if account == nil || !account.IsActive {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("account_id", account.ID.String()).
		Dur("took", time.Since(startTime)).
		Msg("login")
	a.audit.Record(ctx, AuditEntry{UserID: &account.ID, Action: ActionLogin, Entity: EntityAccount, EntityID: &account.ID})

	carriers, err := a.accountRepo.CarrierIDsForAccount(ctx, account.ID)
	if err != nil {
		return nil, dbError(err)
	}
	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresIn: int64(a.tokens.TTL().Seconds()),
		Account:   toAccountResponse(account, carriers),
	}, nil
}

// Register creates a manager account. Other roles are assigned by admins.
func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	account, err := a.insert(ctx, request.DisplayName, request.Email, request.Password, db_models.RoleManager)
	if err != nil {
		return nil, err
	}
	a.audit.Record(ctx, AuditEntry{UserID: &account.ID, Action: ActionRegister, Entity: EntityAccount, EntityID: &account.ID})
	resp := toAccountResponse(account, nil)
	return &resp, nil
}

func (a *AccountService) insert(ctx context.Context, name, email, password string, role db_models.Role) (*db_models.Account, error) {
	email = strings.TrimSpace(email)
	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, dbError(err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &db_models.Account{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, dbError(err)
	}
	return account, nil
}

func (a *AccountService) Me(ctx context.Context, p *access.Principal) (*response_models.AccountResponse, error) {
	if p == nil {
		return nil, utils.ErrUnauthorized
	}
	account, err := a.accountRepo.FindById(ctx, p.UserID)
	if err != nil {
		return nil, dbError(err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	ids, _ := p.CarrierScope()
	resp := toAccountResponse(account, ids)
	return &resp, nil
}

func (a *AccountService) List(ctx context.Context, p *access.Principal, page, limit int) (*response_models.Paged[response_models.AccountResponse], error) {
	if err := p.Require(access.ResAccount, access.ActRead); err != nil {
		return nil, err
	}
	if err := checkPage(page, limit); err != nil {
		return nil, err
	}
	rows, total, err := a.accountRepo.List(ctx, page, limit)
	if err != nil {
		return nil, dbError(err)
	}

	items := make([]response_models.AccountResponse, 0, len(rows))
	for i := range rows {
		var carriers []uuid.UUID
		if rows[i].Role == db_models.RoleCarrier {
			if carriers, err = a.accountRepo.CarrierIDsForAccount(ctx, rows[i].ID); err != nil {
				return nil, dbError(err)
			}
		}
		items = append(items, toAccountResponse(&rows[i], carriers))
	}
	return &response_models.Paged[response_models.AccountResponse]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}

func (a *AccountService) Create(ctx context.Context, p *access.Principal, request request_models.CreateAccountRequest) (*response_models.AccountResponse, error) {
	if err := p.Require(access.ResAccount, access.ActWrite); err != nil {
		return nil, err
	}
	role := db_models.Role(request.Role)
	if !role.Valid() {
		return nil, utils.NewFieldError("role", "role must be one of: admin carrier manager leadership")
	}
	account, err := a.insert(ctx, request.Name, request.Email, request.Password, role)
	if err != nil {
		return nil, err
	}
	a.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionCreate,
		Entity:   EntityAccount,
		EntityID: &account.ID,
		Details:  map[string]string{"email": account.Email, "role": string(account.Role)},
	})
	resp := toAccountResponse(account, nil)
	return &resp, nil
}

func (a *AccountService) Update(ctx context.Context, p *access.Principal, id uuid.UUID, request request_models.UpdateAccountRequest) (*response_models.AccountResponse, error) {
	if err := p.Require(access.ResAccount, access.ActWrite); err != nil {
		return nil, err
	}
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	changed := map[string]interface{}{}
	if request.Name != nil {
		account.Name = strings.TrimSpace(*request.Name)
		changed["name"] = account.Name
	}
	if request.Email != nil && !strings.EqualFold(*request.Email, account.Email) {
		existing, err := a.accountRepo.FindByEmail(ctx, *request.Email)
		if err != nil {
			return nil, dbError(err)
		}
		if existing != nil && existing.ID != account.ID {
			return nil, utils.ErrEmailAlreadyExists
		}
		account.Email = strings.TrimSpace(*request.Email)
		changed["email"] = account.Email
	}
	if request.Password != nil {
		hashed, err := utils.HashPassword(*request.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hashed
		changed["password"] = true
	}
	if request.Role != nil {
		role := db_models.Role(*request.Role)
		if !role.Valid() {
			return nil, utils.NewFieldError("role", "role must be one of: admin carrier manager leadership")
		}
		account.Role = role
		changed["role"] = role
	}
	if request.IsActive != nil {
		account.IsActive = *request.IsActive
		changed["isActive"] = account.IsActive
	}

	if err := a.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, dbError(err)
	}
	a.cache.Invalidate(account.ID)
	a.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionUpdate, Entity: EntityAccount, EntityID: &account.ID, Details: changed})

	carriers, err := a.accountRepo.CarrierIDsForAccount(ctx, account.ID)
	if err != nil {
		return nil, dbError(err)
	}
	resp := toAccountResponse(account, carriers)
	return &resp, nil
}

func (a *AccountService) Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error {
	if err := p.Require(access.ResAccount, access.ActWrite); err != nil {
		return err
	}
	if id == p.UserID {
		return utils.NewValidationError("admins cannot delete their own account")
	}
	if err := a.accountRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, utils.ErrAccountNotFound)
	}
	a.cache.Invalidate(id)
	a.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionDelete, Entity: EntityAccount, EntityID: &id})
	return nil
}

func (a *AccountService) LinkCarrier(ctx context.Context, p *access.Principal, accountID, carrierID uuid.UUID) error {
	if err := p.Require(access.ResAccount, access.ActWrite); err != nil {
		return err
	}
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return dbError(err)
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}
	if account.Role != db_models.RoleCarrier {
		return utils.NewFieldError("role", "only carrier accounts can be linked to carriers")
	}
	carrier, err := a.carrierRepo.FindByID(ctx, carrierID)
	if err != nil {
		return dbError(err)
	}
	if carrier == nil {
		return utils.ErrCarrierNotFound
	}

	if err := a.accountRepo.AddCarrier(ctx, accountID, carrierID); err != nil {
		return dbError(err)
	}
	a.cache.Invalidate(accountID)
	a.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionUpdate,
		Entity:   EntityAccount,
		EntityID: &accountID,
		Details:  map[string]string{"linkedCarrier": carrierID.String()},
	})
	return nil
}

func (a *AccountService) UnlinkCarrier(ctx context.Context, p *access.Principal, accountID, carrierID uuid.UUID) error {
	if err := p.Require(access.ResAccount, access.ActWrite); err != nil {
		return err
	}
	if err := a.accountRepo.RemoveCarrier(ctx, accountID, carrierID); err != nil {
		return notFoundOr(err, utils.ErrCarrierNotFound)
	}
	a.cache.Invalidate(accountID)
	a.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionUpdate,
		Entity:   EntityAccount,
		EntityID: &accountID,
		Details:  map[string]string{"unlinkedCarrier": carrierID.String()},
	})
	return nil
}
