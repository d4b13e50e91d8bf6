package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freiplatz/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Account, int64, error)
	Update(ctx context.Context, account *db_models.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	CarrierIDsForAccount(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
	AddCarrier(ctx context.Context, accountID, carrierID uuid.UUID) error
	RemoveCarrier(ctx context.Context, accountID, carrierID uuid.UUID) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "LOWER(email) = LOWER(?)", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Account, int64, error) {
	var (
		accounts []db_models.Account
		total    int64
	)

	q := a.db.WithContext(ctx).Model(&db_models.Account{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (a *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Save(account).Error
}

// Delete removes the account together with its carrier associations.
func (a *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&db_models.CarrierAccount{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&db_models.Account{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (a *accountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(&db_models.Account{}).Count(&n).Error
	return n, err
}

func (a *accountRepository) CarrierIDsForAccount(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := a.db.WithContext(ctx).
		Model(&db_models.CarrierAccount{}).
		Where("account_id = ?", accountID).
		Pluck("carrier_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (a *accountRepository) AddCarrier(ctx context.Context, accountID, carrierID uuid.UUID) error {
	link := db_models.CarrierAccount{AccountID: accountID, CarrierID: carrierID}
	return a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (a *accountRepository) RemoveCarrier(ctx context.Context, accountID, carrierID uuid.UUID) error {
	return a.db.WithContext(ctx).
		Where("account_id = ? AND carrier_id = ?", accountID, carrierID).
		Delete(&db_models.CarrierAccount{}).Error
}
