package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:manager"`
	IsActive     bool   `gorm:"not null;default:true"`
}
