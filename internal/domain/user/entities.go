package user

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusDeactivated Status = "deactivated"
)

// Section structs are embedded into User with column prefixes. Optionality
// is by empty value; the profile scorer treats empty as missing.
type PersonalInfo struct {
	FirstName   string `gorm:"size:100" json:"first_name"`
	LastName    string `gorm:"size:100" json:"last_name"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:32" json:"phone"`
	DateOfBirth string `gorm:"size:10" json:"date_of_birth"`
}

type AddressInfo struct {
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	Province   string `gorm:"size:100" json:"province"`
	PostalCode string `gorm:"size:16" json:"postal_code"`
}

type EmploymentInfo struct {
	Employer      string `gorm:"size:255" json:"employer"`
	JobTitle      string `gorm:"size:100" json:"job_title"`
	EmployedSince string `gorm:"size:10" json:"employed_since"`
}

type FinancialInfo struct {
	MonthlyIncome   float64 `gorm:"type:decimal(18,2)" json:"monthly_income"`
	MonthlyExpenses float64 `gorm:"type:decimal(18,2)" json:"monthly_expenses"`
	BankName        string  `gorm:"size:100" json:"bank_name"`
	AccountNumber   string  `gorm:"size:34" json:"account_number"`
}

type User struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID     string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Personal   PersonalInfo   `gorm:"embedded" json:"personal"`
	Address    AddressInfo    `gorm:"embedded;embeddedPrefix:addr_" json:"address"`
	Employment EmploymentInfo `gorm:"embedded;embeddedPrefix:emp_" json:"employment"`
	Financial  FinancialInfo  `gorm:"embedded;embeddedPrefix:fin_" json:"financial"`
	Status     Status         `gorm:"size:16;default:'active'" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
