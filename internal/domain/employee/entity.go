package employee

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName      = errors.New("nome não pode ser vazio")
	ErrNegativeSalary = errors.New("salário não pode ser negativo")
)

// Employee representa um funcionário da loja
type Employee struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Position  string          `json:"position"`
	Salary    decimal.Decimal `json:"salary"`
	HiredAt   *time.Time      `json:"hired_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewEmployee cria um novo funcionário
func NewEmployee(name, position string, salary decimal.Decimal, hiredAt *time.Time) (*Employee, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if salary.IsNegative() {
		return nil, ErrNegativeSalary
	}

	now := time.Now()
	return &Employee{
		ID:        uuid.New().String(),
		Name:      name,
		Position:  position,
		Salary:    salary,
		HiredAt:   hiredAt,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados do funcionário
func (e *Employee) Update(name, position string, salary decimal.Decimal, hiredAt *time.Time) error {
	if name == "" {
		return ErrEmptyName
	}
	if salary.IsNegative() {
		return ErrNegativeSalary
	}

	e.Name = name
	e.Position = position
	e.Salary = salary
	e.HiredAt = hiredAt
	e.UpdatedAt = time.Now()

	return nil
}
