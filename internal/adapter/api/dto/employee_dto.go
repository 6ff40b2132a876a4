package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/employee"
)

// EmployeeRequest representa a requisição de funcionário
type EmployeeRequest struct {
	Name     string          `json:"name" binding:"required"`
	Position string          `json:"position"`
	Salary   decimal.Decimal `json:"salary"`
	HiredAt  *time.Time      `json:"hired_at"`
}

// EmployeeResponse representa a resposta de funcionário
type EmployeeResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Position  string          `json:"position"`
	Salary    decimal.Decimal `json:"salary"`
	HiredAt   *time.Time      `json:"hired_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EmployeeListResponse representa a resposta de lista de funcionários
type EmployeeListResponse struct {
	Items      []EmployeeResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalPages int                `json:"total_pages"`
}

// ToEmployeeResponse converte um funcionário do domínio para a resposta
func ToEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Position:  e.Position,
		Salary:    e.Salary,
		HiredAt:   e.HiredAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToEmployeeListResponse converte uma página de funcionários para a resposta de lista
func ToEmployeeListResponse(employees []*employee.Employee, total, page, size int) EmployeeListResponse {
	items := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, ToEmployeeResponse(e))
	}

	return EmployeeListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
