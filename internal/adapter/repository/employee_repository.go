package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/employee"
)

// Erros específicos do repositório
var (
	ErrEmployeeNotFound = errors.New("funcionário não encontrado")
)

// EmployeeRepository implementa a interface employee.Repository
type EmployeeRepository struct {
	db *pgxpool.Pool
}

// NewEmployeeRepository cria uma nova instância de EmployeeRepository
func NewEmployeeRepository(db *pgxpool.Pool) employee.Repository {
	return &EmployeeRepository{
		db: db,
	}
}

// Create implementa employee.Repository.Create
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employees (id, name, position, salary, hired_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Name, e.Position, e.Salary, e.HiredAt, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar funcionário: %w", err)
	}

	return nil
}

// FindByID implementa employee.Repository.FindByID
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	var e employee.Employee

	err := r.db.QueryRow(ctx,
		`SELECT id, name, position, salary, hired_at, created_at, updated_at
		 FROM employees WHERE id = $1`,
		id).Scan(&e.ID, &e.Name, &e.Position, &e.Salary, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("erro ao buscar funcionário: %w", err)
	}

	return &e, nil
}

// List implementa employee.Repository.List
func (r *EmployeeRepository) List(ctx context.Context, limit, offset int) ([]*employee.Employee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, position, salary, hired_at, created_at, updated_at
		 FROM employees
		 ORDER BY name ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar funcionários: %w", err)
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Salary, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler funcionário: %w", err)
		}
		employees = append(employees, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer funcionários: %w", err)
	}

	return employees, nil
}

// Update implementa employee.Repository.Update
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE employees SET name = $1, position = $2, salary = $3, hired_at = $4, updated_at = $5
		 WHERE id = $6`,
		e.Name, e.Position, e.Salary, e.HiredAt, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar funcionário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// Delete implementa employee.Repository.Delete
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir funcionário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// Count implementa employee.Repository.Count
func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM employees").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar funcionários: %w", err)
	}

	return count, nil
}
