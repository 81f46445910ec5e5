package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/dberrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// DepartmentRepository handles database operations for departments.
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// departmentSortColumns whitelists sortable columns.
var departmentSortColumns = map[string]string{
	"name":      "d.name",
	"code":      "d.code",
	"createdAt": "d.created_at",
}

const departmentSelect = `
	SELECT d.id, d.name, d.code, d.created_at, d.created_by, d.updated_at, d.updated_by,
	       (SELECT COUNT(*) FROM students s WHERE s.department_id = d.id AND s.deleted = FALSE),
	       (SELECT COUNT(*) FROM teachers t WHERE t.department_id = d.id AND t.deleted = FALSE),
	       (SELECT COUNT(*) FROM courses c WHERE c.department_id = d.id)
	FROM departments d`

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	err := row.Scan(&d.ID, &d.Name, &d.Code, &d.CreatedAt, &d.CreatedBy,
		&d.UpdatedAt, &d.UpdatedBy, &d.StudentCount, &d.TeacherCount, &d.CourseCount)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a department and fills in the generated id.
func (r *DepartmentRepository) Create(ctx context.Context, dept *models.Department) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO departments (name, code, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		dept.Name, dept.Code, dept.CreatedBy,
	).Scan(&dept.ID, &dept.CreatedAt)

	if dberrors.IsUniqueViolation(err) {
		return apperrors.NewCustomError(apperrors.ErrDepartmentAlreadyExists,
			fmt.Sprintf("department with name %q or code %q already exists", dept.Name, dept.Code))
	}
	return err
}

// GetByID fetches a department with live membership counts.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	dept, err := scanDepartment(r.db.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Department", id)
	}
	return dept, err
}

// List returns a page of departments with the total count.
func (r *DepartmentRepository) List(ctx context.Context, page helpers.PageRequest) ([]*models.Department, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := page.OrderClause(departmentSortColumns, "d.name ASC")
	rows, err := r.db.Query(ctx,
		departmentSelect+` ORDER BY `+order+` LIMIT $1 OFFSET $2`,
		page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		departments = append(departments, dept)
	}
	return departments, total, rows.Err()
}

// Update replaces name and code.
func (r *DepartmentRepository) Update(ctx context.Context, dept *models.Department) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE departments
		SET name = $1, code = $2, updated_at = now(), updated_by = $3
		WHERE id = $4`,
		dept.Name, dept.Code, dept.UpdatedBy, dept.ID)
	if dberrors.IsUniqueViolation(err) {
		return apperrors.NewCustomError(apperrors.ErrDepartmentAlreadyExists,
			fmt.Sprintf("department with name %q or code %q already exists", dept.Name, dept.Code))
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Department", dept.ID)
	}
	return nil
}

// Delete removes a department row.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Department", id)
	}
	return nil
}
