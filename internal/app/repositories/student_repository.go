package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/db"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/dberrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// StudentRepository handles database operations for student profiles.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

var studentSortColumns = map[string]string{
	"firstName":      "s.first_name",
	"lastName":       "s.last_name",
	"email":          "s.email",
	"enrollmentDate": "s.enrollment_date",
	"createdAt":      "s.created_at",
}

const studentSelect = `
	SELECT s.id, s.user_id, s.first_name, s.last_name, s.email, s.phone,
	       s.date_of_birth, s.address, s.department_id, s.enrollment_date,
	       s.status, s.deleted, s.deleted_at, s.deleted_by,
	       s.created_at, s.created_by, s.updated_at, s.updated_by,
	       u.username, d.name
	FROM students s
	JOIN users u ON u.id = s.user_id
	LEFT JOIN departments d ON d.id = s.department_id`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var username string
	var deptName *string
	err := row.Scan(&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.DateOfBirth, &s.Address, &s.DepartmentID, &s.EnrollmentDate,
		&s.Status, &s.Deleted, &s.DeletedAt, &s.DeletedBy,
		&s.CreatedAt, &s.CreatedBy, &s.UpdatedAt, &s.UpdatedBy,
		&username, &deptName)
	if err != nil {
		return nil, err
	}
	s.User = &models.User{ID: s.UserID, Username: username}
	if s.DepartmentID != nil && deptName != nil {
		s.Department = &models.Department{ID: *s.DepartmentID, Name: *deptName}
	}
	return &s, nil
}

// CreateWithUser inserts the login account and the student profile in one
// transaction.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUserTx(ctx, tx, user); err != nil {
			return err
		}
		student.UserID = user.ID
		return r.createTx(ctx, tx, student)
	})
}

func (r *StudentRepository) createTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO students (user_id, first_name, last_name, email, phone,
			date_of_birth, address, department_id, enrollment_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		student.UserID, student.FirstName, student.LastName, student.Email, student.Phone,
		student.DateOfBirth, student.Address, student.DepartmentID,
		student.EnrollmentDate, student.Status, student.CreatedBy,
	).Scan(&student.ID, &student.CreatedAt)

	if dberrors.IsDuplicateConstraintError(err, "uq_students_email") {
		return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
			"student with this email already exists")
	}
	if dberrors.IsForeignKeyViolation(err, "students_department_id_fkey") {
		return apperrors.NewCustomError(apperrors.ErrDepartmentNotFound,
			"department does not exist")
	}
	return err
}

// GetByID fetches a student. Soft-deleted rows are hidden unless
// includeDeleted is set.
func (r *StudentRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*models.Student, error) {
	query := studentSelect + ` WHERE s.id = $1`
	if !includeDeleted {
		query += ` AND s.deleted = FALSE`
	}
	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Student", id)
	}
	return student, err
}

// GetByUserID fetches the student profile owned by a user account.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx,
		studentSelect+` WHERE s.user_id = $1 AND s.deleted = FALSE`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound,
			"no student profile for this account")
	}
	return student, err
}

// StudentFilter narrows List results.
type StudentFilter struct {
	DepartmentID   *int64
	Status         *models.StudentStatus
	NameQuery      string
	IncludeDeleted bool
}

// List returns a page of students matching the filter, with the total count.
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter, page helpers.PageRequest) ([]*models.Student, int64, error) {
	where, args := buildStudentWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM students s` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := page.OrderClause(studentSortColumns, "s.last_name ASC")
	args = append(args, page.Size, page.Offset())
	query := studentSelect + where +
		` ORDER BY ` + order +
		` LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	return students, total, rows.Err()
}

func buildStudentWhere(filter StudentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if !filter.IncludeDeleted {
		conditions = append(conditions, "s.deleted = FALSE")
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		conditions = append(conditions, "s.department_id = $"+itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, "s.status = $"+itoa(len(args)))
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+filter.NameQuery+"%")
		n := itoa(len(args))
		conditions = append(conditions, "(s.first_name ILIKE $"+n+" OR s.last_name ILIKE $"+n+")")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Update writes every mutable profile field and keeps the login account's
// email in sync, in one transaction.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE students
			SET first_name = $1, last_name = $2, email = $3, phone = $4,
			    date_of_birth = $5, address = $6, department_id = $7, status = $8,
			    updated_at = now(), updated_by = $9
			WHERE id = $10 AND deleted = FALSE`,
			student.FirstName, student.LastName, student.Email, student.Phone,
			student.DateOfBirth, student.Address, student.DepartmentID, student.Status,
			student.UpdatedBy, student.ID)
		if dberrors.IsDuplicateConstraintError(err, "uq_students_email") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
				"student with this email already exists")
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("Student", student.ID)
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET email = $1, updated_at = now() WHERE id = $2`,
			student.Email, student.UserID)
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
				"email already registered")
		}
		return err
	})
}

// SoftDelete marks a student deleted, moves the academic standing to
// INACTIVE and deactivates the login account, in one transaction.
func (r *StudentRepository) SoftDelete(ctx context.Context, id int64, deletedBy string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE students
			SET deleted = TRUE, deleted_at = now(), deleted_by = $1,
			    status = 'INACTIVE'
			WHERE id = $2 AND deleted = FALSE`,
			deletedBy, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("Student", id)
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET is_active = FALSE, updated_at = now()
			WHERE id = (SELECT user_id FROM students WHERE id = $1)`, id)
		return err
	})
}

// Restore clears the deleted flag, returns the standing to ACTIVE and
// reactivates the login account, in one transaction. Only rows currently
// deleted are restorable.
func (r *StudentRepository) Restore(ctx context.Context, id int64, restoredBy string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE students
			SET deleted = FALSE, deleted_at = NULL, deleted_by = NULL,
			    status = 'ACTIVE', updated_at = now(), updated_by = $1
			WHERE id = $2 AND deleted = TRUE`,
			restoredBy, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewBusinessError("student %d is not deleted", id)
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET is_active = TRUE, updated_at = now()
			WHERE id = (SELECT user_id FROM students WHERE id = $1)`, id)
		return err
	})
}

// CountActiveEnrollments counts the student's ACTIVE enrollments.
func (r *StudentRepository) CountActiveEnrollments(ctx context.Context, studentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments
		WHERE student_id = $1 AND status = 'ACTIVE'`, studentID).Scan(&count)
	return count, err
}
