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

// TeacherRepository handles database operations for teacher profiles.
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository.
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

var teacherSortColumns = map[string]string{
	"firstName": "t.first_name",
	"lastName":  "t.last_name",
	"email":     "t.email",
	"createdAt": "t.created_at",
}

const teacherSelect = `
	SELECT t.id, t.user_id, t.first_name, t.last_name, t.email, t.phone,
	       t.specialization, t.department_id,
	       t.deleted, t.deleted_at, t.deleted_by,
	       t.created_at, t.created_by, t.updated_at, t.updated_by,
	       u.username, d.name,
	       (SELECT COUNT(*) FROM courses c WHERE c.teacher_id = t.id)
	FROM teachers t
	JOIN users u ON u.id = t.user_id
	LEFT JOIN departments d ON d.id = t.department_id`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	var username string
	var deptName *string
	err := row.Scan(&t.ID, &t.UserID, &t.FirstName, &t.LastName, &t.Email, &t.Phone,
		&t.Specialization, &t.DepartmentID,
		&t.Deleted, &t.DeletedAt, &t.DeletedBy,
		&t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy,
		&username, &deptName, &t.CourseCount)
	if err != nil {
		return nil, err
	}
	t.User = &models.User{ID: t.UserID, Username: username}
	if t.DepartmentID != nil && deptName != nil {
		t.Department = &models.Department{ID: *t.DepartmentID, Name: *deptName}
	}
	return &t, nil
}

// CreateWithUser inserts the login account and the teacher profile in one
// transaction.
func (r *TeacherRepository) CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUserTx(ctx, tx, user); err != nil {
			return err
		}
		teacher.UserID = user.ID
		return r.createTx(ctx, tx, teacher)
	})
}

func (r *TeacherRepository) createTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO teachers (user_id, first_name, last_name, email, phone,
			specialization, department_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		teacher.UserID, teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone,
		teacher.Specialization, teacher.DepartmentID, teacher.CreatedBy,
	).Scan(&teacher.ID, &teacher.CreatedAt)

	if dberrors.IsDuplicateConstraintError(err, "uq_teachers_email") {
		return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
			"teacher with this email already exists")
	}
	if dberrors.IsForeignKeyViolation(err, "teachers_department_id_fkey") {
		return apperrors.NewCustomError(apperrors.ErrDepartmentNotFound,
			"department does not exist")
	}
	return err
}

// GetByID fetches a teacher. Soft-deleted rows are hidden unless
// includeDeleted is set.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*models.Teacher, error) {
	query := teacherSelect + ` WHERE t.id = $1`
	if !includeDeleted {
		query += ` AND t.deleted = FALSE`
	}
	teacher, err := scanTeacher(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Teacher", id)
	}
	return teacher, err
}

// GetByUserID fetches the teacher profile owned by a user account.
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	teacher, err := scanTeacher(r.db.QueryRow(ctx,
		teacherSelect+` WHERE t.user_id = $1 AND t.deleted = FALSE`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewCustomError(apperrors.ErrTeacherNotFound,
			"no teacher profile for this account")
	}
	return teacher, err
}

// TeacherFilter narrows List results.
type TeacherFilter struct {
	DepartmentID   *int64
	NameQuery      string
	IncludeDeleted bool
}

// List returns a page of teachers matching the filter, with the total count.
func (r *TeacherRepository) List(ctx context.Context, filter TeacherFilter, page helpers.PageRequest) ([]*models.Teacher, int64, error) {
	var conditions []string
	var args []interface{}

	if !filter.IncludeDeleted {
		conditions = append(conditions, "t.deleted = FALSE")
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		conditions = append(conditions, "t.department_id = $"+itoa(len(args)))
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+filter.NameQuery+"%")
		n := itoa(len(args))
		conditions = append(conditions, "(t.first_name ILIKE $"+n+" OR t.last_name ILIKE $"+n+")")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers t`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := page.OrderClause(teacherSortColumns, "t.last_name ASC")
	args = append(args, page.Size, page.Offset())
	query := teacherSelect + where +
		` ORDER BY ` + order +
		` LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, total, rows.Err()
}

// Update writes every mutable profile field and keeps the login account's
// email in sync, in one transaction.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE teachers
			SET first_name = $1, last_name = $2, email = $3, phone = $4,
			    specialization = $5, department_id = $6,
			    updated_at = now(), updated_by = $7
			WHERE id = $8 AND deleted = FALSE`,
			teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone,
			teacher.Specialization, teacher.DepartmentID,
			teacher.UpdatedBy, teacher.ID)
		if dberrors.IsDuplicateConstraintError(err, "uq_teachers_email") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
				"teacher with this email already exists")
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("Teacher", teacher.ID)
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET email = $1, updated_at = now() WHERE id = $2`,
			teacher.Email, teacher.UserID)
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
				"email already registered")
		}
		return err
	})
}

// SoftDelete marks a teacher deleted and deactivates the login account, in
// one transaction.
func (r *TeacherRepository) SoftDelete(ctx context.Context, id int64, deletedBy string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE teachers
			SET deleted = TRUE, deleted_at = now(), deleted_by = $1
			WHERE id = $2 AND deleted = FALSE`,
			deletedBy, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("Teacher", id)
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET is_active = FALSE, updated_at = now()
			WHERE id = (SELECT user_id FROM teachers WHERE id = $1)`, id)
		return err
	})
}

// Restore clears the deleted flag and reactivates the login account, in one
// transaction. Only rows currently deleted are restorable.
func (r *TeacherRepository) Restore(ctx context.Context, id int64, restoredBy string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE teachers
			SET deleted = FALSE, deleted_at = NULL, deleted_by = NULL,
			    updated_at = now(), updated_by = $1
			WHERE id = $2 AND deleted = TRUE`,
			restoredBy, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewBusinessError("teacher %d is not deleted", id)
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET is_active = TRUE, updated_at = now()
			WHERE id = (SELECT user_id FROM teachers WHERE id = $1)`, id)
		return err
	})
}

// CountOwnedCourses counts courses currently assigned to a teacher.
func (r *TeacherRepository) CountOwnedCourses(ctx context.Context, teacherID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM courses WHERE teacher_id = $1`, teacherID).Scan(&count)
	return count, err
}
