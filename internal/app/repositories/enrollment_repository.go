package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/db"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/dberrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// EnrollmentRepository handles database operations for enrollments.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentSelect = `
	SELECT e.id, e.student_id, e.course_id, e.enrollment_date, e.status,
	       e.created_at, e.created_by, e.updated_at, e.updated_by,
	       s.first_name, s.last_name, s.user_id,
	       c.course_code, c.name,
	       COALESCE(t.user_id, 0),
	       (SELECT COUNT(*) FROM attendance a
	        WHERE a.enrollment_id = e.id AND a.status IN ('PRESENT', 'LATE')),
	       (SELECT COUNT(*) FROM attendance a WHERE a.enrollment_id = e.id)
	FROM enrollments e
	JOIN students s ON s.id = e.student_id
	JOIN courses c ON c.id = e.course_id
	LEFT JOIN teachers t ON t.id = c.teacher_id`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	var studentFirst, studentLast string
	var courseCode, courseName string
	var attended, totalMarks int
	err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Status,
		&e.CreatedAt, &e.CreatedBy, &e.UpdatedAt, &e.UpdatedBy,
		&studentFirst, &studentLast, &e.StudentUserID,
		&courseCode, &courseName,
		&e.CourseOwnerUserID,
		&attended, &totalMarks)
	if err != nil {
		return nil, err
	}
	e.Student = &models.Student{ID: e.StudentID, UserID: e.StudentUserID,
		FirstName: studentFirst, LastName: studentLast}
	e.Course = &models.Course{ID: e.CourseID, CourseCode: courseCode, Name: courseName}
	e.AttendancePercentage = models.ComputeAttendancePercentage(attended, 0, totalMarks)
	return &e, nil
}

// CreateEnrolled inserts an ACTIVE enrollment while holding a row lock on
// the course, so two concurrent enrollments cannot both take the last seat.
// The partial unique index on (student_id, course_id) backs the duplicate
// check as a second line of defense.
func (r *EnrollmentRepository) CreateEnrolled(ctx context.Context, enrollment *models.Enrollment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var maxCapacity int
		err := tx.QueryRow(ctx,
			`SELECT max_capacity FROM courses WHERE id = $1 FOR UPDATE`,
			enrollment.CourseID).Scan(&maxCapacity)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("Course", enrollment.CourseID)
		}
		if err != nil {
			return err
		}

		var active int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM enrollments
			WHERE course_id = $1 AND status = 'ACTIVE'`,
			enrollment.CourseID).Scan(&active)
		if err != nil {
			return err
		}
		if active >= maxCapacity {
			return apperrors.NewCustomError(apperrors.ErrCourseFull,
				"course is full, no available seats")
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO enrollments (student_id, course_id, enrollment_date, status, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			enrollment.StudentID, enrollment.CourseID, enrollment.EnrollmentDate,
			enrollment.Status, enrollment.CreatedBy,
		).Scan(&enrollment.ID, &enrollment.CreatedAt)

		if dberrors.IsDuplicateConstraintError(err, "uq_enrollments_active") {
			return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
				"student is already enrolled in this course")
		}
		return err
	})
}

// GetByID fetches an enrollment with student and course context.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, enrollmentSelect+` WHERE e.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Enrollment", id)
	}
	return enrollment, err
}

// FindActive fetches the single ACTIVE enrollment of a (student, course)
// pair, if any.
func (r *EnrollmentRepository) FindActive(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx,
		enrollmentSelect+` WHERE e.student_id = $1 AND e.course_id = $2 AND e.status = 'ACTIVE'`,
		studentID, courseID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound,
			"no active enrollment for this student and course")
	}
	return enrollment, err
}

// ListByStudent returns a page of a student's enrollments, optionally
// filtered by status, newest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64, status *models.EnrollmentStatus, page helpers.PageRequest) ([]*models.Enrollment, int64, error) {
	where := ` WHERE e.student_id = $1`
	countArgs := []interface{}{studentID}
	if status != nil {
		where += ` AND e.status = $2`
		countArgs = append(countArgs, *status)
	}

	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments e`+where, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args := append(countArgs, page.Size, page.Offset())
	limitPos := itoa(len(args) - 1)
	offsetPos := itoa(len(args))
	rows, err := r.db.Query(ctx,
		enrollmentSelect+where+
			` ORDER BY e.enrollment_date DESC, e.id DESC LIMIT $`+limitPos+` OFFSET $`+offsetPos,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectEnrollments(rows, total)
}

// ListByCourse returns a page of a course's enrollments, optionally
// filtered by status.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64, status *models.EnrollmentStatus, page helpers.PageRequest) ([]*models.Enrollment, int64, error) {
	where := ` WHERE e.course_id = $1`
	countArgs := []interface{}{courseID}
	if status != nil {
		where += ` AND e.status = $2`
		countArgs = append(countArgs, *status)
	}

	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments e`+where, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args := append(countArgs, page.Size, page.Offset())
	limitPos := itoa(len(args) - 1)
	offsetPos := itoa(len(args))
	rows, err := r.db.Query(ctx,
		enrollmentSelect+where+
			` ORDER BY s.last_name ASC, s.first_name ASC LIMIT $`+limitPos+` OFFSET $`+offsetPos,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return collectEnrollments(rows, total)
}

// ListActiveByStudent returns every ACTIVE enrollment of a student,
// unpaged, for schedule views.
func (r *EnrollmentRepository) ListActiveByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx,
		enrollmentSelect+` WHERE e.student_id = $1 AND e.status = 'ACTIVE'
		ORDER BY c.course_code ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments, _, err := collectEnrollments(rows, 0)
	return enrollments, err
}

// ListActiveByCourse returns the current ACTIVE roster of a course,
// unpaged.
func (r *EnrollmentRepository) ListActiveByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx,
		enrollmentSelect+` WHERE e.course_id = $1 AND e.status = 'ACTIVE'
		ORDER BY s.last_name ASC, s.first_name ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments, _, err := collectEnrollments(rows, 0)
	return enrollments, err
}

func collectEnrollments(rows pgx.Rows, total int64) ([]*models.Enrollment, int64, error) {
	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, total, rows.Err()
}

// ActiveIDSet returns the ids of a course's ACTIVE enrollments as a lookup
// set, for validating bulk attendance submissions.
func (r *EnrollmentRepository) ActiveIDSet(ctx context.Context, courseID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM enrollments
		WHERE course_id = $1 AND status = 'ACTIVE'`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// UpdateStatus transitions an enrollment to a new status.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, updatedBy string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enrollments
		SET status = $1, updated_at = now(), updated_by = $2
		WHERE id = $3`,
		status, updatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Enrollment", id)
	}
	return nil
}

// HasGrade reports whether a grade row exists for the enrollment.
func (r *EnrollmentRepository) HasGrade(ctx context.Context, enrollmentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM grades WHERE enrollment_id = $1)`,
		enrollmentID).Scan(&exists)
	return exists, err
}
