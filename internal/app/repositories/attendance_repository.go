package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/db"
	"github.com/edutech/studify/internal/pkg/apperrors"
)

// AttendanceRepository handles database operations for attendance marks.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.enrollment_id, a.date, a.status,
	       a.created_at, a.created_by, a.updated_at, a.updated_by,
	       s.first_name, s.last_name, s.user_id,
	       e.course_id,
	       COALESCE(t.user_id, 0)
	FROM attendance a
	JOIN enrollments e ON e.id = a.enrollment_id
	JOIN students s ON s.id = e.student_id
	JOIN courses c ON c.id = e.course_id
	LEFT JOIN teachers t ON t.id = c.teacher_id`

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var a models.Attendance
	var studentFirst, studentLast string
	err := row.Scan(&a.ID, &a.EnrollmentID, &a.Date, &a.Status,
		&a.CreatedAt, &a.CreatedBy, &a.UpdatedAt, &a.UpdatedBy,
		&studentFirst, &studentLast, &a.StudentUserID,
		&a.CourseID,
		&a.CourseOwnerUserID)
	if err != nil {
		return nil, err
	}
	a.Enrollment = &models.Enrollment{
		ID:       a.EnrollmentID,
		CourseID: a.CourseID,
		Student:  &models.Student{UserID: a.StudentUserID, FirstName: studentFirst, LastName: studentLast},
	}
	return &a, nil
}

// UpsertBatch writes one course-day of marks in a single transaction,
// replacing any existing mark per (enrollment, date).
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, records []*models.Attendance) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, record := range records {
			err := tx.QueryRow(ctx, `
				INSERT INTO attendance (enrollment_id, date, status, created_by)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (enrollment_id, date) DO UPDATE
				SET status = EXCLUDED.status,
				    updated_at = now(),
				    updated_by = EXCLUDED.created_by
				RETURNING id, created_at`,
				record.EnrollmentID, record.Date, record.Status, record.CreatedBy,
			).Scan(&record.ID, &record.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID fetches an attendance mark with its ownership context.
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	record, err := scanAttendance(r.db.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Attendance record", id)
	}
	return record, err
}

// UpdateStatus corrects a recorded mark.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus, updatedBy string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE attendance
		SET status = $1, updated_at = now(), updated_by = $2
		WHERE id = $3`,
		status, updatedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Attendance record", id)
	}
	return nil
}

// ListByCourseAndDate returns every mark of a course on one date.
func (r *AttendanceRepository) ListByCourseAndDate(ctx context.Context, courseID int64, date time.Time) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx,
		attendanceSelect+` WHERE e.course_id = $1 AND a.date = $2
		ORDER BY s.last_name ASC, s.first_name ASC`,
		courseID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByEnrollment returns the full attendance history of one enrollment.
func (r *AttendanceRepository) ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx,
		attendanceSelect+` WHERE a.enrollment_id = $1 ORDER BY a.date DESC`,
		enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByStudent returns a student's marks across courses, optionally
// narrowed to one course and an inclusive date range, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64, courseID *int64, from, to *time.Time) ([]*models.Attendance, error) {
	where := ` WHERE e.student_id = $1`
	args := []interface{}{studentID}
	if courseID != nil {
		args = append(args, *courseID)
		where += ` AND e.course_id = $` + itoa(len(args))
	}
	if from != nil {
		args = append(args, *from)
		where += ` AND a.date >= $` + itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += ` AND a.date <= $` + itoa(len(args))
	}

	rows, err := r.db.Query(ctx, attendanceSelect+where+` ORDER BY a.date DESC, a.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]*models.Attendance, error) {
	var records []*models.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountByStatus tallies a course-day's marks per status.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, courseID int64, date time.Time) (map[models.AttendanceStatus]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.status, COUNT(*)
		FROM attendance a
		JOIN enrollments e ON e.id = a.enrollment_id
		WHERE e.course_id = $1 AND a.date = $2
		GROUP BY a.status`, courseID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStatusCounts(rows)
}

// CountAllByStatus tallies every mark of a course per status, across all
// dates.
func (r *AttendanceRepository) CountAllByStatus(ctx context.Context, courseID int64) (map[models.AttendanceStatus]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.status, COUNT(*)
		FROM attendance a
		JOIN enrollments e ON e.id = a.enrollment_id
		WHERE e.course_id = $1
		GROUP BY a.status`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStatusCounts(rows)
}

func collectStatusCounts(rows pgx.Rows) (map[models.AttendanceStatus]int, error) {
	counts := make(map[models.AttendanceStatus]int)
	for rows.Next() {
		var status models.AttendanceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
