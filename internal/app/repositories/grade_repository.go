package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// GradeRepository handles database operations for grades.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeSelect = `
	SELECT g.id, g.enrollment_id, g.grade, g.grade_point, g.remarks, g.graded_date,
	       g.created_at, g.created_by, g.updated_at, g.updated_by,
	       e.student_id, e.course_id, e.status,
	       s.first_name, s.last_name, s.user_id,
	       c.course_code, c.name, c.credits, c.semester,
	       COALESCE(t.user_id, 0)
	FROM grades g
	JOIN enrollments e ON e.id = g.enrollment_id
	JOIN students s ON s.id = e.student_id
	JOIN courses c ON c.id = e.course_id
	LEFT JOIN teachers t ON t.id = c.teacher_id`

func scanGrade(row pgx.Row) (*models.Grade, error) {
	var g models.Grade
	var e models.Enrollment
	var studentFirst, studentLast string
	var courseCode, courseName string
	var credits int
	var semester string
	err := row.Scan(&g.ID, &g.EnrollmentID, &g.Grade, &g.GradePoint, &g.Remarks, &g.GradedDate,
		&g.CreatedAt, &g.CreatedBy, &g.UpdatedAt, &g.UpdatedBy,
		&e.StudentID, &e.CourseID, &e.Status,
		&studentFirst, &studentLast, &e.StudentUserID,
		&courseCode, &courseName, &credits, &semester,
		&e.CourseOwnerUserID)
	if err != nil {
		return nil, err
	}
	e.ID = g.EnrollmentID
	e.Student = &models.Student{ID: e.StudentID, UserID: e.StudentUserID,
		FirstName: studentFirst, LastName: studentLast}
	e.Course = &models.Course{ID: e.CourseID, CourseCode: courseCode, Name: courseName,
		Credits: credits, Semester: semester}
	g.Enrollment = &e
	return &g, nil
}

// Upsert inserts the grade of an enrollment or replaces the existing one.
func (r *GradeRepository) Upsert(ctx context.Context, grade *models.Grade) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO grades (enrollment_id, grade, grade_point, remarks, graded_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (enrollment_id) DO UPDATE
		SET grade = EXCLUDED.grade,
		    grade_point = EXCLUDED.grade_point,
		    remarks = EXCLUDED.remarks,
		    graded_date = EXCLUDED.graded_date,
		    updated_at = now(),
		    updated_by = EXCLUDED.created_by
		RETURNING id, created_at`,
		grade.EnrollmentID, grade.Grade, grade.GradePoint, grade.Remarks,
		grade.GradedDate, grade.CreatedBy,
	).Scan(&grade.ID, &grade.CreatedAt)
}

// GetByID fetches a grade with its enrollment context.
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	grade, err := scanGrade(r.db.QueryRow(ctx, gradeSelect+` WHERE g.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Grade", id)
	}
	return grade, err
}

// GetByEnrollment fetches the grade attached to an enrollment.
func (r *GradeRepository) GetByEnrollment(ctx context.Context, enrollmentID int64) (*models.Grade, error) {
	grade, err := scanGrade(r.db.QueryRow(ctx,
		gradeSelect+` WHERE g.enrollment_id = $1`, enrollmentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewCustomError(apperrors.ErrGradeNotFound,
			"no grade recorded for this enrollment")
	}
	return grade, err
}

// Delete removes a grade row.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Grade", id)
	}
	return nil
}

// ListByStudent returns every grade of a student, newest first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx,
		gradeSelect+` WHERE e.student_id = $1 ORDER BY g.graded_date DESC, g.id DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, rows.Err()
}

// PageByStudent returns a page of a student's grades, optionally narrowed
// to one semester, newest first.
func (r *GradeRepository) PageByStudent(ctx context.Context, studentID int64, semester string, page helpers.PageRequest) ([]*models.Grade, int64, error) {
	where := ` WHERE e.student_id = $1`
	countArgs := []interface{}{studentID}
	if semester != "" {
		countArgs = append(countArgs, semester)
		where += ` AND c.semester = $2`
	}

	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM grades g
		JOIN enrollments e ON e.id = g.enrollment_id
		JOIN courses c ON c.id = e.course_id`+where, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args := append(countArgs, page.Size, page.Offset())
	limitPos := itoa(len(args) - 1)
	offsetPos := itoa(len(args))
	rows, err := r.db.Query(ctx,
		gradeSelect+where+
			` ORDER BY g.graded_date DESC, g.id DESC LIMIT $`+limitPos+` OFFSET $`+offsetPos,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, 0, err
		}
		grades = append(grades, grade)
	}
	return grades, total, rows.Err()
}

// ListByCourse returns every grade recorded in a course.
func (r *GradeRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx,
		gradeSelect+` WHERE e.course_id = $1 ORDER BY s.last_name ASC, s.first_name ASC`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, rows.Err()
}

// DistributionByCourse counts grades per letter for a course.
func (r *GradeRepository) DistributionByCourse(ctx context.Context, courseID int64) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.grade, COUNT(*)
		FROM grades g
		JOIN enrollments e ON e.id = g.enrollment_id
		WHERE e.course_id = $1
		GROUP BY g.grade`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := make(map[string]int64)
	for rows.Next() {
		var letter string
		var count int64
		if err := rows.Scan(&letter, &count); err != nil {
			return nil, err
		}
		distribution[letter] = count
	}
	return distribution, rows.Err()
}

// TopPerformerRow is one student ranked by average grade point.
type TopPerformerRow struct {
	StudentID   int64
	FirstName   string
	LastName    string
	GPA         float64
	GradedCount int
}

// TopPerformers ranks students by the plain average of their grade points
// across all graded enrollments.
func (r *GradeRepository) TopPerformers(ctx context.Context, limit int) ([]TopPerformerRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.first_name, s.last_name,
		       AVG(g.grade_point) AS gpa,
		       COUNT(*) AS graded
		FROM grades g
		JOIN enrollments e ON e.id = g.enrollment_id
		JOIN students s ON s.id = e.student_id
		WHERE s.deleted = FALSE
		GROUP BY s.id, s.first_name, s.last_name
		ORDER BY gpa DESC, s.last_name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performers []TopPerformerRow
	for rows.Next() {
		var p TopPerformerRow
		if err := rows.Scan(&p.StudentID, &p.FirstName, &p.LastName, &p.GPA, &p.GradedCount); err != nil {
			return nil, err
		}
		performers = append(performers, p)
	}
	return performers, rows.Err()
}
