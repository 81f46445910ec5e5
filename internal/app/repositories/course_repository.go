package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/dberrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// CourseRepository handles database operations for courses.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

var courseSortColumns = map[string]string{
	"courseCode": "c.course_code",
	"name":       "c.name",
	"credits":    "c.credits",
	"semester":   "c.semester",
	"createdAt":  "c.created_at",
}

const courseSelect = `
	SELECT c.id, c.course_code, c.name, c.description, c.credits, c.semester,
	       c.max_capacity, c.department_id, c.teacher_id,
	       c.created_at, c.created_by, c.updated_at, c.updated_by,
	       d.name,
	       t.id, t.user_id, t.first_name, t.last_name,
	       (SELECT COUNT(*) FROM enrollments e
	        WHERE e.course_id = c.id AND e.status = 'ACTIVE')
	FROM courses c
	JOIN departments d ON d.id = c.department_id
	LEFT JOIN teachers t ON t.id = c.teacher_id`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var deptName string
	var teacherID, teacherUserID *int64
	var teacherFirst, teacherLast *string
	err := row.Scan(&c.ID, &c.CourseCode, &c.Name, &c.Description, &c.Credits, &c.Semester,
		&c.MaxCapacity, &c.DepartmentID, &c.TeacherID,
		&c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
		&deptName,
		&teacherID, &teacherUserID, &teacherFirst, &teacherLast,
		&c.EnrolledCount)
	if err != nil {
		return nil, err
	}
	c.Department = &models.Department{ID: c.DepartmentID, Name: deptName}
	if teacherID != nil {
		c.Teacher = &models.Teacher{
			ID:        *teacherID,
			UserID:    *teacherUserID,
			FirstName: helpers.StringValue(teacherFirst),
			LastName:  helpers.StringValue(teacherLast),
		}
	}
	return &c, nil
}

// Create inserts a course and fills in the generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (course_code, name, description, credits, semester,
			max_capacity, department_id, teacher_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		course.CourseCode, course.Name, course.Description, course.Credits,
		course.Semester, course.MaxCapacity, course.DepartmentID, course.TeacherID,
		course.CreatedBy,
	).Scan(&course.ID, &course.CreatedAt)

	if dberrors.IsDuplicateConstraintError(err, "uq_courses_code") {
		return apperrors.NewCustomError(apperrors.ErrCourseCodeExists,
			"course with code "+course.CourseCode+" already exists")
	}
	if dberrors.IsForeignKeyViolation(err, "courses_department_id_fkey") {
		return apperrors.NewCustomError(apperrors.ErrDepartmentNotFound,
			"department does not exist")
	}
	if dberrors.IsForeignKeyViolation(err, "courses_teacher_id_fkey") {
		return apperrors.NewCustomError(apperrors.ErrTeacherNotFound,
			"teacher does not exist")
	}
	return err
}

// GetByID fetches a course with its department, teacher and live occupancy.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, courseSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Course", id)
	}
	return course, err
}

// GetByCode fetches a course by its unique course code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, courseSelect+` WHERE c.course_code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			"no course with code "+code)
	}
	return course, err
}

// CourseFilter narrows List results.
type CourseFilter struct {
	DepartmentID *int64
	TeacherID    *int64
	Semester     string
	NameQuery    string
}

// List returns a page of courses matching the filter, with the total count.
func (r *CourseRepository) List(ctx context.Context, filter CourseFilter, page helpers.PageRequest) ([]*models.Course, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		conditions = append(conditions, "c.department_id = $"+itoa(len(args)))
	}
	if filter.TeacherID != nil {
		args = append(args, *filter.TeacherID)
		conditions = append(conditions, "c.teacher_id = $"+itoa(len(args)))
	}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		conditions = append(conditions, "c.semester = $"+itoa(len(args)))
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+filter.NameQuery+"%")
		n := itoa(len(args))
		conditions = append(conditions, "(c.name ILIKE $"+n+" OR c.course_code ILIKE $"+n+")")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses c`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := page.OrderClause(courseSortColumns, "c.course_code ASC")
	args = append(args, page.Size, page.Offset())
	query := courseSelect + where +
		` ORDER BY ` + order +
		` LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}
	return courses, total, rows.Err()
}

// ListAvailable returns a page of courses that still have open seats,
// measured against the live ACTIVE enrollment count.
func (r *CourseRepository) ListAvailable(ctx context.Context, page helpers.PageRequest) ([]*models.Course, int64, error) {
	const openSeats = ` WHERE c.max_capacity > (SELECT COUNT(*) FROM enrollments e
		WHERE e.course_id = c.id AND e.status = 'ACTIVE')`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses c`+openSeats).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := page.OrderClause(courseSortColumns, "c.course_code ASC")
	rows, err := r.db.Query(ctx,
		courseSelect+openSeats+` ORDER BY `+order+` LIMIT $1 OFFSET $2`,
		page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}
	return courses, total, rows.Err()
}

// Update writes every mutable course field.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET name = $1, description = $2, credits = $3, semester = $4,
		    max_capacity = $5, department_id = $6, teacher_id = $7,
		    updated_at = now(), updated_by = $8
		WHERE id = $9`,
		course.Name, course.Description, course.Credits, course.Semester,
		course.MaxCapacity, course.DepartmentID, course.TeacherID,
		course.UpdatedBy, course.ID)
	if dberrors.IsForeignKeyViolation(err, "courses_teacher_id_fkey") {
		return apperrors.NewCustomError(apperrors.ErrTeacherNotFound,
			"teacher does not exist")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Course", course.ID)
	}
	return nil
}

// Delete removes a course row.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Course", id)
	}
	return nil
}

// CountEnrollments counts enrollments of any status for a course.
func (r *CourseRepository) CountEnrollments(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`, courseID).Scan(&count)
	return count, err
}

// CountActiveEnrollments counts ACTIVE enrollments for a course.
func (r *CourseRepository) CountActiveEnrollments(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments
		WHERE course_id = $1 AND status = 'ACTIVE'`, courseID).Scan(&count)
	return count, err
}
