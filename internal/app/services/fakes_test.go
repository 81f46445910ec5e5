package services

import (
	"context"
	"sync"
	"time"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// In-memory stand-ins for the repository layer. They honor the same error
// contracts the real repositories do, which is what the services react to.

var adminPrincipal = auth.Principal{UserID: 1, Username: "admin", Role: models.RoleAdmin, Active: true}

func teacherPrincipal(userID int64) auth.Principal {
	return auth.Principal{UserID: userID, Username: "teacher", Role: models.RoleTeacher, Active: true}
}

func studentPrincipal(userID int64) auth.Principal {
	return auth.Principal{UserID: userID, Username: "student", Role: models.RoleStudent, Active: true}
}

// --- students ---

type fakeStudentStore struct {
	nextID   int64
	students map[int64]*models.Student
	// lastFilter records what List was called with.
	lastFilter repositories.StudentFilter
}

func newFakeStudentStore(students ...*models.Student) *fakeStudentStore {
	s := &fakeStudentStore{students: make(map[int64]*models.Student)}
	for _, student := range students {
		if student.ID > s.nextID {
			s.nextID = student.ID
		}
		s.students[student.ID] = student
	}
	return s
}

func (s *fakeStudentStore) CreateWithUser(_ context.Context, user *models.User, student *models.Student) error {
	s.nextID++
	user.ID = s.nextID + 1000
	student.ID = s.nextID
	student.UserID = user.ID
	s.students[student.ID] = student
	return nil
}

func (s *fakeStudentStore) GetByID(_ context.Context, id int64, includeDeleted bool) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok || (student.Deleted && !includeDeleted) {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "student not found")
	}
	return student, nil
}

func (s *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range s.students {
		if student.UserID == userID && !student.Deleted {
			return student, nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "student not found")
}

func (s *fakeStudentStore) List(_ context.Context, filter repositories.StudentFilter, _ helpers.PageRequest) ([]*models.Student, int64, error) {
	s.lastFilter = filter
	var out []*models.Student
	for _, student := range s.students {
		if student.Deleted && !filter.IncludeDeleted {
			continue
		}
		out = append(out, student)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.NewCustomError(apperrors.ErrStudentNotFound, "student not found")
	}
	s.students[student.ID] = student
	return nil
}

func (s *fakeStudentStore) SoftDelete(_ context.Context, id int64, deletedBy string) error {
	student, ok := s.students[id]
	if !ok || student.Deleted {
		return apperrors.NewCustomError(apperrors.ErrStudentNotFound, "student not found")
	}
	student.Deleted = true
	student.DeletedBy = &deletedBy
	student.Status = models.StudentInactive
	return nil
}

func (s *fakeStudentStore) Restore(_ context.Context, id int64, _ string) error {
	student, ok := s.students[id]
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrStudentNotFound, "student not found")
	}
	if !student.Deleted {
		return apperrors.NewBusinessError("student %d is not deleted", id)
	}
	student.Deleted = false
	student.DeletedBy = nil
	student.Status = models.StudentActive
	return nil
}

// --- accounts ---

type fakeAccounts struct {
	taken map[string]bool
}

func (a *fakeAccounts) UsernameExists(_ context.Context, username string) (bool, error) {
	return a.taken[username], nil
}

// --- teachers ---

type fakeTeacherStore struct {
	nextID   int64
	teachers map[int64]*models.Teacher
	owned    map[int64]int64 // teacherID -> course count
}

func newFakeTeacherStore(teachers ...*models.Teacher) *fakeTeacherStore {
	s := &fakeTeacherStore{teachers: make(map[int64]*models.Teacher), owned: make(map[int64]int64)}
	for _, teacher := range teachers {
		if teacher.ID > s.nextID {
			s.nextID = teacher.ID
		}
		s.teachers[teacher.ID] = teacher
	}
	return s
}

func (s *fakeTeacherStore) CreateWithUser(_ context.Context, user *models.User, teacher *models.Teacher) error {
	s.nextID++
	user.ID = s.nextID + 2000
	teacher.ID = s.nextID
	teacher.UserID = user.ID
	s.teachers[teacher.ID] = teacher
	return nil
}

func (s *fakeTeacherStore) GetByID(_ context.Context, id int64, includeDeleted bool) (*models.Teacher, error) {
	teacher, ok := s.teachers[id]
	if !ok || (teacher.Deleted && !includeDeleted) {
		return nil, apperrors.NewCustomError(apperrors.ErrTeacherNotFound, "teacher not found")
	}
	return teacher, nil
}

func (s *fakeTeacherStore) GetByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	for _, teacher := range s.teachers {
		if teacher.UserID == userID && !teacher.Deleted {
			return teacher, nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrTeacherNotFound, "teacher not found")
}

func (s *fakeTeacherStore) List(_ context.Context, filter repositories.TeacherFilter, _ helpers.PageRequest) ([]*models.Teacher, int64, error) {
	var out []*models.Teacher
	for _, teacher := range s.teachers {
		if teacher.Deleted && !filter.IncludeDeleted {
			continue
		}
		out = append(out, teacher)
	}
	return out, int64(len(out)), nil
}

func (s *fakeTeacherStore) Update(_ context.Context, teacher *models.Teacher) error {
	s.teachers[teacher.ID] = teacher
	return nil
}

func (s *fakeTeacherStore) SoftDelete(_ context.Context, id int64, deletedBy string) error {
	teacher, ok := s.teachers[id]
	if !ok || teacher.Deleted {
		return apperrors.NewCustomError(apperrors.ErrTeacherNotFound, "teacher not found")
	}
	teacher.Deleted = true
	teacher.DeletedBy = &deletedBy
	return nil
}

func (s *fakeTeacherStore) Restore(_ context.Context, id int64, _ string) error {
	teacher, ok := s.teachers[id]
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrTeacherNotFound, "teacher not found")
	}
	if !teacher.Deleted {
		return apperrors.NewBusinessError("teacher %d is not deleted", id)
	}
	teacher.Deleted = false
	return nil
}

func (s *fakeTeacherStore) CountOwnedCourses(_ context.Context, teacherID int64) (int64, error) {
	return s.owned[teacherID], nil
}

// --- departments ---

type fakeDepartmentStore struct {
	nextID      int64
	departments map[int64]*models.Department
}

func newFakeDepartmentStore(departments ...*models.Department) *fakeDepartmentStore {
	s := &fakeDepartmentStore{departments: make(map[int64]*models.Department)}
	for _, dept := range departments {
		if dept.ID > s.nextID {
			s.nextID = dept.ID
		}
		s.departments[dept.ID] = dept
	}
	return s
}

func (s *fakeDepartmentStore) Create(_ context.Context, dept *models.Department) error {
	for _, existing := range s.departments {
		if existing.Name == dept.Name || existing.Code == dept.Code {
			return apperrors.NewCustomError(apperrors.ErrDepartmentAlreadyExists,
				"department with this name or code already exists")
		}
	}
	s.nextID++
	dept.ID = s.nextID
	s.departments[dept.ID] = dept
	return nil
}

func (s *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	dept, ok := s.departments[id]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrDepartmentNotFound, "department not found")
	}
	return dept, nil
}

func (s *fakeDepartmentStore) List(_ context.Context, _ helpers.PageRequest) ([]*models.Department, int64, error) {
	var out []*models.Department
	for _, dept := range s.departments {
		out = append(out, dept)
	}
	return out, int64(len(out)), nil
}

func (s *fakeDepartmentStore) Update(_ context.Context, dept *models.Department) error {
	s.departments[dept.ID] = dept
	return nil
}

func (s *fakeDepartmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.departments[id]; !ok {
		return apperrors.NewCustomError(apperrors.ErrDepartmentNotFound, "department not found")
	}
	delete(s.departments, id)
	return nil
}

// --- courses ---

type fakeCourseStore struct {
	nextID           int64
	courses          map[int64]*models.Course
	enrollmentCounts map[int64]int64 // any status
	activeCounts     map[int64]int64
	deleted          []int64
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	s := &fakeCourseStore{
		courses:          make(map[int64]*models.Course),
		enrollmentCounts: make(map[int64]int64),
		activeCounts:     make(map[int64]int64),
	}
	for _, course := range courses {
		if course.ID > s.nextID {
			s.nextID = course.ID
		}
		s.courses[course.ID] = course
	}
	return s
}

func (s *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	s.nextID++
	course.ID = s.nextID
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found")
	}
	return course, nil
}

func (s *fakeCourseStore) GetByCode(_ context.Context, code string) (*models.Course, error) {
	for _, course := range s.courses {
		if course.CourseCode == code {
			return course, nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "no course with code "+code)
}

func (s *fakeCourseStore) List(_ context.Context, _ repositories.CourseFilter, _ helpers.PageRequest) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, course := range s.courses {
		out = append(out, course)
	}
	return out, int64(len(out)), nil
}

func (s *fakeCourseStore) ListAvailable(_ context.Context, _ helpers.PageRequest) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, course := range s.courses {
		if s.activeCounts[course.ID] < int64(course.MaxCapacity) {
			out = append(out, course)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.courses[id]; !ok {
		return apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found")
	}
	delete(s.courses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeCourseStore) CountEnrollments(_ context.Context, courseID int64) (int64, error) {
	return s.enrollmentCounts[courseID], nil
}

func (s *fakeCourseStore) CountActiveEnrollments(_ context.Context, courseID int64) (int64, error) {
	return s.activeCounts[courseID], nil
}

// --- enrollments ---

// fakeEnrollmentStore mirrors the transactional contract of the real store:
// CreateEnrolled recounts capacity under a lock, so concurrent enrollments
// for the last seat admit exactly one.
type fakeEnrollmentStore struct {
	mu          sync.Mutex
	nextID      int64
	enrollments map[int64]*models.Enrollment
	capacities  map[int64]int // courseID -> max capacity
	graded      map[int64]bool
}

func newFakeEnrollmentStore(enrollments ...*models.Enrollment) *fakeEnrollmentStore {
	s := &fakeEnrollmentStore{
		enrollments: make(map[int64]*models.Enrollment),
		capacities:  make(map[int64]int),
		graded:      make(map[int64]bool),
	}
	for _, enrollment := range enrollments {
		if enrollment.ID > s.nextID {
			s.nextID = enrollment.ID
		}
		s.enrollments[enrollment.ID] = enrollment
	}
	return s
}

func (s *fakeEnrollmentStore) CreateEnrolled(_ context.Context, enrollment *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity, ok := s.capacities[enrollment.CourseID]
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found")
	}

	active := 0
	for _, existing := range s.enrollments {
		if existing.CourseID != enrollment.CourseID || existing.Status != models.EnrollmentActive {
			continue
		}
		if existing.StudentID == enrollment.StudentID {
			return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
				"student is already enrolled in this course")
		}
		active++
	}
	if active >= capacity {
		return apperrors.NewCustomError(apperrors.ErrCourseFull, "course is full, no available seats")
	}

	s.nextID++
	enrollment.ID = s.nextID
	enrollment.CreatedAt = time.Now()
	s.enrollments[enrollment.ID] = enrollment
	return nil
}

func (s *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enrollment, ok := s.enrollments[id]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound, "enrollment not found")
	}
	return enrollment, nil
}

func (s *fakeEnrollmentStore) FindActive(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID &&
			enrollment.Status == models.EnrollmentActive {
			return enrollment, nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound, "enrollment not found")
}

func (s *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64, status *models.EnrollmentStatus, _ helpers.PageRequest) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID != studentID {
			continue
		}
		if status != nil && enrollment.Status != *status {
			continue
		}
		out = append(out, enrollment)
	}
	return out, int64(len(out)), nil
}

func (s *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int64, status *models.EnrollmentStatus, _ helpers.PageRequest) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID != courseID {
			continue
		}
		if status != nil && enrollment.Status != *status {
			continue
		}
		out = append(out, enrollment)
	}
	return out, int64(len(out)), nil
}

func (s *fakeEnrollmentStore) ListActiveByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID && enrollment.Status == models.EnrollmentActive {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) ListActiveByCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID && enrollment.Status == models.EnrollmentActive {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) UpdateStatus(_ context.Context, id int64, status models.EnrollmentStatus, _ string) error {
	enrollment, ok := s.enrollments[id]
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound, "enrollment not found")
	}
	enrollment.Status = status
	return nil
}

func (s *fakeEnrollmentStore) HasGrade(_ context.Context, enrollmentID int64) (bool, error) {
	return s.graded[enrollmentID], nil
}

func (s *fakeEnrollmentStore) ActiveIDSet(_ context.Context, courseID int64) (map[int64]bool, error) {
	ids := make(map[int64]bool)
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID && enrollment.Status == models.EnrollmentActive {
			ids[enrollment.ID] = true
		}
	}
	return ids, nil
}

// --- grades ---

type fakeGradeStore struct {
	nextID       int64
	byEnrollment map[int64]*models.Grade
	enrollments  *fakeEnrollmentStore
	performers   []repositories.TopPerformerRow
	lastLimit    int
}

func newFakeGradeStore(enrollments *fakeEnrollmentStore) *fakeGradeStore {
	return &fakeGradeStore{
		byEnrollment: make(map[int64]*models.Grade),
		enrollments:  enrollments,
	}
}

func (s *fakeGradeStore) hydrate(grade *models.Grade) *models.Grade {
	if grade.Enrollment == nil && s.enrollments != nil {
		grade.Enrollment = s.enrollments.enrollments[grade.EnrollmentID]
	}
	return grade
}

func (s *fakeGradeStore) Upsert(_ context.Context, grade *models.Grade) error {
	if existing, ok := s.byEnrollment[grade.EnrollmentID]; ok {
		grade.ID = existing.ID
	} else {
		s.nextID++
		grade.ID = s.nextID
	}
	s.byEnrollment[grade.EnrollmentID] = grade
	if s.enrollments != nil {
		s.enrollments.graded[grade.EnrollmentID] = true
	}
	return nil
}

func (s *fakeGradeStore) GetByID(_ context.Context, id int64) (*models.Grade, error) {
	for _, grade := range s.byEnrollment {
		if grade.ID == id {
			return s.hydrate(grade), nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrGradeNotFound, "grade not found")
}

func (s *fakeGradeStore) GetByEnrollment(_ context.Context, enrollmentID int64) (*models.Grade, error) {
	grade, ok := s.byEnrollment[enrollmentID]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrGradeNotFound, "grade not found")
	}
	return s.hydrate(grade), nil
}

func (s *fakeGradeStore) Delete(_ context.Context, id int64) error {
	for enrollmentID, grade := range s.byEnrollment {
		if grade.ID == id {
			delete(s.byEnrollment, enrollmentID)
			return nil
		}
	}
	return apperrors.NewCustomError(apperrors.ErrGradeNotFound, "grade not found")
}

func (s *fakeGradeStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Grade, error) {
	var out []*models.Grade
	for _, grade := range s.byEnrollment {
		grade = s.hydrate(grade)
		if grade.Enrollment != nil && grade.Enrollment.StudentID == studentID {
			out = append(out, grade)
		}
	}
	return out, nil
}

func (s *fakeGradeStore) PageByStudent(_ context.Context, studentID int64, semester string, _ helpers.PageRequest) ([]*models.Grade, int64, error) {
	var out []*models.Grade
	for _, grade := range s.byEnrollment {
		grade = s.hydrate(grade)
		if grade.Enrollment == nil || grade.Enrollment.StudentID != studentID {
			continue
		}
		if semester != "" && (grade.Enrollment.Course == nil || grade.Enrollment.Course.Semester != semester) {
			continue
		}
		out = append(out, grade)
	}
	return out, int64(len(out)), nil
}

func (s *fakeGradeStore) ListByCourse(_ context.Context, courseID int64) ([]*models.Grade, error) {
	var out []*models.Grade
	for _, grade := range s.byEnrollment {
		grade = s.hydrate(grade)
		if grade.Enrollment != nil && grade.Enrollment.CourseID == courseID {
			out = append(out, grade)
		}
	}
	return out, nil
}

func (s *fakeGradeStore) DistributionByCourse(_ context.Context, courseID int64) (map[string]int64, error) {
	distribution := make(map[string]int64)
	for _, grade := range s.byEnrollment {
		grade = s.hydrate(grade)
		if grade.Enrollment != nil && grade.Enrollment.CourseID == courseID {
			distribution[grade.Grade]++
		}
	}
	return distribution, nil
}

func (s *fakeGradeStore) TopPerformers(_ context.Context, limit int) ([]repositories.TopPerformerRow, error) {
	s.lastLimit = limit
	return s.performers, nil
}

// --- attendance ---

type fakeAttendanceStore struct {
	nextID      int64
	records     []*models.Attendance
	enrollments *fakeEnrollmentStore
}

func newFakeAttendanceStore(enrollments *fakeEnrollmentStore) *fakeAttendanceStore {
	return &fakeAttendanceStore{enrollments: enrollments}
}

func (s *fakeAttendanceStore) courseOf(enrollmentID int64) int64 {
	if s.enrollments == nil {
		return 0
	}
	if enrollment, ok := s.enrollments.enrollments[enrollmentID]; ok {
		return enrollment.CourseID
	}
	return 0
}

func (s *fakeAttendanceStore) UpsertBatch(_ context.Context, records []*models.Attendance) error {
	for _, record := range records {
		replaced := false
		for _, existing := range s.records {
			if existing.EnrollmentID == record.EnrollmentID && existing.Date.Equal(record.Date) {
				existing.Status = record.Status
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}
		s.nextID++
		record.ID = s.nextID
		record.CourseID = s.courseOf(record.EnrollmentID)
		s.records = append(s.records, record)
	}
	return nil
}

func (s *fakeAttendanceStore) GetByID(_ context.Context, id int64) (*models.Attendance, error) {
	for _, record := range s.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrAttendanceNotFound, "attendance record not found")
}

func (s *fakeAttendanceStore) UpdateStatus(_ context.Context, id int64, status models.AttendanceStatus, _ string) error {
	for _, record := range s.records {
		if record.ID == id {
			record.Status = status
			return nil
		}
	}
	return apperrors.NewCustomError(apperrors.ErrAttendanceNotFound, "attendance record not found")
}

func (s *fakeAttendanceStore) ListByCourseAndDate(_ context.Context, courseID int64, date time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, record := range s.records {
		if record.CourseID == courseID && record.Date.Equal(date) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *fakeAttendanceStore) ListByEnrollment(_ context.Context, enrollmentID int64) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, record := range s.records {
		if record.EnrollmentID == enrollmentID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *fakeAttendanceStore) ListByStudent(_ context.Context, studentID int64, courseID *int64, from, to *time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, record := range s.records {
		enrollment, ok := s.enrollments.enrollments[record.EnrollmentID]
		if !ok || enrollment.StudentID != studentID {
			continue
		}
		if courseID != nil && record.CourseID != *courseID {
			continue
		}
		if from != nil && record.Date.Before(*from) {
			continue
		}
		if to != nil && record.Date.After(*to) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *fakeAttendanceStore) CountByStatus(_ context.Context, courseID int64, date time.Time) (map[models.AttendanceStatus]int, error) {
	counts := make(map[models.AttendanceStatus]int)
	for _, record := range s.records {
		if record.CourseID == courseID && record.Date.Equal(date) {
			counts[record.Status]++
		}
	}
	return counts, nil
}

func (s *fakeAttendanceStore) CountAllByStatus(_ context.Context, courseID int64) (map[models.AttendanceStatus]int, error) {
	counts := make(map[models.AttendanceStatus]int)
	for _, record := range s.records {
		if record.CourseID == courseID {
			counts[record.Status]++
		}
	}
	return counts, nil
}

// --- users ---

type fakeUserStore struct {
	nextID  int64
	users   map[int64]*models.User
	refresh map[string]int64 // token -> user
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[int64]*models.User), refresh: make(map[string]int64)}
	for _, user := range users {
		if user.ID > s.nextID {
			s.nextID = user.ID
		}
		s.users[user.ID] = user
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return apperrors.NewCustomError(apperrors.ErrUsernameExists, "username already exists")
		}
		if existing.Email == user.Email {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "email already exists")
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

func (s *fakeUserStore) GetByUsernameOrEmail(_ context.Context, identifier string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "user not found")
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	user, ok := s.users[userID]
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrUserNotFound, "user not found")
	}
	user.Password = passwordHash
	return nil
}

func (s *fakeUserStore) SaveRefreshToken(_ context.Context, userID int64, token string, _ time.Time) error {
	s.refresh[token] = userID
	return nil
}

func (s *fakeUserStore) ConsumeRefreshToken(_ context.Context, token string) (int64, error) {
	userID, ok := s.refresh[token]
	if !ok {
		return 0, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "refresh token not recognized")
	}
	delete(s.refresh, token)
	return userID, nil
}

func (s *fakeUserStore) DeleteRefreshTokens(_ context.Context, userID int64) error {
	for token, owner := range s.refresh {
		if owner == userID {
			delete(s.refresh, token)
		}
	}
	return nil
}
