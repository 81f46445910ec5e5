package auth

import (
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
)

// Action names one access-controlled operation. The full access matrix lives
// in the rules table below so it can be audited in one place instead of
// re-derived from scattered role checks.
type Action string

const (
	ActionManageDepartment Action = "department:manage"
	ActionManageCourse     Action = "course:manage"
	ActionManageTeacher    Action = "teacher:manage"
	ActionUpdateTeacher    Action = "teacher:update"
	ActionViewTeacher      Action = "teacher:view"
	ActionCreateStudent    Action = "student:create"
	ActionViewStudent      Action = "student:view"
	ActionUpdateStudent    Action = "student:update"
	ActionDeleteStudent    Action = "student:delete"
	ActionEnrollStudent    Action = "enrollment:create"
	ActionDropEnrollment   Action = "enrollment:drop"
	ActionViewEnrollment   Action = "enrollment:view"
	ActionMarkAttendance   Action = "attendance:mark"
	ActionUpdateAttendance Action = "attendance:update"
	ActionViewAttendance   Action = "attendance:view"
	ActionGradeEnrollment  Action = "grade:write"
	ActionViewGrade        Action = "grade:view"
	ActionDeleteGrade      Action = "grade:delete"
	ActionRegisterUser     Action = "user:register"
	ActionViewStatistics   Action = "statistics:view"
)

// policy decides how a role may exercise an action.
type policy int

const (
	deny policy = iota
	allow
	selfOnly  // the target's owning user must be the principal
	ownCourse // the target's course must belong to the principal's teacher profile
)

// Target carries the ownership facts of a fetched resource. Authorization
// runs post-fetch: ownership cannot be decided from the route alone.
type Target struct {
	// OwnerUserID is the user owning the resource (the student's user for
	// enrollments, grades and attendance; the teacher's user for profiles).
	OwnerUserID int64
	// CourseOwnerUserID is the user of the teacher assigned to the related
	// course, 0 when unassigned.
	CourseOwnerUserID int64
}

// rules is the access matrix. Missing (action, role) cells deny.
var rules = map[Action]map[models.Role]policy{
	ActionManageDepartment: {models.RoleAdmin: allow},
	ActionManageCourse:     {models.RoleAdmin: allow},
	ActionManageTeacher:    {models.RoleAdmin: allow},
	ActionUpdateTeacher:    {models.RoleAdmin: allow, models.RoleTeacher: selfOnly},
	ActionViewTeacher:      {models.RoleAdmin: allow, models.RoleTeacher: allow, models.RoleStudent: allow},
	ActionCreateStudent:    {models.RoleAdmin: allow},
	ActionViewStudent:      {models.RoleAdmin: allow, models.RoleTeacher: allow, models.RoleStudent: selfOnly},
	ActionUpdateStudent:    {models.RoleAdmin: allow, models.RoleStudent: selfOnly},
	ActionDeleteStudent:    {models.RoleAdmin: allow},
	ActionEnrollStudent:    {models.RoleAdmin: allow, models.RoleStudent: selfOnly},
	ActionDropEnrollment:   {models.RoleAdmin: allow, models.RoleStudent: selfOnly},
	ActionViewEnrollment:   {models.RoleAdmin: allow, models.RoleTeacher: ownCourse, models.RoleStudent: selfOnly},
	ActionMarkAttendance:   {models.RoleAdmin: allow, models.RoleTeacher: ownCourse},
	ActionUpdateAttendance: {models.RoleAdmin: allow, models.RoleTeacher: ownCourse},
	ActionViewAttendance:   {models.RoleAdmin: allow, models.RoleTeacher: ownCourse, models.RoleStudent: selfOnly},
	ActionGradeEnrollment:  {models.RoleAdmin: allow, models.RoleTeacher: ownCourse},
	ActionViewGrade:        {models.RoleAdmin: allow, models.RoleTeacher: ownCourse, models.RoleStudent: selfOnly},
	ActionDeleteGrade:      {models.RoleAdmin: allow},
	ActionRegisterUser:     {models.RoleAdmin: allow},
	ActionViewStatistics:   {models.RoleAdmin: allow},
}

// Authorize decides whether the principal may perform action on the target.
// Returns nil when allowed, a permission-denied error otherwise.
func Authorize(p Principal, action Action, target Target) error {
	if !p.Active {
		return apperrors.NewForbiddenError("account is disabled")
	}

	rolePolicies, ok := rules[action]
	if !ok {
		return apperrors.NewForbiddenError("you don't have permission for this action")
	}

	switch rolePolicies[p.Role] {
	case allow:
		return nil
	case selfOnly:
		if target.OwnerUserID != 0 && target.OwnerUserID == p.UserID {
			return nil
		}
		return apperrors.NewForbiddenError("you can only access your own data")
	case ownCourse:
		if target.CourseOwnerUserID != 0 && target.CourseOwnerUserID == p.UserID {
			return nil
		}
		return apperrors.NewForbiddenError("you can only access your own courses")
	default:
		return apperrors.NewForbiddenError("you don't have permission for this action")
	}
}

// ObscureNotFound hides resource existence from STUDENT principals: a
// student probing a foreign id gets the same Forbidden whether or not the
// id exists. Other roles keep the original not-found error.
func ObscureNotFound(p Principal, err error) error {
	if err == nil {
		return nil
	}
	if p.IsStudent() && apperrors.IsNotFound(err) {
		return apperrors.NewForbiddenError("you can only access your own data")
	}
	return err
}
