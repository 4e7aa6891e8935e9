package constants

import "fmt"

const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
)

const (
	ErrOnlyTeachersCanAccess = "Only teachers may access %s."
	ErrOnlyStaffCanAccess    = "Only teachers, admins or staff may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleTeacher,
		RoleAdmin,
		RoleStaff,
	}

	TeacherOnly = []string{
		RoleTeacher,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
