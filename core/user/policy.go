package user

import "errors"

// ErrPermissionDenied is returned when a role-based capability check fails.
var ErrPermissionDenied = errors.New("permission denied")

// CanAssign reports whether an actor with the given role may assign a task to
// a target with the given role. A student may not assign work to a teacher;
// teachers and admins may assign to anyone.
//
// This is a capability check on roles, not an identity check: callers resolve
// the target's role from the user directory at assignment time.
func CanAssign(actor, target Role) bool {
	return !(actor == RoleStudent && target == RoleTeacher)
}
