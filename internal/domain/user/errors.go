package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrCompanyIDRequired      = errors.New("company ID is required")
	ErrSeatLimitReached       = errors.New("employee limit of the current plan reached")
	ErrCannotModifySelf       = errors.New("admins cannot delete or change the role of their own account")
	ErrCompanyOwnerProtected  = errors.New("the company owner cannot be demoted or deleted")
	ErrCurrentPasswordWrong   = errors.New("current password is incorrect")
)
