package employee

import "errors"

var (
	ErrInvalidID              = errors.New("employee: invalid id")
	ErrInvalidName            = errors.New("employee: invalid name")
	ErrInvalidDepartment      = errors.New("employee: invalid department")
	ErrInvalidSalary          = errors.New("employee: invalid salary")
	ErrInvalidHireDate        = errors.New("employee: invalid hire date")
	ErrInvalidPatch           = errors.New("employee: invalid patch document")
	ErrInvalidOperation       = errors.New("employee: unsupported operation")
	ErrIDMismatch             = errors.New("employee: path id and body id mismatch")
	ErrEmployeeNotFound       = errors.New("employee: not found")
	ErrNoEmployeesForHireDate = errors.New("employee: no employees for hire date")
)

// IsValidationError は err がクライアント起因の入力エラーかどうかを判定します。
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidDepartment),
		errors.Is(err, ErrInvalidSalary),
		errors.Is(err, ErrInvalidHireDate),
		errors.Is(err, ErrInvalidPatch),
		errors.Is(err, ErrIDMismatch):
		return true
	default:
		return false
	}
}

// IsNotFound は err が対象の不在を表すかどうかを判定します。
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrNoEmployeesForHireDate)
}
