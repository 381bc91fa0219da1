package employee

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// EmployeeInput は作成・更新リクエストの生の入力です。
type EmployeeInput struct {
	ID         *int64
	Name       string
	Department string
	Salary     decimal.Decimal
}

// ParseID はパスパラメータの社員 ID を解釈します。employees.id の範囲 (int4) を超える値は不正です。
// 0 以下の値は解釈できるため受け付け、存在判定で不在として扱います。
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", raw, ErrInvalidID)
	}
	return id, nil
}

// NewQueryByID は ID 指定の取得要求を生成します。
func NewQueryByID(id int64) (QueryByID, error) {
	if err := validateID(id); err != nil {
		return QueryByID{}, err
	}
	return QueryByID{ID: id}, nil
}

// NewQueryByHireDate は YYYY-MM-DD 形式の入社日から取得要求を生成します。
func NewQueryByHireDate(raw string) (QueryByHireDate, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return QueryByHireDate{}, fmt.Errorf("hire_date: %w", ErrInvalidHireDate)
	}
	date, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return QueryByHireDate{}, fmt.Errorf("hire_date %q: %w", raw, ErrInvalidHireDate)
	}
	return QueryByHireDate{HireDate: normalizeDate(date)}, nil
}

// NewInsert は作成要求を生成します。クライアントが指定した ID は無視されます。
func NewInsert(in EmployeeInput) (Insert, error) {
	fields, err := validateFields(Fields{Name: in.Name, Department: in.Department, Salary: in.Salary})
	if err != nil {
		return Insert{}, err
	}
	return Insert{Fields: fields}, nil
}

// NewUpdate は更新要求を生成します。ボディの ID はパスの ID と一致しなければなりません。
func NewUpdate(pathID int64, in EmployeeInput) (Update, error) {
	if in.ID != nil && *in.ID != pathID {
		return Update{}, fmt.Errorf("id %d != %d: %w", *in.ID, pathID, ErrIDMismatch)
	}

	fields, err := validateFields(Fields{Name: in.Name, Department: in.Department, Salary: in.Salary})
	if err != nil {
		return Update{}, err
	}
	if err := validateID(pathID); err != nil {
		return Update{}, err
	}
	return Update{ID: pathID, Fields: fields}, nil
}

// NewDelete は削除要求を生成します。
func NewDelete(id int64) (Delete, error) {
	if err := validateID(id); err != nil {
		return Delete{}, err
	}
	return Delete{ID: id}, nil
}

// validateID は int4 の範囲外を不正とし、0 以下は採番されない ID として不在を返します。
func validateID(id int64) error {
	if id > math.MaxInt32 || id < math.MinInt32 {
		return fmt.Errorf("id %d: %w", id, ErrInvalidID)
	}
	if id <= 0 {
		return fmt.Errorf("id %d: %w", id, ErrEmployeeNotFound)
	}
	return nil
}

// validateFields は全項目を検査し、不正な項目をまとめて返します。
func validateFields(f Fields) (Fields, error) {
	var errs []error

	name, err := normalizeText(f.Name, MaxNameLength)
	if err != nil {
		errs = append(errs, fmt.Errorf("name: %w", ErrInvalidName))
	}

	department, err := normalizeText(f.Department, MaxDepartmentLength)
	if err != nil {
		errs = append(errs, fmt.Errorf("department: %w", ErrInvalidDepartment))
	}

	if f.Salary.LessThan(minSalary) || f.Salary.GreaterThan(maxSalary) {
		errs = append(errs, fmt.Errorf("salary must be between %d and %d: %w", MinSalary, MaxSalary, ErrInvalidSalary))
	}

	if len(errs) > 0 {
		return Fields{}, errors.Join(errs...)
	}

	return Fields{Name: name, Department: department, Salary: f.Salary}, nil
}

var errTextOutOfRange = errors.New("text out of range")

func normalizeText(raw string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxLen {
		return "", errTextOutOfRange
	}
	return trimmed, nil
}
