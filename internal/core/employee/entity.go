package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MaxNameLength は社員名の最大文字数です。
	MaxNameLength = 30
	// MaxDepartmentLength は部署名の最大文字数です。
	MaxDepartmentLength = 20
	// MinSalary は給与の下限です。
	MinSalary = 2000
	// MaxSalary は給与の上限です。
	MaxSalary = 50000
)

var (
	minSalary = decimal.NewFromInt(MinSalary)
	maxSalary = decimal.NewFromInt(MaxSalary)
)

// DateLayout は入社日の入出力フォーマットです。
const DateLayout = "2006-01-02"

// Employee は employees テーブルの 1 行を表す社員エンティティです。
type Employee struct {
	ID         int64
	Name       string
	Department string
	Salary     decimal.Decimal
	HireDate   time.Time
}

// BaseEmployee は BaseEmployeeQuery が返す縮約された社員情報です。
type BaseEmployee struct {
	ID         int64
	Name       string
	Department string
}

// Fields は書き込み可能な社員項目です。入社日はデータベース側で採番されます。
type Fields struct {
	Name       string
	Department string
	Salary     decimal.Decimal
}

// Fields は社員の書き込み可能な項目を返します。
func (e *Employee) Fields() Fields {
	return Fields{Name: e.Name, Department: e.Department, Salary: e.Salary}
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
