package handler

import (
	"encoding/json"
	"time"

	"github.com/ogurasousui/company-api/internal/core/employee"
	"github.com/shopspring/decimal"
)

// employeeRequest は作成・置換リクエストのボディです。
type employeeRequest struct {
	ID         *int64          `json:"id"`
	Name       string          `json:"name"`
	Department string          `json:"department"`
	Salary     decimal.Decimal `json:"salary"`
}

func (r employeeRequest) toInput() employee.EmployeeInput {
	return employee.EmployeeInput{
		ID:         r.ID,
		Name:       r.Name,
		Department: r.Department,
		Salary:     r.Salary,
	}
}

// employeeResponse の salary は NUMERIC の値をそのまま JSON の数値として出力します。
type employeeResponse struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Department string      `json:"department"`
	Salary     json.Number `json:"salary"`
	HireDate   string      `json:"hire_date"`
}

type baseEmployeeResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type hireDateResponse struct {
	HireDate string `json:"hire_date"`
}

// messageResponse は一覧以外のレスポンスボディです。
type messageResponse struct {
	Message string   `json:"message"`
	ID      int64    `json:"id,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func toEmployeeResponses(employees []employee.Employee) []employeeResponse {
	out := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeResponse{
			ID:         e.ID,
			Name:       e.Name,
			Department: e.Department,
			Salary:     json.Number(e.Salary.String()),
			HireDate:   formatDate(e.HireDate),
		})
	}
	return out
}

func toBaseEmployeeResponses(base []employee.BaseEmployee) []baseEmployeeResponse {
	out := make([]baseEmployeeResponse, 0, len(base))
	for _, b := range base {
		out = append(out, baseEmployeeResponse{ID: b.ID, Name: b.Name, Department: b.Department})
	}
	return out
}

func toHireDateResponses(dates []time.Time) []hireDateResponse {
	out := make([]hireDateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, hireDateResponse{HireDate: formatDate(d)})
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(employee.DateLayout)
}
