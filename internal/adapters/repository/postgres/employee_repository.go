package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/company-api/internal/core/employee"
	pgdb "github.com/ogurasousui/company-api/internal/platform/db/postgres"
)

const employeeCheckViolationCode = "23514"

const (
	selectAllEmployeesSQL      = `SELECT id, name, department, salary, hire_date FROM SelectAllEmployeeIds()`
	selectEmployeeByIDSQL      = `SELECT id, name, department, salary, hire_date FROM GetEmployeeByIds($1)`
	selectByHireDateSQL        = `SELECT id, name, department, salary, hire_date FROM SelectByHireDate($1::date)`
	selectDistinctHireDatesSQL = `SELECT hire_date FROM SelectAllDistinctHireDates()`
	selectBaseEmployeesSQL     = `SELECT id, name, department FROM BaseEmployeeQuery()`
	insertEmployeeSQL          = `INSERT INTO employees (name, department, salary) VALUES ($1, $2, $3) RETURNING id`
	updateEmployeeSQL          = `UPDATE employees SET name = $1, department = $2, salary = $3 WHERE id = $4`
	deleteEmployeeSQL          = `DELETE FROM employees WHERE id = $1`
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
// 読み取りはデータベース関数、書き込みは条件付きの単一ステートメントで行います。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// ListAll は全社員を取得します。
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]employee.Employee, error) {
	return r.queryEmployees(ctx, selectAllEmployeesSQL)
}

// FindByID は ID に一致する社員を取得します。該当なしの場合は空のスライスを返します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) ([]employee.Employee, error) {
	return r.queryEmployees(ctx, selectEmployeeByIDSQL, id)
}

// FindByHireDate は入社日が一致する社員を取得します。
func (r *EmployeeRepository) FindByHireDate(ctx context.Context, hireDate time.Time) ([]employee.Employee, error) {
	return r.queryEmployees(ctx, selectByHireDateSQL, hireDate)
}

// ListHireDates は重複を除いた入社日の一覧を取得します。
func (r *EmployeeRepository) ListHireDates(ctx context.Context) ([]time.Time, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, selectDistinctHireDatesSQL)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, translateEmployeePgError(err)
		}
		dates = append(dates, toDate(d))
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return dates, nil
}

// ListBase は縮約項目の社員一覧を取得します。
func (r *EmployeeRepository) ListBase(ctx context.Context) ([]employee.BaseEmployee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, selectBaseEmployeesSQL)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	base := make([]employee.BaseEmployee, 0)
	for rows.Next() {
		var b employee.BaseEmployee
		if err := rows.Scan(&b.ID, &b.Name, &b.Department); err != nil {
			return nil, translateEmployeePgError(err)
		}
		base = append(base, b)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return base, nil
}

// Insert は社員を作成し、採番された ID を返します。入社日はデータベースが設定します。
func (r *EmployeeRepository) Insert(ctx context.Context, f employee.Fields) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var id int64
	if err := exec.QueryRow(ctx, insertEmployeeSQL, f.Name, f.Department, f.Salary).Scan(&id); err != nil {
		return 0, translateEmployeePgError(err)
	}
	return id, nil
}

// Update は社員情報を置き換えます。対象行がなければ ErrEmployeeNotFound を返します。
func (r *EmployeeRepository) Update(ctx context.Context, id int64, f employee.Fields) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, updateEmployeeSQL, f.Name, f.Department, f.Salary, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("id %d: %w", id, employee.ErrEmployeeNotFound)
	}
	return nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, deleteEmployeeSQL, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("id %d: %w", id, employee.ErrEmployeeNotFound)
	}
	return nil
}

func (r *EmployeeRepository) queryEmployees(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Department, &e.Salary, &e.HireDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	e.HireDate = toDate(e.HireDate)
	return e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == employeeCheckViolationCode {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, employee.ErrInvalidSalary)
	}

	return err
}

func toDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
