package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/company-api/internal/core/employee"
	pgdb "github.com/ogurasousui/company-api/internal/platform/db/postgres"
)

const (
	lockEmployeeSQL      = `SELECT id FROM employees WHERE id = $1 FOR UPDATE`
	callOperationSQL     = `CALL employee_operation($1, $2, $3, $4, $5)`
	currentEmployeeIDSQL = `SELECT currval(pg_get_serial_sequence('employees', 'id'))`
)

// ProcedureEmployeeRepository は書き込みを employee_operation プロシージャ経由で行うリポジトリです。
// 読み取りは EmployeeRepository と共通です。
type ProcedureEmployeeRepository struct {
	*EmployeeRepository
	tx employee.TransactionManager
}

// NewProcedureEmployeeRepository は ProcedureEmployeeRepository を生成します。
func NewProcedureEmployeeRepository(pool pgdb.Queryer, tx employee.TransactionManager) *ProcedureEmployeeRepository {
	return &ProcedureEmployeeRepository{EmployeeRepository: NewEmployeeRepository(pool), tx: tx}
}

// Insert はプロシージャで社員を作成し、同一セッションの採番値を返します。
func (r *ProcedureEmployeeRepository) Insert(ctx context.Context, f employee.Fields) (int64, error) {
	var id int64
	err := r.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		exec := pgdb.QueryerFromContext(txCtx, r.pool)
		if _, err := exec.Exec(txCtx, callOperationSQL, string(employee.KindInsert), nil, f.Name, f.Department, f.Salary); err != nil {
			return translateEmployeePgError(err)
		}
		if err := exec.QueryRow(txCtx, currentEmployeeIDSQL).Scan(&id); err != nil {
			return translateEmployeePgError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update は行ロックで存在を確認してからプロシージャで更新します。
func (r *ProcedureEmployeeRepository) Update(ctx context.Context, id int64, f employee.Fields) error {
	return r.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := r.lock(txCtx, id); err != nil {
			return err
		}
		exec := pgdb.QueryerFromContext(txCtx, r.pool)
		if _, err := exec.Exec(txCtx, callOperationSQL, string(employee.KindUpdate), id, f.Name, f.Department, f.Salary); err != nil {
			return translateEmployeePgError(err)
		}
		return nil
	})
}

// Delete は行ロックで存在を確認してからプロシージャで削除します。
func (r *ProcedureEmployeeRepository) Delete(ctx context.Context, id int64) error {
	return r.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := r.lock(txCtx, id); err != nil {
			return err
		}
		exec := pgdb.QueryerFromContext(txCtx, r.pool)
		if _, err := exec.Exec(txCtx, callOperationSQL, string(employee.KindDelete), id, nil, nil, nil); err != nil {
			return translateEmployeePgError(err)
		}
		return nil
	})
}

func (r *ProcedureEmployeeRepository) lock(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var locked int64
	if err := exec.QueryRow(ctx, lockEmployeeSQL, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("id %d: %w", id, employee.ErrEmployeeNotFound)
		}
		return translateEmployeePgError(err)
	}
	return nil
}
