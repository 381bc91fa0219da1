package employee

import (
	"context"
	"time"
)

// Repository は社員永続化の抽象です。
//
// 読み取りはデータベース関数、書き込みは 1 回の条件付き書き込みで行い、
// Update/Delete は対象行が存在しない場合 ErrEmployeeNotFound を返します。
type Repository interface {
	ListAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int64) ([]Employee, error)
	FindByHireDate(ctx context.Context, hireDate time.Time) ([]Employee, error)
	ListHireDates(ctx context.Context) ([]time.Time, error)
	ListBase(ctx context.Context) ([]BaseEmployee, error)
	Insert(ctx context.Context, fields Fields) (int64, error)
	Update(ctx context.Context, id int64, fields Fields) error
	Delete(ctx context.Context, id int64) error
}
