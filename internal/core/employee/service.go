package employee

import (
	"context"
	"fmt"
	"time"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	Dispatch(ctx context.Context, req OperationRequest) (*Result, error)
	PatchEmployee(ctx context.Context, id int64, document []byte) (*Result, error)
}

// Service は OperationRequest を 1 回のリポジトリ呼び出しに変換する Dispatcher です。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// Dispatch は要求の種別に対応するリポジトリ操作を実行し、結果を解釈します。
func (s *Service) Dispatch(ctx context.Context, req OperationRequest) (*Result, error) {
	switch op := req.(type) {
	case QueryAll:
		employees, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: op.Kind(), Employees: nonNilEmployees(employees)}, nil

	case QueryByID:
		if err := validateID(op.ID); err != nil {
			return nil, err
		}
		employees, err := s.repo.FindByID(ctx, op.ID)
		if err != nil {
			return nil, err
		}
		if len(employees) == 0 {
			return nil, fmt.Errorf("id %d: %w", op.ID, ErrEmployeeNotFound)
		}
		return &Result{Kind: op.Kind(), Employees: employees, ID: op.ID}, nil

	case QueryByHireDate:
		hireDate := normalizeDate(op.HireDate)
		employees, err := s.repo.FindByHireDate(ctx, hireDate)
		if err != nil {
			return nil, err
		}
		// 一覧系と異なり、空の結果は不在として扱う。
		if len(employees) == 0 {
			return nil, fmt.Errorf("hire_date %s: %w", hireDate.Format(DateLayout), ErrNoEmployeesForHireDate)
		}
		return &Result{Kind: op.Kind(), Employees: employees}, nil

	case QueryDistinctHireDates:
		dates, err := s.repo.ListHireDates(ctx)
		if err != nil {
			return nil, err
		}
		if dates == nil {
			dates = []time.Time{}
		}
		return &Result{Kind: op.Kind(), HireDates: dates}, nil

	case QueryBaseFields:
		base, err := s.repo.ListBase(ctx)
		if err != nil {
			return nil, err
		}
		if base == nil {
			base = []BaseEmployee{}
		}
		return &Result{Kind: op.Kind(), BaseEmployees: base}, nil

	case Insert:
		fields, err := validateFields(op.Fields)
		if err != nil {
			return nil, err
		}
		id, err := s.repo.Insert(ctx, fields)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: op.Kind(), ID: id}, nil

	case Update:
		if err := validateID(op.ID); err != nil {
			return nil, err
		}
		fields, err := validateFields(op.Fields)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, op.ID, fields); err != nil {
			return nil, err
		}
		return &Result{Kind: op.Kind(), ID: op.ID}, nil

	case Delete:
		if err := validateID(op.ID); err != nil {
			return nil, err
		}
		if err := s.repo.Delete(ctx, op.ID); err != nil {
			return nil, err
		}
		return &Result{Kind: op.Kind(), ID: op.ID}, nil

	default:
		return nil, fmt.Errorf("%T: %w", req, ErrInvalidOperation)
	}
}

func nonNilEmployees(employees []Employee) []Employee {
	if employees == nil {
		return []Employee{}
	}
	return employees
}
