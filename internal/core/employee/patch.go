package employee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/shopspring/decimal"
)

// patchTarget はパッチ適用対象となる社員の JSON 表現です。
type patchTarget struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Department string      `json:"department"`
	Salary     json.Number `json:"salary"`
	HireDate   string      `json:"hire_date"`
}

// PatchEmployee は JSON Patch (RFC 6902) を現在の社員情報に適用し、再検証した上で全項目更新として永続化します。
func (s *Service) PatchEmployee(ctx context.Context, id int64, document []byte) (*Result, error) {
	patch, err := jsonpatch.DecodePatch(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	if err := validateID(id); err != nil {
		return nil, err
	}

	var result *Result
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("id %d: %w", id, ErrEmployeeNotFound)
		}

		update, err := ApplyPatch(found[0], patch)
		if err != nil {
			return err
		}

		result, err = s.Dispatch(txCtx, update)
		return err
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ApplyPatch は current のコピーにパッチを適用し、検証済みの Update を返します。current は変更されません。
func ApplyPatch(current Employee, patch jsonpatch.Patch) (Update, error) {
	original := patchTarget{
		ID:         current.ID,
		Name:       current.Name,
		Department: current.Department,
		Salary:     json.Number(current.Salary.String()),
		HireDate:   current.HireDate.Format(DateLayout),
	}

	raw, err := json.Marshal(original)
	if err != nil {
		return Update{}, fmt.Errorf("employee: encode patch target: %w", err)
	}

	patched, err := patch.Apply(raw)
	if err != nil {
		return Update{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	var target patchTarget
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&target); err != nil {
		return Update{}, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	salary, err := decimal.NewFromString(target.Salary.String())
	if err != nil {
		return Update{}, fmt.Errorf("%w: salary: %v", ErrInvalidPatch, err)
	}

	if target.HireDate != original.HireDate {
		return Update{}, fmt.Errorf("hire_date is read-only: %w", ErrInvalidHireDate)
	}

	return NewUpdate(current.ID, EmployeeInput{
		ID:         &target.ID,
		Name:       target.Name,
		Department: target.Department,
		Salary:     salary,
	})
}
