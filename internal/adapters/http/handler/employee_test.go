package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/company-api/internal/core/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeUseCase struct {
	dispatched []employee.OperationRequest
	dispatchFn func(req employee.OperationRequest) (*employee.Result, error)

	patchID       int64
	patchDocument []byte
	patchErr      error
}

func (s *stubEmployeeUseCase) Dispatch(_ context.Context, req employee.OperationRequest) (*employee.Result, error) {
	s.dispatched = append(s.dispatched, req)
	if s.dispatchFn == nil {
		return &employee.Result{Kind: req.Kind()}, nil
	}
	return s.dispatchFn(req)
}

func (s *stubEmployeeUseCase) PatchEmployee(_ context.Context, id int64, document []byte) (*employee.Result, error) {
	s.patchID = id
	s.patchDocument = document
	if s.patchErr != nil {
		return nil, s.patchErr
	}
	return &employee.Result{Kind: employee.KindUpdate, ID: id}, nil
}

func newTestEcho(stub *stubEmployeeUseCase) *echo.Echo {
	e := echo.New()
	NewEmployeeHandler(stub).Register(e.Group("/api/company"))
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) messageResponse {
	t.Helper()
	var msg messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	return msg
}

func TestGetAllFromFunction_EmptyListIsOK(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		return &employee.Result{Kind: req.Kind(), Employees: []employee.Employee{}}, nil
	}}

	rec := doRequest(newTestEcho(stub), http.MethodGet, "/api/company/AllFromFunction", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	require.Len(t, stub.dispatched, 1)
	assert.IsType(t, employee.QueryAll{}, stub.dispatched[0])
}

func TestGetFromFunctionByID(t *testing.T) {
	t.Parallel()

	hired := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		q := req.(employee.QueryByID)
		if q.ID != 7 {
			return nil, employee.ErrEmployeeNotFound
		}
		return &employee.Result{Kind: req.Kind(), Employees: []employee.Employee{
			{ID: 7, Name: "Alice", Department: "Engineering", Salary: decimal.NewFromInt(5000), HireDate: hired},
		}}, nil
	}}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodGet, "/api/company/FromFunctionById/7", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":7,"name":"Alice","department":"Engineering","salary":5000,"hire_date":"2024-05-01"}]`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/company/FromFunctionById/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee With Id 8 Not Found.", decodeMessage(t, rec).Message)

	rec = doRequest(e, http.MethodGet, "/api/company/FromFunctionById/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	existing := map[int64]bool{42: true}
	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		switch op := req.(type) {
		case employee.Delete:
			if !existing[op.ID] {
				return nil, employee.ErrEmployeeNotFound
			}
			delete(existing, op.ID)
			return &employee.Result{Kind: op.Kind(), ID: op.ID}, nil
		case employee.QueryByID:
			if !existing[op.ID] {
				return nil, employee.ErrEmployeeNotFound
			}
			return &employee.Result{Kind: op.Kind(), Employees: []employee.Employee{{ID: op.ID}}}, nil
		}
		return nil, errors.New("unexpected request")
	}}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodDelete, "/api/company/42", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Employee with ID 42 deleted successfully.", decodeMessage(t, rec).Message)

	rec = doRequest(e, http.MethodGet, "/api/company/FromFunctionById/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/company/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Employee With Id 42 Not Found.")
}

func TestDeleteEmployee_IDBounds(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodDelete, "/api/company/3000000000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidID, decodeMessage(t, rec).Message)

	rec = doRequest(e, http.MethodDelete, "/api/company/0", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee With Id 0 Not Found.", decodeMessage(t, rec).Message)

	rec = doRequest(e, http.MethodGet, "/api/company/FromFunctionById/-5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee With Id -5 Not Found.", decodeMessage(t, rec).Message)

	rec = doRequest(e, http.MethodPut, "/api/company/0", `{"name":"Alice","department":"Ops","salary":3000}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee with ID 0 not found.", decodeMessage(t, rec).Message)

	assert.Empty(t, stub.dispatched)
}

func TestInsertEmployee(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		return &employee.Result{Kind: req.Kind(), ID: 11}, nil
	}}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodPost, "/api/company/InsertEmployee", `{"id":99,"name":"Alice","department":"Engineering","salary":5000}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	msg := decodeMessage(t, rec)
	assert.Equal(t, "Employee inserted successfully.", msg.Message)
	assert.Equal(t, int64(11), msg.ID)

	require.Len(t, stub.dispatched, 1)
	insert, ok := stub.dispatched[0].(employee.Insert)
	require.True(t, ok)
	assert.Equal(t, "Alice", insert.Fields.Name)
	assert.Equal(t, "Engineering", insert.Fields.Department)
	assert.True(t, insert.Fields.Salary.Equal(decimal.NewFromInt(5000)), "salary %s", insert.Fields.Salary)
}

func TestInsertEmployee_DecimalSalaryIsExact(t *testing.T) {
	t.Parallel()

	var stored employee.Fields
	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		switch op := req.(type) {
		case employee.Insert:
			stored = op.Fields
			return &employee.Result{Kind: op.Kind(), ID: 1}, nil
		case employee.QueryByID:
			return &employee.Result{Kind: op.Kind(), Employees: []employee.Employee{
				{ID: 1, Name: stored.Name, Department: stored.Department, Salary: stored.Salary, HireDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			}}, nil
		}
		return nil, errors.New("unexpected request")
	}}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodPost, "/api/company/InsertEmployee", `{"name":"Alice","department":"Engineering","salary":2500.10}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2500.1", stored.Salary.String())

	rec = doRequest(e, http.MethodGet, "/api/company/FromFunctionById/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"salary":2500.1`)
}

func TestInsertEmployee_Invalid(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodPost, "/api/company/InsertEmployee", `{"name":"","department":"Engineering","salary":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	msg := decodeMessage(t, rec)
	assert.Equal(t, msgInvalidBody, msg.Message)
	assert.Len(t, msg.Errors, 2)

	rec = doRequest(e, http.MethodPost, "/api/company/InsertEmployee", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, stub.dispatched)
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		op := req.(employee.Update)
		if op.ID == 3 {
			return nil, employee.ErrEmployeeNotFound
		}
		return &employee.Result{Kind: op.Kind(), ID: op.ID}, nil
	}}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodPut, "/api/company/5", `{"id":5,"name":"Alice","department":"Ops","salary":3000}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Employee with ID 5 updated successfully.", decodeMessage(t, rec).Message)

	rec = doRequest(e, http.MethodPut, "/api/company/3", `{"name":"Alice","department":"Ops","salary":3000}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee with ID 3 not found.", decodeMessage(t, rec).Message)
}

func TestUpdateEmployee_IDMismatchRejectedBeforeDispatch(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodPut, "/api/company/5", `{"id":6,"name":"Alice","department":"Ops","salary":3000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgIDMismatch, decodeMessage(t, rec).Message)
	assert.Empty(t, stub.dispatched)
}

func TestUpdateEmployeePartial(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{}
	e := newTestEcho(stub)
	patch := `[{"op":"replace","path":"/salary","value":7000}]`

	rec := doRequest(e, http.MethodPatch, "/api/company/9", patch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), stub.patchID)
	assert.JSONEq(t, patch, string(stub.patchDocument))

	stub.patchErr = errors.Join(errors.New("salary must be between 2000 and 50000"), employee.ErrInvalidSalary)
	rec = doRequest(e, http.MethodPatch, "/api/company/9", `[{"op":"replace","path":"/salary","value":1}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stub.patchErr = employee.ErrEmployeeNotFound
	rec = doRequest(e, http.MethodPatch, "/api/company/9", patch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee with ID 9 not found.", decodeMessage(t, rec).Message)
}

func TestGetEmployeesByHireDate(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		q := req.(employee.QueryByHireDate)
		if q.HireDate.Day() != 1 {
			return nil, employee.ErrNoEmployeesForHireDate
		}
		return &employee.Result{Kind: q.Kind(), Employees: []employee.Employee{{ID: 1, Name: "A", Department: "B", Salary: decimal.NewFromInt(2000), HireDate: q.HireDate}}}, nil
	}}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodGet, "/api/company/ByHireDate?hire_date=2024-03-01", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/company/ByHireDate?hire_date=2024-03-02", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No employees found for the given hire date.", decodeMessage(t, rec).Message)

	rec = doRequest(e, http.MethodGet, "/api/company/ByHireDate?hire_date=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidDate, decodeMessage(t, rec).Message)
}

func TestGetAllDistinctHireDatesAndBaseEmployee(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		switch req.(type) {
		case employee.QueryDistinctHireDates:
			return &employee.Result{Kind: req.Kind(), HireDates: []time.Time{time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)}}, nil
		case employee.QueryBaseFields:
			return &employee.Result{Kind: req.Kind(), BaseEmployees: []employee.BaseEmployee{{ID: 1, Name: "A", Department: "B"}}}, nil
		}
		return nil, errors.New("unexpected request")
	}}
	e := newTestEcho(stub)

	rec := doRequest(e, http.MethodGet, "/api/company/AllHireDates", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"hire_date":"2023-07-04"}]`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/company/BaseEmployee", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"A","department":"B"}]`, rec.Body.String())
}

func TestUnexpectedErrorIsGeneric(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{dispatchFn: func(req employee.OperationRequest) (*employee.Result, error) {
		return nil, errors.New("pq: connection refused to 10.0.0.5")
	}}

	rec := doRequest(newTestEcho(stub), http.MethodGet, "/api/company/BaseEmployee", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgUnexpected, decodeMessage(t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
