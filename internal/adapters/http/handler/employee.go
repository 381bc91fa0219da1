package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/company-api/internal/core/employee"
	"github.com/ogurasousui/company-api/internal/platform/logger"
)

// EmployeeHandler は companyApi の HTTP エンドポイントを提供します。
type EmployeeHandler struct {
	svc employee.UseCase
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// Register はベースルート配下にエンドポイントを登録します。
func (h *EmployeeHandler) Register(g *echo.Group) {
	g.GET("/AllFromFunction", h.GetAllFromFunction)
	g.GET("/FromFunctionById/:id", h.GetFromFunctionByID)
	g.GET("/ByHireDate", h.GetEmployeesByHireDate)
	g.GET("/AllHireDates", h.GetAllDistinctHireDates)
	g.GET("/BaseEmployee", h.GetBaseEmployeeData)
	g.POST("/InsertEmployee", h.InsertEmployee)
	g.PUT("/:id", h.UpdateEmployee)
	g.PATCH("/:id", h.UpdateEmployeePartial)
	g.DELETE("/:id", h.DeleteEmployee)
}

// GetAllFromFunction は全社員を返します。
func (h *EmployeeHandler) GetAllFromFunction(c echo.Context) error {
	const action = "GetAllFromFunction"
	ctx := c.Request().Context()
	logger.DebugLog(ctx, "executing %s", action)

	res, err := h.svc.Dispatch(ctx, employee.QueryAll{})
	if err != nil {
		return respondError(c, action, err, "")
	}

	if len(res.Employees) == 0 {
		logger.WarnLog(ctx, "no employees returned from %s", action)
	} else {
		logger.InfoLog(ctx, "retrieved %d employees from %s", len(res.Employees), action)
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(res.Employees))
}

// GetFromFunctionByID は ID に一致する社員を返します。
func (h *EmployeeHandler) GetFromFunctionByID(c echo.Context) error {
	const action = "GetFromFunctionById"
	ctx := c.Request().Context()

	id, err := employee.ParseID(c.Param("id"))
	if err != nil {
		return respondError(c, action, err, "")
	}
	logger.DebugLog(ctx, "executing %s with id %d", action, id)
	notFound := fmt.Sprintf("Employee With Id %d Not Found.", id)

	req, err := employee.NewQueryByID(id)
	if err != nil {
		return respondError(c, action, err, notFound)
	}

	res, err := h.svc.Dispatch(ctx, req)
	if err != nil {
		return respondError(c, action, err, notFound)
	}

	logger.InfoLog(ctx, "retrieved employees for id %d", id)
	return c.JSON(http.StatusOK, toEmployeeResponses(res.Employees))
}

// DeleteEmployee は社員を削除します。
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	const action = "DeleteEmployee"
	ctx := c.Request().Context()

	id, err := employee.ParseID(c.Param("id"))
	if err != nil {
		return respondError(c, action, err, "")
	}
	logger.DebugLog(ctx, "executing %s with id %d", action, id)
	notFound := fmt.Sprintf("Employee With Id %d Not Found.", id)

	req, err := employee.NewDelete(id)
	if err != nil {
		return respondError(c, action, err, notFound)
	}

	if _, err := h.svc.Dispatch(ctx, req); err != nil {
		return respondError(c, action, err, notFound)
	}

	logger.InfoLog(ctx, "%s deleted employee id %d", action, id)
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Employee with ID %d deleted successfully.", id)})
}

// InsertEmployee は社員を作成します。
func (h *EmployeeHandler) InsertEmployee(c echo.Context) error {
	const action = "InsertEmployee"
	ctx := c.Request().Context()
	logger.DebugLog(ctx, "executing %s", action)

	var body employeeRequest
	if err := c.Bind(&body); err != nil {
		logger.WarnLog(ctx, "%s called with unreadable body: %v", action, err)
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
	}

	req, err := employee.NewInsert(body.toInput())
	if err != nil {
		return respondError(c, action, err, "")
	}

	res, err := h.svc.Dispatch(ctx, req)
	if err != nil {
		return respondError(c, action, err, "")
	}

	logger.InfoLog(ctx, "%s created employee id %d", action, res.ID)
	return c.JSON(http.StatusCreated, messageResponse{Message: "Employee inserted successfully.", ID: res.ID})
}

// UpdateEmployee は社員の全項目を置き換えます。
func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	const action = "UpdateEmployee"
	ctx := c.Request().Context()

	id, err := employee.ParseID(c.Param("id"))
	if err != nil {
		return respondError(c, action, err, "")
	}
	logger.DebugLog(ctx, "executing %s with id %d", action, id)

	var body employeeRequest
	if err := c.Bind(&body); err != nil {
		logger.WarnLog(ctx, "%s called with unreadable body: %v", action, err)
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
	}

	notFound := fmt.Sprintf("Employee with ID %d not found.", id)
	req, err := employee.NewUpdate(id, body.toInput())
	if err != nil {
		return respondError(c, action, err, notFound)
	}

	if _, err := h.svc.Dispatch(ctx, req); err != nil {
		return respondError(c, action, err, notFound)
	}

	logger.InfoLog(ctx, "%s updated employee id %d", action, id)
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Employee with ID %d updated successfully.", id)})
}

// UpdateEmployeePartial は JSON Patch ドキュメントで社員を部分更新します。
func (h *EmployeeHandler) UpdateEmployeePartial(c echo.Context) error {
	const action = "UpdateEmployeePartial"
	ctx := c.Request().Context()

	id, err := employee.ParseID(c.Param("id"))
	if err != nil {
		return respondError(c, action, err, "")
	}
	logger.DebugLog(ctx, "executing %s with id %d", action, id)

	document, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logger.WarnLog(ctx, "%s could not read body: %v", action, err)
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidPatch})
	}

	if _, err := h.svc.PatchEmployee(ctx, id, document); err != nil {
		return respondError(c, action, err, fmt.Sprintf("Employee with ID %d not found.", id))
	}

	logger.InfoLog(ctx, "%s updated employee id %d", action, id)
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Employee with ID %d updated successfully.", id)})
}

// GetEmployeesByHireDate は入社日が一致する社員を返します。該当なしは 404 です。
func (h *EmployeeHandler) GetEmployeesByHireDate(c echo.Context) error {
	const action = "GetEmployeesByHireDate"
	ctx := c.Request().Context()
	logger.DebugLog(ctx, "executing %s", action)

	req, err := employee.NewQueryByHireDate(c.QueryParam("hire_date"))
	if err != nil {
		return respondError(c, action, err, "")
	}

	res, err := h.svc.Dispatch(ctx, req)
	if err != nil {
		return respondError(c, action, err, "No employees found for the given hire date.")
	}

	logger.InfoLog(ctx, "%s returned %d employees for %s", action, len(res.Employees), req.HireDate.Format(employee.DateLayout))
	return c.JSON(http.StatusOK, toEmployeeResponses(res.Employees))
}

// GetAllDistinctHireDates は入社日の一覧を返します。
func (h *EmployeeHandler) GetAllDistinctHireDates(c echo.Context) error {
	const action = "GetAllDistinctHireDates"
	ctx := c.Request().Context()
	logger.DebugLog(ctx, "executing %s", action)

	res, err := h.svc.Dispatch(ctx, employee.QueryDistinctHireDates{})
	if err != nil {
		return respondError(c, action, err, "")
	}

	logger.InfoLog(ctx, "%s returned %d dates", action, len(res.HireDates))
	return c.JSON(http.StatusOK, toHireDateResponses(res.HireDates))
}

// GetBaseEmployeeData は縮約項目の社員一覧を返します。
func (h *EmployeeHandler) GetBaseEmployeeData(c echo.Context) error {
	const action = "GetBaseEmployeeData"
	ctx := c.Request().Context()
	logger.DebugLog(ctx, "executing %s", action)

	res, err := h.svc.Dispatch(ctx, employee.QueryBaseFields{})
	if err != nil {
		return respondError(c, action, err, "")
	}

	logger.InfoLog(ctx, "%s returned %d employees", action, len(res.BaseEmployees))
	return c.JSON(http.StatusOK, toBaseEmployeeResponses(res.BaseEmployees))
}
