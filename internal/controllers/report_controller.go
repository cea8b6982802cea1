package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/services"
	"bus-admin/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	viewService   services.ViewServiceInterface
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(viewService services.ViewServiceInterface, reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{viewService: viewService, reportService: reportService, logger: logger}
}

// ExportView отдаёт строки, которые сейчас показывает вид, в виде xlsx.
func (ctrl *ReportController) ExportView(c echo.Context) error {
	view, err := ctrl.viewService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	f, err := ctrl.reportService.BuildWorkbook(view.Sheet())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("%s_%s.xlsx", view.Kind(), time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
