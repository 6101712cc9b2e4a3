package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/services"
	"cms-system/pkg/utils"
)

var pageExportHeaders = []interface{}{
	"ID", "Заголовок", "Slug", "Статус", "Автор", "Опубликована", "Создана", "Обновлена",
}

var blockExportHeaders = []interface{}{
	"ID", "Название", "Тип", "Регион", "Позиция", "Страница", "Активен", "Создан",
}

// ExportController выгружает контент в xlsx для редакторов.
type ExportController struct {
	pageService  services.PageServiceInterface
	blockService services.BlockServiceInterface
	logger       *zap.Logger
}

func NewExportController(
	pageService services.PageServiceInterface,
	blockService services.BlockServiceInterface,
	logger *zap.Logger,
) *ExportController {
	return &ExportController{
		pageService:  pageService,
		blockService: blockService,
		logger:       logger,
	}
}

func (ctrl *ExportController) ExportPages(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	// Выгружаем всё, пагинация при экспорте не нужна
	filter.Limit = 0
	filter.Offset = 0

	res, err := ctrl.pageService.GetPages(c.Request().Context(), filter)
	if err != nil {
		ctrl.logger.Error("Ошибка выгрузки страниц", zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if format := c.QueryParam("format"); format != "" && format != "xlsx" {
		return utils.SuccessResponse(c, res.List, "Выгрузка страниц успешно сформирована", http.StatusOK)
	}
	return ctrl.respondWithXLSX(c, res.List)
}

func (ctrl *ExportController) ExportBlocks(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	filter.Limit = 0
	filter.Offset = 0

	res, err := ctrl.blockService.GetBlocks(c.Request().Context(), filter)
	if err != nil {
		ctrl.logger.Error("Ошибка выгрузки блоков", zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if format := c.QueryParam("format"); format != "" && format != "xlsx" {
		return utils.SuccessResponse(c, res.List, "Выгрузка блоков успешно сформирована", http.StatusOK)
	}

	f := excelize.NewFile()
	sheet := "Блоки"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &blockExportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, b := range res.List {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := blockToRow(b)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 35)
	f.SetColWidth(sheet, "C", "D", 18)

	fileName := fmt.Sprintf("blocks_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}

func blockToRow(b dto.BlockDTO) []interface{} {
	pageID := ""
	if b.PageID != nil {
		pageID = fmt.Sprintf("%d", *b.PageID)
	}
	active := "нет"
	if b.IsActive {
		active = "да"
	}
	created := ""
	if b.CreatedAt != nil {
		created = b.CreatedAt.Format("02.01.2006 15:04")
	}
	return []interface{}{b.ID, b.Name, b.Type, b.Region, b.Position, pageID, active, created}
}

func pageToRow(p dto.PageDTO) []interface{} {
	const dateFmt = "02.01.2006 15:04"

	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(dateFmt)
	}

	return []interface{}{
		p.ID, p.Title, p.Slug, p.Status, p.AuthorName,
		formatTime(p.PublishedAt), formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	}
}

func (ctrl *ExportController) respondWithXLSX(c echo.Context, pages []dto.PageDTO) error {
	f := excelize.NewFile()
	sheet := "Страницы"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &pageExportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, p := range pages {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := pageToRow(p)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 35)
	f.SetColWidth(sheet, "E", "E", 25)
	f.SetColWidth(sheet, "F", "H", 18)

	fileName := fmt.Sprintf("pages_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
