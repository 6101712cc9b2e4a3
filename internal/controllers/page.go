package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/services"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/utils"
)

type PageController struct {
	pageService services.PageServiceInterface
	logger      *zap.Logger
}

func NewPageController(pageService services.PageServiceInterface, logger *zap.Logger) *PageController {
	return &PageController{pageService: pageService, logger: logger}
}

func (ctrl *PageController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *PageController) GetPages(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	res, err := ctrl.pageService.GetPages(c.Request().Context(), filter)
	if err != nil {
		ctrl.logger.Error("Ошибка получения списка страниц", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res.List, "Список страниц успешно получен", http.StatusOK, res.Pagination.TotalCount)
}

func (ctrl *PageController) FindPage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID страницы", err))
	}

	res, err := ctrl.pageService.FindPageByID(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Страница успешно найдена", http.StatusOK)
}

func (ctrl *PageController) FindPageBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Не указан slug страницы", nil))
	}

	res, err := ctrl.pageService.FindPageBySlug(c.Request().Context(), slug)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Страница успешно найдена", http.StatusOK)
}

func (ctrl *PageController) CreatePage(c echo.Context) error {
	var payload dto.CreatePageDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	authorID, err := utils.UserIDFromContext(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.pageService.CreatePage(c.Request().Context(), payload, authorID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Страница успешно создана", http.StatusCreated)
}

func (ctrl *PageController) UpdatePage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID страницы", err))
	}

	var payload dto.UpdatePageDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.pageService.UpdatePage(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Страница успешно обновлена", http.StatusOK)
}

func (ctrl *PageController) PublishPage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID страницы", err))
	}

	res, err := ctrl.pageService.PublishPage(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Страница успешно опубликована", http.StatusOK)
}

func (ctrl *PageController) UnpublishPage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID страницы", err))
	}

	res, err := ctrl.pageService.UnpublishPage(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Страница снята с публикации", http.StatusOK)
}

func (ctrl *PageController) DeletePage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID страницы", err))
	}

	if err := ctrl.pageService.DeletePage(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, struct{}{}, "Страница успешно удалена", http.StatusOK)
}
