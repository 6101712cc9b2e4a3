// controllers/permission.go
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

type PermissionController struct {
	permService services.PermissionServiceInterface
	logger      *zap.Logger
}

func NewPermissionController(permService services.PermissionServiceInterface, logger *zap.Logger) *PermissionController {
	return &PermissionController{permService: permService, logger: logger}
}

func (ctrl *PermissionController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *PermissionController) GetPermissions(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.permService.GetPermissions(c.Request().Context(), filter)
	if err != nil {
		ctrl.logger.Error("Ошибка получения списка привилегий", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, list, "Список привилегий успешно получен", http.StatusOK, total)
}

func (ctrl *PermissionController) FindPermission(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID привилегии", err))
	}

	res, err := ctrl.permService.FindPermissionByID(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Привилегия успешно найдена", http.StatusOK)
}

func (ctrl *PermissionController) CreatePermission(c echo.Context) error {
	var payload dto.CreatePermissionDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.permService.CreatePermission(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Привилегия успешно создана", http.StatusCreated)
}

func (ctrl *PermissionController) UpdatePermission(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID привилегии", err))
	}

	var payload dto.UpdatePermissionDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.permService.UpdatePermission(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Привилегия успешно обновлена", http.StatusOK)
}

func (ctrl *PermissionController) DeletePermission(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID привилегии", err))
	}

	if err := ctrl.permService.DeletePermission(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, struct{}{}, "Привилегия успешно удалена", http.StatusOK)
}
