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

type BlockController struct {
	blockService services.BlockServiceInterface
	logger       *zap.Logger
}

func NewBlockController(blockService services.BlockServiceInterface, logger *zap.Logger) *BlockController {
	return &BlockController{blockService: blockService, logger: logger}
}

func (ctrl *BlockController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *BlockController) GetBlocks(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	res, err := ctrl.blockService.GetBlocks(c.Request().Context(), filter)
	if err != nil {
		ctrl.logger.Error("Ошибка получения списка блоков", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res.List, "Список блоков успешно получен", http.StatusOK, res.Pagination.TotalCount)
}

func (ctrl *BlockController) FindBlock(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID блока", err))
	}

	res, err := ctrl.blockService.FindBlockByID(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Блок успешно найден", http.StatusOK)
}

func (ctrl *BlockController) CreateBlock(c echo.Context) error {
	var payload dto.CreateBlockDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.blockService.CreateBlock(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Блок успешно создан", http.StatusCreated)
}

func (ctrl *BlockController) UpdateBlock(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID блока", err))
	}

	var payload dto.UpdateBlockDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.blockService.UpdateBlock(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Блок успешно обновлён", http.StatusOK)
}

func (ctrl *BlockController) DeleteBlock(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID блока", err))
	}

	if err := ctrl.blockService.DeleteBlock(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, struct{}{}, "Блок успешно удалён", http.StatusOK)
}
