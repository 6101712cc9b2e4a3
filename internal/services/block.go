package services

import (
	"context"

	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/entities"
	"cms-system/internal/repositories"
	"cms-system/pkg/types"
)

type BlockServiceInterface interface {
	GetBlocks(ctx context.Context, filter types.Filter) (*dto.BlockListResponseDTO, error)
	FindBlockByID(ctx context.Context, id uint64) (*dto.BlockDTO, error)
	CreateBlock(ctx context.Context, payload dto.CreateBlockDTO) (*dto.BlockDTO, error)
	UpdateBlock(ctx context.Context, id uint64, payload dto.UpdateBlockDTO) (*dto.BlockDTO, error)
	DeleteBlock(ctx context.Context, id uint64) error
}

type BlockService struct {
	blockRepo repositories.BlockRepositoryInterface
	logger    *zap.Logger
}

func NewBlockService(blockRepo repositories.BlockRepositoryInterface, logger *zap.Logger) BlockServiceInterface {
	return &BlockService{blockRepo: blockRepo, logger: logger}
}

func blockToDTO(b *entities.Block) *dto.BlockDTO {
	return &dto.BlockDTO{
		ID:        b.ID,
		Name:      b.Name,
		Type:      b.Type,
		Region:    b.Region,
		Position:  b.Position,
		Content:   b.Content,
		PageID:    b.PageID,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (s *BlockService) GetBlocks(ctx context.Context, filter types.Filter) (*dto.BlockListResponseDTO, error) {
	blocks, total, err := s.blockRepo.GetBlocks(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]dto.BlockDTO, 0, len(blocks))
	for i := range blocks {
		list = append(list, *blockToDTO(&blocks[i]))
	}

	page := 1
	if filter.Limit > 0 {
		page = filter.Offset/filter.Limit + 1
	}
	return &dto.BlockListResponseDTO{
		List:       list,
		Pagination: dto.PaginationDTO{TotalCount: total, Page: page, Limit: filter.Limit},
	}, nil
}

func (s *BlockService) FindBlockByID(ctx context.Context, id uint64) (*dto.BlockDTO, error) {
	block, err := s.blockRepo.FindBlockByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return blockToDTO(block), nil
}

func (s *BlockService) CreateBlock(ctx context.Context, payload dto.CreateBlockDTO) (*dto.BlockDTO, error) {
	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	block := entities.Block{
		Name:     payload.Name,
		Type:     payload.Type,
		Region:   payload.Region,
		Position: payload.Position,
		Content:  payload.Content,
		PageID:   payload.PageID,
		IsActive: isActive,
	}

	id, err := s.blockRepo.CreateBlock(ctx, block)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Блок создан", zap.Uint64("id", id), zap.String("region", block.Region))
	return s.FindBlockByID(ctx, id)
}

func (s *BlockService) UpdateBlock(ctx context.Context, id uint64, payload dto.UpdateBlockDTO) (*dto.BlockDTO, error) {
	block, err := s.blockRepo.FindBlockByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		block.Name = payload.Name.String
	}
	if payload.Type.Valid {
		block.Type = payload.Type.String
	}
	if payload.Region.Valid {
		block.Region = payload.Region.String
	}
	if payload.Position.Valid {
		block.Position = payload.Position.Int
	}
	if len(payload.Content) > 0 {
		block.Content = payload.Content
	}
	if payload.PageID.Valid {
		// page_id: null отвязывает блок от страницы
		if payload.PageID.Int > 0 {
			pageID := uint64(payload.PageID.Int)
			block.PageID = &pageID
		} else {
			block.PageID = nil
		}
	}
	if payload.IsActive != nil {
		block.IsActive = *payload.IsActive
	}

	if err := s.blockRepo.UpdateBlock(ctx, id, *block); err != nil {
		return nil, err
	}
	return s.FindBlockByID(ctx, id)
}

func (s *BlockService) DeleteBlock(ctx context.Context, id uint64) error {
	return s.blockRepo.DeleteBlock(ctx, id)
}
