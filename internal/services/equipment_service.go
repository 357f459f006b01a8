package services

import (
	"context"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/repositories"
)

type EquipmentService interface {
	Create(ctx context.Context, eq *models.Equipment) (*models.Equipment, error)
	GetByID(ctx context.Context, id int64) (*models.Equipment, error)
	GetAll(ctx context.Context, clientID *int64) ([]models.EquipmentWithOwner, error)
	Update(ctx context.Context, id int64, updateData *models.Equipment) (*models.Equipment, error)
	Delete(ctx context.Context, id int64) error
}

type equipmentService struct {
	repo repositories.EquipmentRepository
}

func NewEquipmentService(repo repositories.EquipmentRepository) EquipmentService {
	return &equipmentService{repo: repo}
}

func (s *equipmentService) Create(ctx context.Context, eq *models.Equipment) (*models.Equipment, error) {
	if err := s.repo.Store(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) GetByID(ctx context.Context, id int64) (*models.Equipment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *equipmentService) GetAll(ctx context.Context, clientID *int64) ([]models.EquipmentWithOwner, error) {
	return s.repo.FindAll(ctx, clientID)
}

func (s *equipmentService) Update(ctx context.Context, id int64, updateData *models.Equipment) (*models.Equipment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.ClientID = updateData.ClientID
	existing.Type = updateData.Type
	existing.Brand = updateData.Brand
	existing.Model = updateData.Model
	existing.SerialNumber = updateData.SerialNumber
	existing.PurchaseDate = updateData.PurchaseDate
	existing.WarrantyTo = updateData.WarrantyTo
	existing.Notes = updateData.Notes

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *equipmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
