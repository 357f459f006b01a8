package services

import (
	"context"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/repositories"
)

// ClientService defines the business logic around customers.
type ClientService interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, id int64, updateData *models.Client) (*models.Client, error)
	Delete(ctx context.Context, id int64) error
}

type clientService struct {
	repo repositories.ClientRepository
}

func NewClientService(repo repositories.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := s.repo.Store(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *clientService) GetAll(ctx context.Context) ([]models.Client, error) {
	return s.repo.FindAll(ctx)
}

func (s *clientService) Update(ctx context.Context, id int64, updateData *models.Client) (*models.Client, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.FirstName = updateData.FirstName
	existing.LastName = updateData.LastName
	existing.Address = updateData.Address
	existing.Phone = updateData.Phone
	existing.Email = updateData.Email
	existing.Notes = updateData.Notes

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
