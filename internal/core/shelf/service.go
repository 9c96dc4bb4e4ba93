package shelf

import (
	"context"
	"log/slog"
	"strings"

	"github.com/libris/libris/internal/platform/validate"
	"github.com/libris/libris/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListShelves(ctx context.Context, limit, offset int) ([]*Shelf, int, error) {
	return service.repo.ListShelves(ctx, limit, offset)
}

func (service *Service) GetShelf(ctx context.Context, id string) (*Shelf, error) {
	return service.repo.GetShelf(ctx, id)
}

func (service *Service) CreateShelf(ctx context.Context, shelf *Shelf) error {
	shelf.Name = strings.TrimSpace(shelf.Name)

	if err := validateShelf(shelf); err != nil {
		return err
	}

	shelf.ID = uuid.New()
	if err := service.repo.CreateShelf(ctx, shelf); err != nil {
		return err
	}

	service.logger.Info("shelf_created",
		slog.String("shelf_id", shelf.ID),
		slog.String("name", shelf.Name),
	)
	return nil
}

func (service *Service) UpdateShelf(ctx context.Context, id string, shelf *Shelf) error {
	shelf.ID = id
	shelf.Name = strings.TrimSpace(shelf.Name)

	if err := validateShelf(shelf); err != nil {
		return err
	}

	if err := service.repo.UpdateShelf(ctx, shelf); err != nil {
		return err
	}

	service.logger.Info("shelf_updated", slog.String("shelf_id", id))
	return nil
}

func (service *Service) DeleteShelf(ctx context.Context, id string) error {
	if err := service.repo.DeleteShelf(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("shelf_deleted", slog.String("shelf_id", id))
	return nil
}

func validateShelf(shelf *Shelf) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, shelf.Name).MaxLen(FieldName, shelf.Name, 255)
	if shelf.Location != nil {
		validator.MaxLen(FieldLocation, *shelf.Location, 255)
	}
	return validator.Err()
}
