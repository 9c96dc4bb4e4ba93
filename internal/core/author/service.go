package author

import (
	"context"
	"log/slog"

	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/validate"
	"github.com/libris/libris/pkg/textnorm"
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

func (service *Service) ListAuthors(ctx context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(ctx, filter, limit, offset)
}

func (service *Service) GetAuthor(ctx context.Context, id string) (*Author, error) {
	return service.repo.GetAuthor(ctx, id)
}

func (service *Service) CreateAuthor(ctx context.Context, author *Author) error {
	validator := &validate.Validator{}
	validator.Required(FieldFirstName, author.FirstName).MaxLen(FieldFirstName, author.FirstName, 255)
	validator.Required(FieldLastName, author.LastName).MaxLen(FieldLastName, author.LastName, 255)

	if err := validator.Err(); err != nil {
		return err
	}

	// Duplicate detection is accent-insensitive: "Éric" and "Eric" collide.
	firstNorm := textnorm.Fold(author.FirstName)
	lastNorm := textnorm.Fold(author.LastName)

	exists, err := service.repo.ExistsByName(ctx, firstNorm, lastNorm, "")
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Author already exists")
	}

	author.ID = uuid.New()
	if err := service.repo.CreateAuthor(ctx, author, firstNorm, lastNorm); err != nil {
		return err
	}

	service.logger.Info("author_created",
		slog.String("author_id", author.ID),
		slog.String("last_name", author.LastName),
	)
	return nil
}

func (service *Service) UpdateAuthor(ctx context.Context, id string, author *Author) error {
	author.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, author.FirstName).MaxLen(FieldFirstName, author.FirstName, 255)
	validator.Required(FieldLastName, author.LastName).MaxLen(FieldLastName, author.LastName, 255)

	if err := validator.Err(); err != nil {
		return err
	}

	firstNorm := textnorm.Fold(author.FirstName)
	lastNorm := textnorm.Fold(author.LastName)

	exists, err := service.repo.ExistsByName(ctx, firstNorm, lastNorm, id)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Another author with this name already exists")
	}

	if err := service.repo.UpdateAuthor(ctx, author, firstNorm, lastNorm); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.String("author_id", id))
	return nil
}

func (service *Service) DeleteAuthor(ctx context.Context, id string) error {
	if err := service.repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.String("author_id", id))
	return nil
}
