package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/obi/bookshelf-api/internal/domain"
	"github.com/obi/bookshelf-api/internal/imagehost"
	"github.com/obi/bookshelf-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BookService struct {
	bookRepo  repository.BookRepository
	imageHost imagehost.Client
	logger    *zap.Logger
}

func NewBookService(logger *zap.Logger, bookRepo repository.BookRepository, imageHost imagehost.Client) *BookService {
	return &BookService{
		bookRepo:  bookRepo,
		imageHost: imageHost,
		logger:    logger,
	}
}

type CreateBookInput struct {
	Title       string
	Author      string
	Description string
	Year        int
	CoverImage  *imagehost.UploadResult
}

// UpdateBookInput carries a partial update; nil fields are left untouched.
type UpdateBookInput struct {
	Title       *string
	Author      *string
	Description *string
	Year        *int
	CoverImage  *imagehost.UploadResult
}

func (s *BookService) Create(ctx context.Context, input CreateBookInput, user *domain.User) (*domain.Book, error) {
	book := &domain.Book{
		ID:          uuid.New(),
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Year:        input.Year,
		UserID:      user.ID,
	}
	if input.CoverImage != nil {
		if err := book.SetCoverImage(input.CoverImage.URL, coverMeta(input.CoverImage)); err != nil {
			return nil, err
		}
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book created",
		zap.String("bookId", book.ID.String()),
		zap.String("userId", user.ID.String()))
	return book, nil
}

func (s *BookService) FindAll(ctx context.Context, user *domain.User) ([]*domain.Book, error) {
	return s.bookRepo.GetByUserID(ctx, user.ID)
}

// FindOne checks existence before ownership: an id that does not exist is
// not found, an id owned by someone else is forbidden.
func (s *BookService) FindOne(ctx context.Context, id uuid.UUID, user *domain.User) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	if book.UserID != user.ID {
		s.logger.Warn("book access denied",
			zap.String("bookId", id.String()),
			zap.String("userId", user.ID.String()),
			zap.String("ownerId", book.UserID.String()))
		return nil, domain.ErrBookForbidden
	}

	return book, nil
}

func (s *BookService) Update(ctx context.Context, id uuid.UUID, input UpdateBookInput, user *domain.User) (*domain.Book, error) {
	book, err := s.FindOne(ctx, id, user)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Year != nil {
		book.Year = *input.Year
	}

	replacedID := ""
	if input.CoverImage != nil {
		replacedID = book.CoverImagePublicID()
		if err := book.SetCoverImage(input.CoverImage.URL, coverMeta(input.CoverImage)); err != nil {
			return nil, err
		}
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	// The old cover is destroyed only once the record holds the new one.
	if replacedID != "" {
		if err := s.imageHost.Destroy(ctx, replacedID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("book updated", zap.String("bookId", book.ID.String()))
	return book, nil
}

func (s *BookService) Remove(ctx context.Context, id uuid.UUID, user *domain.User) error {
	book, err := s.FindOne(ctx, id, user)
	if err != nil {
		return err
	}

	if publicID := book.CoverImagePublicID(); publicID != "" {
		if err := s.imageHost.Destroy(ctx, publicID); err != nil {
			return err
		}
	}

	if err := s.bookRepo.Delete(ctx, book.ID); err != nil {
		return err
	}

	s.logger.Info("book removed", zap.String("bookId", book.ID.String()))
	return nil
}

func coverMeta(res *imagehost.UploadResult) domain.CoverImageMeta {
	return domain.CoverImageMeta{
		PublicID: res.PublicID,
		Format:   res.Format,
		Width:    res.Width,
		Height:   res.Height,
		Bytes:    res.Bytes,
	}
}
