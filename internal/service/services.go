package service

import (
	"github.com/obi/bookshelf-api/internal/config"
	"github.com/obi/bookshelf-api/internal/imagehost"
	"github.com/obi/bookshelf-api/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth  *AuthService
	Book  *BookService
	Image *ImageService
}

func NewServices(logger *zap.Logger, repos *repository.Repositories, imageHost imagehost.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:  NewAuthService(logger.Named("auth"), repos.User, cfg),
		Book:  NewBookService(logger.Named("books"), repos.Book, imageHost),
		Image: NewImageService(logger.Named("images"), imageHost, cfg.ImageHostFolder),
	}
}
