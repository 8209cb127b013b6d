package repository

import "github.com/jhoicas/labstock-api/internal/domain/entity"

// UserRepository is the persistence port for User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
