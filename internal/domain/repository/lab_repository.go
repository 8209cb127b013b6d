package repository

import "github.com/jhoicas/labstock-api/internal/domain/entity"

// LabRepository is the persistence port for Lab (DIP).
// Create returns domain.ErrDuplicate when the code is already taken.
type LabRepository interface {
	Create(lab *entity.Lab) error
	GetByID(id string) (*entity.Lab, error)
	GetByCode(code string) (*entity.Lab, error)
	List() ([]*entity.Lab, error)
}
