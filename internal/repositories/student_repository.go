package repositories

import (
	"context"

	"gorm.io/gorm"
	"schoolpay/internal/models/db_models"
)

type StudentRepository interface {
	FindByStudentIDs(ctx context.Context, studentIDs []string) ([]db_models.Student, error)
	CreateBatch(ctx context.Context, students []db_models.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByStudentIDs(ctx context.Context, studentIDs []string) ([]db_models.Student, error) {
	if len(studentIDs) == 0 {
		return []db_models.Student{}, nil
	}
	var students []db_models.Student
	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) CreateBatch(ctx context.Context, students []db_models.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&students, 100).Error; err != nil {
			return translateGormError(err)
		}
		return nil
	})
}
