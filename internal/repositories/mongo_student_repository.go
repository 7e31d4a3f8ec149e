package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"schoolpay/internal/models/db_models"
	"schoolpay/pkg/utils"
)

type mongoStudentRepository struct {
	students *mongo.Collection
}

func NewMongoStudentRepository(db *mongo.Database) StudentRepository {
	return &mongoStudentRepository{students: db.Collection(studentsCollection)}
}

func (r *mongoStudentRepository) FindByStudentIDs(ctx context.Context, studentIDs []string) ([]db_models.Student, error) {
	if len(studentIDs) == 0 {
		return []db_models.Student{}, nil
	}
	cur, err := r.students.Find(ctx, bson.M{"student_id": bson.M{"$in": studentIDs}})
	if err != nil {
		return nil, err
	}
	var docs []studentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	students := make([]db_models.Student, 0, len(docs))
	for _, d := range docs {
		students = append(students, d.model())
	}
	return students, nil
}

func (r *mongoStudentRepository) CreateBatch(ctx context.Context, students []db_models.Student) error {
	if len(students) == 0 {
		return nil
	}
	now := utils.NowUTC()
	docs := make([]interface{}, 0, len(students))
	for _, s := range students {
		docs = append(docs, newStudentDocument(s, now))
	}
	_, err := r.students.InsertMany(ctx, docs)
	return translateMongoError(err)
}
