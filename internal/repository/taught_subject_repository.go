package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
)

// TaughtSubjectRepository manages subject assignments within classes.
type TaughtSubjectRepository struct {
	db *sqlx.DB
}

// NewTaughtSubjectRepository constructs a TaughtSubjectRepository.
func NewTaughtSubjectRepository(db *sqlx.DB) *TaughtSubjectRepository {
	return &TaughtSubjectRepository{db: db}
}

// FindID looks up the assignment id for a (class, subject) pair. found is
// false when the subject is not taught in the class.
func (r *TaughtSubjectRepository) FindID(ctx context.Context, classID string, subjectID int64) (int64, bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT id FROM tb_materia_ministrada WHERE id_turma = $1 AND id_materia = $2`, classID, subjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("find taught subject: %w", err)
	}
	return id, true, nil
}

// Assign records that a teacher teaches a subject in a class.
func (r *TaughtSubjectRepository) Assign(ctx context.Context, assignment *models.TaughtSubject) (*models.TaughtSubject, error) {
	var created models.TaughtSubject
	const query = `
INSERT INTO tb_materia_ministrada (id_turma, id_materia, id_professor)
VALUES ($1, $2, $3)
RETURNING id, id_turma, id_materia, id_professor`
	if err := r.db.GetContext(ctx, &created, query, assignment.ClassID, assignment.SubjectID, assignment.TeacherID); err != nil {
		return nil, fmt.Errorf("assign taught subject: %w", classify(err))
	}
	return &created, nil
}

// Remove deletes the assignment of a subject within a class.
func (r *TaughtSubjectRepository) Remove(ctx context.Context, classID string, subjectID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_materia_ministrada WHERE id_turma = $1 AND id_materia = $2`, classID, subjectID)
	if err != nil {
		return 0, fmt.Errorf("remove taught subject: %w", classify(err))
	}
	return res.RowsAffected()
}
