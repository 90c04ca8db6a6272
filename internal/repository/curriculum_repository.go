package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/pkg/database"
)

const curriculumSubjectQuery = `
SELECT m.id AS "materia.id", m.nome AS "materia.nome", m.descricao AS "materia.descricao", gc.carga_horaria
FROM tb_grade_curso gc
JOIN tb_materia m ON m.id = gc.id_materia
WHERE gc.id_curso = $1`

// CurriculumRepository manages the subjects that make up a course.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository constructs a CurriculumRepository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// ListByCourse returns the curriculum subjects of a course ordered by subject id.
func (r *CurriculumRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.CurriculumSubject, error) {
	subjects := []models.CurriculumSubject{}
	if err := r.db.SelectContext(ctx, &subjects, curriculumSubjectQuery+` ORDER BY m.id`, courseID); err != nil {
		return nil, fmt.Errorf("list curriculum: %w", err)
	}
	return subjects, nil
}

// Add inserts a curriculum entry and reads back the course and the stored
// subject within one transaction. A missing course after insert surfaces as
// sql.ErrNoRows and rolls the insert back.
func (r *CurriculumRepository) Add(ctx context.Context, entry models.CurriculumEntry) (*models.Course, *models.CurriculumSubject, error) {
	var (
		course  *models.Course
		subject models.CurriculumSubject
	)
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const insert = `INSERT INTO tb_grade_curso (id_curso, id_materia, carga_horaria) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, insert, entry.CourseID, entry.SubjectID, entry.Hours); err != nil {
			return fmt.Errorf("insert curriculum entry: %w", classify(err))
		}

		found, err := findCourse(ctx, tx, entry.CourseID)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		course = found

		if err := tx.GetContext(ctx, &subject, curriculumSubjectQuery+` AND m.id = $2`, entry.CourseID, entry.SubjectID); err != nil {
			return fmt.Errorf("load curriculum subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return course, &subject, nil
}

// Remove deletes a curriculum entry and reports how many rows were affected.
func (r *CurriculumRepository) Remove(ctx context.Context, courseID, subjectID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_grade_curso WHERE id_curso = $1 AND id_materia = $2`, courseID, subjectID)
	if err != nil {
		return 0, fmt.Errorf("remove curriculum entry: %w", err)
	}
	return res.RowsAffected()
}
