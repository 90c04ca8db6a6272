package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
)

const subjectColumns = `id, nome, descricao`

// SubjectRepository handles persistence of subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns a page of subjects ordered by id and the total count.
func (r *SubjectRepository) List(ctx context.Context, page models.Page) ([]models.Subject, int, error) {
	subjects := []models.Subject{}
	query := `SELECT ` + subjectColumns + ` FROM tb_materia ORDER BY id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &subjects, query, page.Limit, page.Offset); err != nil {
		return nil, 0, fmt.Errorf("list subjects: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tb_materia`); err != nil {
		return nil, 0, fmt.Errorf("count subjects: %w", err)
	}
	return subjects, total, nil
}

// FindByID fetches a subject. It returns sql.ErrNoRows when absent.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	var subject models.Subject
	query := `SELECT ` + subjectColumns + ` FROM tb_materia WHERE id = $1`
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a subject and returns the stored row.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	var created models.Subject
	query := `INSERT INTO tb_materia (nome, descricao) VALUES ($1, $2) RETURNING ` + subjectColumns
	if err := r.db.GetContext(ctx, &created, query, subject.Name, subject.Description); err != nil {
		return nil, fmt.Errorf("create subject: %w", classify(err))
	}
	return &created, nil
}

// Update replaces a subject. It returns sql.ErrNoRows when the id is unknown.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	var updated models.Subject
	query := `UPDATE tb_materia SET nome = $1, descricao = $2 WHERE id = $3 RETURNING ` + subjectColumns
	if err := r.db.GetContext(ctx, &updated, query, subject.Name, subject.Description, subject.ID); err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// Delete removes a subject and reports how many rows were affected.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_materia WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete subject: %w", classify(err))
	}
	return res.RowsAffected()
}
