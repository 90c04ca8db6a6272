package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
)

const evaluationColumns = `id, id_materia_ministrada, data_aplicacao, nota_max`

const evaluationDetailQuery = `
SELECT av.id, av.data_aplicacao, av.nota_max,
       t.id AS "turma.id", t.id_curso AS "turma.id_curso", t.periodo AS "turma.periodo", t.formato AS "turma.formato",
       m.id AS "materia.id", m.nome AS "materia.nome", m.descricao AS "materia.descricao"
FROM tb_avaliacao av
JOIN tb_materia_ministrada mm ON mm.id = av.id_materia_ministrada
JOIN tb_turma t ON t.id = mm.id_turma
JOIN tb_materia m ON m.id = mm.id_materia`

// EvaluationRepository handles persistence of evaluations.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository constructs an EvaluationRepository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// List returns a page of evaluations with class and subject resolved.
func (r *EvaluationRepository) List(ctx context.Context, page models.Page) ([]models.EvaluationDetail, int, error) {
	evaluations := []models.EvaluationDetail{}
	query := evaluationDetailQuery + ` ORDER BY av.id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &evaluations, query, page.Limit, page.Offset); err != nil {
		return nil, 0, fmt.Errorf("list evaluations: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tb_avaliacao`); err != nil {
		return nil, 0, fmt.Errorf("count evaluations: %w", err)
	}
	return evaluations, total, nil
}

// FindByID fetches an evaluation with its class and subject. It returns
// sql.ErrNoRows when absent.
func (r *EvaluationRepository) FindByID(ctx context.Context, id int64) (*models.EvaluationDetail, error) {
	var evaluation models.EvaluationDetail
	if err := r.db.GetContext(ctx, &evaluation, evaluationDetailQuery+` WHERE av.id = $1`, id); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// Create inserts an evaluation for an existing taught subject.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error) {
	var created models.Evaluation
	query := `INSERT INTO tb_avaliacao (id_materia_ministrada, data_aplicacao, nota_max) VALUES ($1, $2, $3) RETURNING ` + evaluationColumns
	if err := r.db.GetContext(ctx, &created, query, evaluation.TaughtSubjectID, evaluation.ApplicationDate, evaluation.MaxScore); err != nil {
		return nil, fmt.Errorf("create evaluation: %w", classify(err))
	}
	return &created, nil
}

// Update changes the date and maximum score of an evaluation. It returns
// sql.ErrNoRows when the id is unknown.
func (r *EvaluationRepository) Update(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error) {
	var updated models.Evaluation
	query := `UPDATE tb_avaliacao SET data_aplicacao = $1, nota_max = $2 WHERE id = $3 RETURNING ` + evaluationColumns
	if err := r.db.GetContext(ctx, &updated, query, evaluation.ApplicationDate, evaluation.MaxScore, evaluation.ID); err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// Delete removes an evaluation and reports how many rows were affected.
func (r *EvaluationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_avaliacao WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete evaluation: %w", classify(err))
	}
	return res.RowsAffected()
}
