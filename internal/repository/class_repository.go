package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
)

const classColumns = `id, id_curso, periodo, formato`

// ClassRepository handles persistence of classes. Keys are expected in
// canonical upper-case form; see models.NormalizeClassID.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns a page of classes ordered by id and the total count.
func (r *ClassRepository) List(ctx context.Context, page models.Page) ([]models.Class, int, error) {
	classes := []models.Class{}
	query := `SELECT ` + classColumns + ` FROM tb_turma ORDER BY id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &classes, query, page.Limit, page.Offset); err != nil {
		return nil, 0, fmt.Errorf("list classes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tb_turma`); err != nil {
		return nil, 0, fmt.Errorf("count classes: %w", err)
	}
	return classes, total, nil
}

// FindByID fetches a class. It returns sql.ErrNoRows when absent.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	query := `SELECT ` + classColumns + ` FROM tb_turma WHERE id = $1`
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Exists reports whether a class with the id is registered.
func (r *ClassRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM tb_turma WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check class exists: %w", err)
	}
	return exists, nil
}

// Create inserts a class and returns the stored row.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (*models.Class, error) {
	var created models.Class
	query := `INSERT INTO tb_turma (id, id_curso, periodo, formato) VALUES ($1, $2, $3, $4) RETURNING ` + classColumns
	if err := r.db.GetContext(ctx, &created, query, class.ID, class.CourseID, class.Period, class.Format); err != nil {
		return nil, fmt.Errorf("create class: %w", classify(err))
	}
	return &created, nil
}

// Update replaces a class. It returns sql.ErrNoRows when the id is unknown.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) (*models.Class, error) {
	var updated models.Class
	query := `UPDATE tb_turma SET id_curso = $1, periodo = $2, formato = $3 WHERE id = $4 RETURNING ` + classColumns
	if err := r.db.GetContext(ctx, &updated, query, class.CourseID, class.Period, class.Format, class.ID); err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// Delete removes a class and reports how many rows were affected.
func (r *ClassRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_turma WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete class: %w", classify(err))
	}
	return res.RowsAffected()
}

// ListTaughtSubjects returns the (teacher, subject) pairs taught in the class.
func (r *ClassRepository) ListTaughtSubjects(ctx context.Context, classID string) ([]models.TeacherSubject, error) {
	const query = `
SELECT p.id AS "professor.id", p.nome AS "professor.nome", p.cpf AS "professor.cpf",
       p.telefone AS "professor.telefone", p.email AS "professor.email",
       m.id AS "materia.id", m.nome AS "materia.nome", m.descricao AS "materia.descricao"
FROM tb_materia_ministrada mm
JOIN tb_professor p ON p.id = mm.id_professor
JOIN tb_materia m ON m.id = mm.id_materia
WHERE mm.id_turma = $1
ORDER BY m.id`
	subjects := []models.TeacherSubject{}
	if err := r.db.SelectContext(ctx, &subjects, query, classID); err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	return subjects, nil
}

// ListEvaluations returns the evaluations applied in the class.
func (r *ClassRepository) ListEvaluations(ctx context.Context, classID string) ([]models.EvaluationSummary, error) {
	const query = `
SELECT av.id, mm.id_turma, m.nome AS nome_materia, av.data_aplicacao, av.nota_max
FROM tb_avaliacao av
JOIN tb_materia_ministrada mm ON mm.id = av.id_materia_ministrada
JOIN tb_materia m ON m.id = mm.id_materia
WHERE mm.id_turma = $1
ORDER BY av.data_aplicacao, av.id`
	evaluations := []models.EvaluationSummary{}
	if err := r.db.SelectContext(ctx, &evaluations, query, classID); err != nil {
		return nil, fmt.Errorf("list class evaluations: %w", err)
	}
	return evaluations, nil
}
