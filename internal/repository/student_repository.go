package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
)

const studentColumns = `rm, email, cpf, nome, data_nasc, id_turma`

// StudentRepository handles persistence of students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns a page of students ordered by RM and the total count.
func (r *StudentRepository) List(ctx context.Context, page models.Page) ([]models.Student, int, error) {
	students := []models.Student{}
	query := `SELECT ` + studentColumns + ` FROM tb_aluno ORDER BY rm LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &students, query, page.Limit, page.Offset); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tb_aluno`); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByRM fetches a student. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByRM(ctx context.Context, rm int64) (*models.Student, error) {
	var student models.Student
	query := `SELECT ` + studentColumns + ` FROM tb_aluno WHERE rm = $1`
	if err := r.db.GetContext(ctx, &student, query, rm); err != nil {
		return nil, err
	}
	return &student, nil
}

// Exists reports whether a student with the RM is registered.
func (r *StudentRepository) Exists(ctx context.Context, rm int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM tb_aluno WHERE rm = $1)`, rm); err != nil {
		return false, fmt.Errorf("check student exists: %w", err)
	}
	return exists, nil
}

// Create inserts a student and returns the stored row.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	var created models.Student
	query := `INSERT INTO tb_aluno (email, cpf, nome, data_nasc, id_turma) VALUES ($1, $2, $3, $4, $5) RETURNING ` + studentColumns
	if err := r.db.GetContext(ctx, &created, query, student.Email, student.CPF, student.Name, student.BirthDate, student.ClassID); err != nil {
		return nil, fmt.Errorf("create student: %w", classify(err))
	}
	return &created, nil
}

// Update replaces a student. It returns sql.ErrNoRows when the RM is unknown.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	var updated models.Student
	query := `UPDATE tb_aluno SET email = $1, cpf = $2, nome = $3, data_nasc = $4, id_turma = $5 WHERE rm = $6 RETURNING ` + studentColumns
	if err := r.db.GetContext(ctx, &updated, query, student.Email, student.CPF, student.Name, student.BirthDate, student.ClassID, student.RM); err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// Delete removes a student and reports how many rows were affected.
func (r *StudentRepository) Delete(ctx context.Context, rm int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_aluno WHERE rm = $1`, rm)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", classify(err))
	}
	return res.RowsAffected()
}

// ListTakenEvaluations returns the evaluations the student sat with their scores.
func (r *StudentRepository) ListTakenEvaluations(ctx context.Context, rm int64) ([]models.TakenEvaluation, error) {
	const query = `
SELECT av.id AS "avaliacao.id", mm.id_turma AS "avaliacao.id_turma", m.nome AS "avaliacao.nome_materia",
       av.data_aplicacao AS "avaliacao.data_aplicacao", av.nota_max AS "avaliacao.nota_max", rp.nota
FROM tb_realizacao_prova rp
JOIN tb_avaliacao av ON av.id = rp.id_avaliacao
JOIN tb_materia_ministrada mm ON mm.id = av.id_materia_ministrada
JOIN tb_materia m ON m.id = mm.id_materia
WHERE rp.rm_aluno = $1
ORDER BY av.data_aplicacao, av.id`
	exams := []models.TakenEvaluation{}
	if err := r.db.SelectContext(ctx, &exams, query, rm); err != nil {
		return nil, fmt.Errorf("list student evaluations: %w", err)
	}
	return exams, nil
}
