package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
)

const teacherColumns = `id, nome, cpf, telefone, email`

// TeacherRepository handles persistence of teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns a page of teachers ordered by id and the total count.
func (r *TeacherRepository) List(ctx context.Context, page models.Page) ([]models.Teacher, int, error) {
	teachers := []models.Teacher{}
	query := `SELECT ` + teacherColumns + ` FROM tb_professor ORDER BY id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &teachers, query, page.Limit, page.Offset); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tb_professor`); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	return teachers, total, nil
}

// FindByID fetches a teacher. It returns sql.ErrNoRows when absent.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	query := `SELECT ` + teacherColumns + ` FROM tb_professor WHERE id = $1`
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a teacher and returns the stored row.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	var created models.Teacher
	query := `INSERT INTO tb_professor (nome, cpf, telefone, email) VALUES ($1, $2, $3, $4) RETURNING ` + teacherColumns
	if err := r.db.GetContext(ctx, &created, query, teacher.Name, teacher.CPF, teacher.Phone, teacher.Email); err != nil {
		return nil, fmt.Errorf("create teacher: %w", classify(err))
	}
	return &created, nil
}

// Update replaces a teacher. It returns sql.ErrNoRows when the id is unknown.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	var updated models.Teacher
	query := `UPDATE tb_professor SET nome = $1, cpf = $2, telefone = $3, email = $4 WHERE id = $5 RETURNING ` + teacherColumns
	if err := r.db.GetContext(ctx, &updated, query, teacher.Name, teacher.CPF, teacher.Phone, teacher.Email, teacher.ID); err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// Delete removes a teacher and reports how many rows were affected.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_professor WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete teacher: %w", classify(err))
	}
	return res.RowsAffected()
}

// ListTaughtSubjects returns every (class, subject) pair the teacher teaches.
func (r *TeacherRepository) ListTaughtSubjects(ctx context.Context, teacherID int64) ([]models.ClassSubject, error) {
	const query = `
SELECT t.id AS "turma.id", t.id_curso AS "turma.id_curso", t.periodo AS "turma.periodo", t.formato AS "turma.formato",
       m.id AS "materia.id", m.nome AS "materia.nome", m.descricao AS "materia.descricao"
FROM tb_materia_ministrada mm
JOIN tb_turma t ON t.id = mm.id_turma
JOIN tb_materia m ON m.id = mm.id_materia
WHERE mm.id_professor = $1
ORDER BY t.id, m.id`
	subjects := []models.ClassSubject{}
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher subjects: %w", err)
	}
	return subjects, nil
}
