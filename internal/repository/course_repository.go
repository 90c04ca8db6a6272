package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculdade-api/internal/models"
)

const courseColumns = `id, nome, descricao, qnt_semestres`

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns a page of courses ordered by id and the total count.
func (r *CourseRepository) List(ctx context.Context, page models.Page) ([]models.Course, int, error) {
	courses := []models.Course{}
	query := `SELECT ` + courseColumns + ` FROM tb_curso ORDER BY id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &courses, query, page.Limit, page.Offset); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tb_curso`); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID fetches a course. It returns sql.ErrNoRows when absent.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	return findCourse(ctx, r.db, id)
}

func findCourse(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Course, error) {
	var course models.Course
	query := `SELECT ` + courseColumns + ` FROM tb_curso WHERE id = $1`
	if err := sqlx.GetContext(ctx, q, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course and returns the stored row.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	var created models.Course
	query := `INSERT INTO tb_curso (nome, descricao, qnt_semestres) VALUES ($1, $2, $3) RETURNING ` + courseColumns
	if err := r.db.GetContext(ctx, &created, query, course.Name, course.Description, course.Semesters); err != nil {
		return nil, fmt.Errorf("create course: %w", classify(err))
	}
	return &created, nil
}

// Update replaces every field of a course. It returns sql.ErrNoRows when the id is unknown.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	var updated models.Course
	query := `UPDATE tb_curso SET nome = $1, descricao = $2, qnt_semestres = $3 WHERE id = $4 RETURNING ` + courseColumns
	if err := r.db.GetContext(ctx, &updated, query, course.Name, course.Description, course.Semesters, course.ID); err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// Delete removes a course and reports how many rows were affected.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_curso WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete course: %w", classify(err))
	}
	return res.RowsAffected()
}
