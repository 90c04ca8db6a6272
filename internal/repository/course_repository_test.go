package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculdade-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nome", "descricao", "qnt_semestres"}).
		AddRow(1, "Computacao", "Bacharelado", 8).
		AddRow(2, "Direito", "Bacharelado", 10)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nome, descricao, qnt_semestres FROM tb_curso ORDER BY id LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tb_curso")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	courses, total, err := repo.List(context.Background(), models.Page{Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, courses, 2)
	assert.Equal(t, "Direito", courses[1].Name)
	assert.Equal(t, 10, courses[1].Semesters)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListEmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("FROM tb_curso ORDER BY id").
		WithArgs(10, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "descricao", "qnt_semestres"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tb_curso")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	courses, total, err := repo.List(context.Background(), models.Page{Offset: 50, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
	assert.Equal(t, 3, total)
}

func TestCourseRepositoryCreateReturnsStoredRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tb_curso (nome, descricao, qnt_semestres) VALUES ($1, $2, $3) RETURNING id, nome, descricao, qnt_semestres")).
		WithArgs("Computacao", "Bacharelado", 8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "descricao", "qnt_semestres"}).AddRow(7, "Computacao", "Bacharelado", 8))

	created, err := repo.Create(context.Background(), &models.Course{Name: "Computacao", Description: "Bacharelado", Semesters: 8})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateUnknownReturnsNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tb_curso SET nome = $1, descricao = $2, qnt_semestres = $3 WHERE id = $4")).
		WithArgs("X", "Y", 5, int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "descricao", "qnt_semestres"}))

	_, err := repo.Update(context.Background(), &models.Course{ID: 99, Name: "X", Description: "Y", Semesters: 5})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteReportsAffectedRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tb_curso WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteReferencedIsForeignKey(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tb_curso WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrForeignKey)
}
