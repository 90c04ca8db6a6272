package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculdade-api/internal/dto"
	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/internal/service"
	"github.com/noah-isme/faculdade-api/pkg/config"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

var testLimits = config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100}

type studentServiceMock struct {
	lastPage models.Page
	lastRM   int64
	exams    *dto.StudentExams
	err      error
}

func (m *studentServiceMock) List(ctx context.Context, page models.Page) ([]models.Student, *models.Pagination, error) {
	m.lastPage = page
	return []models.Student{}, &models.Pagination{Offset: page.Offset, Limit: page.Limit}, m.err
}

func (m *studentServiceMock) Get(ctx context.Context, rm int64) (*models.Student, error) {
	m.lastRM = rm
	if m.err != nil {
		return nil, m.err
	}
	return &models.Student{RM: rm}, nil
}

func (m *studentServiceMock) Create(ctx context.Context, req service.StudentRequest) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Student{RM: 1001, Name: req.Name}, nil
}

func (m *studentServiceMock) Update(ctx context.Context, rm int64, req service.StudentRequest) (*models.Student, error) {
	return &models.Student{RM: rm, Name: req.Name}, m.err
}

func (m *studentServiceMock) Delete(ctx context.Context, rm int64) error {
	m.lastRM = rm
	return m.err
}

func (m *studentServiceMock) Exams(ctx context.Context, rm int64) (*dto.StudentExams, error) {
	return m.exams, m.err
}

type courseServiceMock struct {
	addErr  error
	lastAdd service.CurriculumSubjectRequest
}

func (m *courseServiceMock) List(ctx context.Context, page models.Page) ([]models.Course, *models.Pagination, error) {
	return []models.Course{}, &models.Pagination{}, nil
}

func (m *courseServiceMock) Get(ctx context.Context, id int64) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

func (m *courseServiceMock) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	return &models.Course{ID: 1, Name: req.Name}, nil
}

func (m *courseServiceMock) Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error) {
	return &models.Course{ID: id, Name: req.Name}, nil
}

func (m *courseServiceMock) Delete(ctx context.Context, id int64) error { return nil }

func (m *courseServiceMock) Curriculum(ctx context.Context, id int64) (*dto.CourseCurriculum, error) {
	return &dto.CourseCurriculum{Course: models.Course{ID: id}, Subjects: []models.CurriculumSubject{}}, nil
}

func (m *courseServiceMock) AddSubject(ctx context.Context, courseID int64, req service.CurriculumSubjectRequest) (*dto.CourseCurriculum, error) {
	m.lastAdd = req
	if m.addErr != nil {
		return nil, m.addErr
	}
	return &dto.CourseCurriculum{
		Course:   models.Course{ID: courseID},
		Subjects: []models.CurriculumSubject{{Subject: models.Subject{ID: req.SubjectID}, Hours: req.Hours}},
	}, nil
}

func (m *courseServiceMock) RemoveSubject(ctx context.Context, courseID, subjectID int64) error {
	return nil
}

type subjectServiceMock struct{}

func (subjectServiceMock) List(ctx context.Context, page models.Page) ([]models.Subject, *models.Pagination, error) {
	return []models.Subject{}, &models.Pagination{}, nil
}
func (subjectServiceMock) Get(ctx context.Context, id int64) (*models.Subject, error) {
	return &models.Subject{ID: id}, nil
}
func (subjectServiceMock) Create(ctx context.Context, req service.SubjectRequest) (*models.Subject, error) {
	return &models.Subject{ID: 1}, nil
}
func (subjectServiceMock) Update(ctx context.Context, id int64, req service.SubjectRequest) (*models.Subject, error) {
	return &models.Subject{ID: id}, nil
}
func (subjectServiceMock) Delete(ctx context.Context, id int64) error { return nil }

type teacherServiceMock struct{}

func (teacherServiceMock) List(ctx context.Context, page models.Page) ([]models.Teacher, *models.Pagination, error) {
	return []models.Teacher{}, &models.Pagination{}, nil
}
func (teacherServiceMock) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	return &models.Teacher{ID: id}, nil
}
func (teacherServiceMock) Create(ctx context.Context, req service.TeacherRequest) (*models.Teacher, error) {
	return &models.Teacher{ID: 1}, nil
}
func (teacherServiceMock) Update(ctx context.Context, id int64, req service.TeacherRequest) (*models.Teacher, error) {
	return &models.Teacher{ID: id}, nil
}
func (teacherServiceMock) Delete(ctx context.Context, id int64) error { return nil }
func (teacherServiceMock) Subjects(ctx context.Context, id int64) (*dto.TeacherSubjects, error) {
	return &dto.TeacherSubjects{Teacher: models.Teacher{ID: id}, Subjects: []models.ClassSubject{}}, nil
}

type classServiceMock struct {
	lastID string
}

func (m *classServiceMock) List(ctx context.Context, page models.Page) ([]models.Class, *models.Pagination, error) {
	return []models.Class{}, &models.Pagination{}, nil
}
func (m *classServiceMock) Get(ctx context.Context, id string) (*models.Class, error) {
	m.lastID = id
	return &models.Class{ID: models.NormalizeClassID(id)}, nil
}
func (m *classServiceMock) Create(ctx context.Context, req service.CreateClassRequest) (*models.Class, error) {
	return &models.Class{ID: req.ID}, nil
}
func (m *classServiceMock) Update(ctx context.Context, id string, req service.UpdateClassRequest) (*models.Class, error) {
	return &models.Class{ID: id}, nil
}
func (m *classServiceMock) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return appErrors.Clone(appErrors.ErrNotFound, "class not found")
}
func (m *classServiceMock) Subjects(ctx context.Context, id string) (*dto.ClassSubjects, error) {
	return &dto.ClassSubjects{Class: models.Class{ID: id}, Subjects: []models.TeacherSubject{}}, nil
}
func (m *classServiceMock) Evaluations(ctx context.Context, id string) (*dto.ClassEvaluations, error) {
	return &dto.ClassEvaluations{ClassID: id, Evaluations: []models.EvaluationSummary{}}, nil
}
func (m *classServiceMock) AssignSubject(ctx context.Context, id string, req service.AssignSubjectRequest) (*dto.ClassSubjects, error) {
	return &dto.ClassSubjects{Class: models.Class{ID: id}}, nil
}
func (m *classServiceMock) RemoveSubject(ctx context.Context, id string, subjectID int64) error {
	return nil
}

type evaluationServiceMock struct {
	createErr error
}

func (m *evaluationServiceMock) List(ctx context.Context, page models.Page) ([]models.EvaluationDetail, *models.Pagination, error) {
	return []models.EvaluationDetail{}, &models.Pagination{}, nil
}
func (m *evaluationServiceMock) Get(ctx context.Context, id int64) (*models.EvaluationDetail, error) {
	return &models.EvaluationDetail{ID: id}, nil
}
func (m *evaluationServiceMock) Create(ctx context.Context, req service.CreateEvaluationRequest) (*models.EvaluationDetail, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.EvaluationDetail{ID: 1}, nil
}
func (m *evaluationServiceMock) Update(ctx context.Context, id int64, req service.UpdateEvaluationRequest) (*models.EvaluationDetail, error) {
	return &models.EvaluationDetail{ID: id}, nil
}
func (m *evaluationServiceMock) Delete(ctx context.Context, id int64) error { return nil }

type pingerMock struct{ err error }

func (p pingerMock) PingContext(ctx context.Context) error { return p.err }

type routerFixture struct {
	router     *gin.Engine
	student    *studentServiceMock
	course     *courseServiceMock
	class      *classServiceMock
	evaluation *evaluationServiceMock
}

func newRouterFixture(db Pinger) routerFixture {
	gin.SetMode(gin.TestMode)
	f := routerFixture{
		router:     gin.New(),
		student:    &studentServiceMock{},
		course:     &courseServiceMock{},
		class:      &classServiceMock{},
		evaluation: &evaluationServiceMock{},
	}
	RegisterRoutes(f.router.Group("/api"), Handlers{
		Student:    NewStudentHandler(f.student, testLimits),
		Course:     NewCourseHandler(f.course, testLimits),
		Subject:    NewSubjectHandler(subjectServiceMock{}, testLimits),
		Teacher:    NewTeacherHandler(teacherServiceMock{}, testLimits),
		Class:      NewClassHandler(f.class, testLimits),
		Evaluation: NewEvaluationHandler(f.evaluation, testLimits),
		System:     NewSystemHandler(service.NewMetricsService(nil), db),
	})
	return f
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var appErr appErrors.Error
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w)["error"], &appErr))
	return appErr.Code
}

func TestListClampsPagination(t *testing.T) {
	f := newRouterFixture(nil)

	w := performRequest(f.router, http.MethodGet, "/api/aluno?offSet=-5&limit=1000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Page{Offset: 0, Limit: 100}, f.student.lastPage)

	w = performRequest(f.router, http.MethodGet, "/api/aluno?limit=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Page{Offset: 0, Limit: 10}, f.student.lastPage)

	w = performRequest(f.router, http.MethodGet, "/api/aluno?offSet=20&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Page{Offset: 20, Limit: 5}, f.student.lastPage)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, w)["data"]))
}

func TestListRejectsMalformedPagination(t *testing.T) {
	f := newRouterFixture(nil)
	f.student.lastPage = models.Page{Offset: -1, Limit: -1}

	for _, query := range []string{"limit=abc", "offSet=1.5", "offSet=x&limit=5"} {
		w := performRequest(f.router, http.MethodGet, "/api/aluno?"+query, "")
		require.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, w), query)
	}
	assert.Equal(t, models.Page{Offset: -1, Limit: -1}, f.student.lastPage)

	w := performRequest(f.router, http.MethodGet, "/api/curso?limit=ten", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNumericKeyMustParse(t *testing.T) {
	f := newRouterFixture(nil)

	w := performRequest(f.router, http.MethodGet, "/api/aluno/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, w))

	w = performRequest(f.router, http.MethodGet, "/api/aluno/1001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1001), f.student.lastRM)
}

func TestStudentNotFound(t *testing.T) {
	f := newRouterFixture(nil)
	f.student.err = appErrors.Clone(appErrors.ErrNotFound, "student not found")

	w := performRequest(f.router, http.MethodGet, "/api/aluno/5/provas", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestInternalErrorHidesCause(t *testing.T) {
	f := newRouterFixture(nil)
	f.student.err = errors.New("pq: connection refused")

	w := performRequest(f.router, http.MethodDelete, "/api/aluno/5", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestStudentDelete(t *testing.T) {
	f := newRouterFixture(nil)

	w := performRequest(f.router, http.MethodDelete, "/api/aluno/5", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(5), f.student.lastRM)
}

func TestCurriculumAdd(t *testing.T) {
	f := newRouterFixture(nil)

	w := performRequest(f.router, http.MethodPost, "/api/curso/1/materias", `{"idMateria":5,"cargaHoraria":80}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, service.CurriculumSubjectRequest{SubjectID: 5, Hours: 80}, f.course.lastAdd)

	var body struct {
		Data dto.CourseCurriculum `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Subjects, 1)
	assert.Equal(t, 80, body.Data.Subjects[0].Hours)
}

func TestCurriculumAddDuplicate(t *testing.T) {
	f := newRouterFixture(nil)
	f.course.addErr = appErrors.Clone(appErrors.ErrCurriculumEntryExists, "")

	w := performRequest(f.router, http.MethodPost, "/api/curso/1/materias", `{"idMateria":5,"cargaHoraria":80}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CURRICULUM_ENTRY_EXISTS", errorCode(t, w))
}

func TestMalformedBody(t *testing.T) {
	f := newRouterFixture(nil)

	w := performRequest(f.router, http.MethodPost, "/api/avaliacao", `{"idTurma":"T1A"`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(f.router, http.MethodPost, "/api/avaliacao", `{"idTurma":"T1A","idMateria":5,"dataAplicacao":"10/03/2024","notaMaxima":10}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluationSubjectNotTaught(t *testing.T) {
	f := newRouterFixture(nil)
	f.evaluation.createErr = appErrors.Clone(appErrors.ErrSubjectNotTaught, "")

	w := performRequest(f.router, http.MethodPost, "/api/avaliacao", `{"idTurma":"T1A","idMateria":5,"dataAplicacao":"2024-03-10","notaMaxima":10}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SUBJECT_NOT_TAUGHT", errorCode(t, w))
}

func TestClassRoutesPassRawKey(t *testing.T) {
	f := newRouterFixture(nil)

	w := performRequest(f.router, http.MethodGet, "/api/turma/t1a", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t1a", f.class.lastID)
	assert.JSONEq(t, `{"id":"T1A","idCurso":0,"periodo":"","formato":""}`, string(decodeEnvelope(t, w)["data"]))

	w = performRequest(f.router, http.MethodDelete, "/api/turma/zz9", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(f.router, http.MethodDelete, "/api/turma/T1A/materias/x", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSystemRoutes(t *testing.T) {
	f := newRouterFixture(pingerMock{})
	assert.Equal(t, http.StatusOK, performRequest(f.router, http.MethodGet, "/api/health", "").Code)
	assert.Equal(t, http.StatusOK, performRequest(f.router, http.MethodGet, "/api/ready", "").Code)

	metrics := performRequest(f.router, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "go_goroutines")

	down := newRouterFixture(pingerMock{err: errors.New("dial tcp: refused")})
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(down.router, http.MethodGet, "/api/ready", "").Code)
}
