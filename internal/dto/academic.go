package dto

import "github.com/noah-isme/faculdade-api/internal/models"

// CourseCurriculum is a course with the subjects of its curriculum.
type CourseCurriculum struct {
	Course   models.Course              `json:"curso"`
	Subjects []models.CurriculumSubject `json:"materias"`
}

// ClassSubjects lists the subjects taught in a class and by whom.
type ClassSubjects struct {
	Class    models.Class            `json:"turma"`
	Subjects []models.TeacherSubject `json:"materias"`
}

// ClassEvaluations lists the evaluations applied in a class.
type ClassEvaluations struct {
	ClassID     string                     `json:"idTurma"`
	Evaluations []models.EvaluationSummary `json:"avaliacoes"`
}

// StudentExams lists the evaluations a student has taken.
type StudentExams struct {
	RM    int64                    `json:"rmAluno"`
	Exams []models.TakenEvaluation `json:"provasRealizadas"`
}

// TeacherSubjects lists the (class, subject) pairs a teacher teaches.
type TeacherSubjects struct {
	Teacher  models.Teacher        `json:"professor"`
	Subjects []models.ClassSubject `json:"materias"`
}
