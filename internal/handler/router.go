package handler

import "github.com/gin-gonic/gin"

// Handlers groups every HTTP handler served by the API.
type Handlers struct {
	Student    *StudentHandler
	Course     *CourseHandler
	Subject    *SubjectHandler
	Teacher    *TeacherHandler
	Class      *ClassHandler
	Evaluation *EvaluationHandler
	System     *SystemHandler
}

// RegisterRoutes mounts all routes on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	r.GET("/metrics", h.System.Prometheus)

	aluno := r.Group("/aluno")
	aluno.GET("", h.Student.List)
	aluno.POST("", h.Student.Create)
	aluno.GET("/:rm", h.Student.Get)
	aluno.PUT("/:rm", h.Student.Update)
	aluno.DELETE("/:rm", h.Student.Delete)
	aluno.GET("/:rm/provas", h.Student.Exams)

	curso := r.Group("/curso")
	curso.GET("", h.Course.List)
	curso.POST("", h.Course.Create)
	curso.GET("/:id", h.Course.Get)
	curso.PUT("/:id", h.Course.Update)
	curso.DELETE("/:id", h.Course.Delete)
	curso.GET("/:id/materias", h.Course.Curriculum)
	curso.POST("/:id/materias", h.Course.AddSubject)
	curso.DELETE("/:id/materias/:idMateria", h.Course.RemoveSubject)

	materia := r.Group("/materia")
	materia.GET("", h.Subject.List)
	materia.POST("", h.Subject.Create)
	materia.GET("/:id", h.Subject.Get)
	materia.PUT("/:id", h.Subject.Update)
	materia.DELETE("/:id", h.Subject.Delete)

	professor := r.Group("/professor")
	professor.GET("", h.Teacher.List)
	professor.POST("", h.Teacher.Create)
	professor.GET("/:id", h.Teacher.Get)
	professor.PUT("/:id", h.Teacher.Update)
	professor.DELETE("/:id", h.Teacher.Delete)
	professor.GET("/:id/materias", h.Teacher.Subjects)

	turma := r.Group("/turma")
	turma.GET("", h.Class.List)
	turma.POST("", h.Class.Create)
	turma.GET("/:id", h.Class.Get)
	turma.PUT("/:id", h.Class.Update)
	turma.DELETE("/:id", h.Class.Delete)
	turma.GET("/:id/materias", h.Class.Subjects)
	turma.POST("/:id/materias", h.Class.AssignSubject)
	turma.DELETE("/:id/materias/:idMateria", h.Class.RemoveSubject)
	turma.GET("/:id/avaliacoes", h.Class.Evaluations)

	avaliacao := r.Group("/avaliacao")
	avaliacao.GET("", h.Evaluation.List)
	avaliacao.POST("", h.Evaluation.Create)
	avaliacao.GET("/:id", h.Evaluation.Get)
	avaliacao.PUT("/:id", h.Evaluation.Update)
	avaliacao.DELETE("/:id", h.Evaluation.Delete)
}
