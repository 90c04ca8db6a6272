package models

import "strings"

// Class periods.
const (
	PeriodNight   = "Noturno"
	PeriodMorning = "Matutino"
)

// Class formats.
const (
	FormatDistance = "EAD"
	FormatInPerson = "Presencial"
	FormatHybrid   = "Semi-Presencial"
)

// Class (turma) is a scheduled offering of a course for a cohort of students.
type Class struct {
	ID       string `db:"id" json:"id"`
	CourseID int64  `db:"id_curso" json:"idCurso"`
	Period   string `db:"periodo" json:"periodo"`
	Format   string `db:"formato" json:"formato"`
}

// NormalizeClassID returns the canonical (upper-case) form of a class key.
func NormalizeClassID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// TaughtSubject assigns a subject to a teacher within a class.
type TaughtSubject struct {
	ID        int64  `db:"id" json:"id"`
	ClassID   string `db:"id_turma" json:"idTurma"`
	SubjectID int64  `db:"id_materia" json:"idMateria"`
	TeacherID int64  `db:"id_professor" json:"idProfessor"`
}

// TeacherSubject is a (teacher, subject) pair taught in a class.
type TeacherSubject struct {
	Teacher Teacher `db:"professor" json:"professor"`
	Subject Subject `db:"materia" json:"materia"`
}

// ClassSubject is a (class, subject) pair taught by a teacher.
type ClassSubject struct {
	Class   Class   `db:"turma" json:"turma"`
	Subject Subject `db:"materia" json:"materia"`
}
