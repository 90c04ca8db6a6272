package models

// Course is a degree programme offered by the institution.
type Course struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"nome" json:"nome"`
	Description string `db:"descricao" json:"descricao"`
	Semesters   int    `db:"qnt_semestres" json:"qntSemestres"`
}

// CurriculumEntry links a subject to a course with its course-load hours.
type CurriculumEntry struct {
	CourseID  int64 `db:"id_curso" json:"idCurso"`
	SubjectID int64 `db:"id_materia" json:"idMateria"`
	Hours     int   `db:"carga_horaria" json:"cargaHoraria"`
}

// CurriculumSubject is a subject as it appears in a course curriculum.
type CurriculumSubject struct {
	Subject Subject `db:"materia" json:"materia"`
	Hours   int     `db:"carga_horaria" json:"cargaHoraria"`
}
