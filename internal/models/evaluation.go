package models

// Evaluation is a graded assessment tied to a taught subject.
type Evaluation struct {
	ID              int64 `db:"id" json:"id"`
	TaughtSubjectID int64 `db:"id_materia_ministrada" json:"idMateriaMinistrada"`
	ApplicationDate Date  `db:"data_aplicacao" json:"dataAplicacao"`
	MaxScore        int   `db:"nota_max" json:"notaMaxima"`
}

// EvaluationDetail is an evaluation with its class and subject resolved.
type EvaluationDetail struct {
	ID              int64   `db:"id" json:"id"`
	Class           Class   `db:"turma" json:"turma"`
	Subject         Subject `db:"materia" json:"materia"`
	ApplicationDate Date    `db:"data_aplicacao" json:"dataAplicacao"`
	MaxScore        int     `db:"nota_max" json:"notaMaxima"`
}

// EvaluationSummary is the simplified evaluation shape used in listings.
type EvaluationSummary struct {
	ID              int64  `db:"id" json:"id"`
	ClassID         string `db:"id_turma" json:"idTurma"`
	SubjectName     string `db:"nome_materia" json:"nomeMateria"`
	ApplicationDate Date   `db:"data_aplicacao" json:"dataAplicacao"`
	MaxScore        int    `db:"nota_max" json:"notaMaxima"`
}

// TakenEvaluation is an evaluation a student sat, with the score obtained.
type TakenEvaluation struct {
	Evaluation EvaluationSummary `db:"avaliacao" json:"avaliacao"`
	Score      float64           `db:"nota" json:"nota"`
}
