package models

// Student represents a learner, keyed by registration number (RM).
type Student struct {
	RM        int64  `db:"rm" json:"rm"`
	Email     string `db:"email" json:"email"`
	CPF       string `db:"cpf" json:"cpf"`
	Name      string `db:"nome" json:"nome"`
	BirthDate Date   `db:"data_nasc" json:"dataNascimento"`
	ClassID   string `db:"id_turma" json:"idTurma"`
}
