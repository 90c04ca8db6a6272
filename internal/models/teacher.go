package models

// Teacher represents an instructor record.
type Teacher struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"nome" json:"nome"`
	CPF   string `db:"cpf" json:"cpf"`
	Phone string `db:"telefone" json:"telefone"`
	Email string `db:"email" json:"email"`
}
