package models

// Subject represents an academic subject (materia).
type Subject struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"nome" json:"nome"`
	Description string `db:"descricao" json:"descricao"`
}
