// Package models holds the gorm models of the agency store. Table and column
// names follow the historical schema so an older database evolves in place.
package models

// All lists every model, parents before children.
func All() []any {
	return []any{
		&User{},
		&AuthToken{},
		&Mandat{},
		&Transaction{},
		&Suivi{},
		&Recherche{},
		&GestionLocative{},
	}
}
