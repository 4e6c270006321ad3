package models

import (
	"strings"

	"github.com/diewo77/agence-immo/validation"
)

// GestionLocative tracks a managed rental: lease terms, rent and payments.
type GestionLocative struct {
	ID uint `gorm:"primaryKey" json:"id"`
	GestionLocativeFields
}

func (GestionLocative) TableName() string { return "gestion_locative" }

func (m GestionLocative) GetID() uint { return m.ID }

type GestionLocativeFields struct {
	// ReferenceMandat is optional; nil stores NULL and skips the mandat check.
	ReferenceMandat         *string `gorm:"column:referenceMandat;size:50;index:idx_gestion_locative_reference_mandat" json:"referenceMandat"`
	NumeroBien              string  `gorm:"column:numeroBien;size:50;not null" json:"numeroBien"`
	AdresseBien             string  `gorm:"column:adresseBien;size:255" json:"adresseBien"`
	ProprietaireNom         string  `gorm:"column:proprietaireNom;size:150" json:"proprietaireNom"`
	ProprietaireCoordonnees string  `gorm:"column:proprietaireCoordonnees;size:255" json:"proprietaireCoordonnees"`
	LocataireNom            string  `gorm:"column:locataireNom;size:150" json:"locataireNom"`
	LocataireCoordonnees    string  `gorm:"column:locataireCoordonnees;size:255" json:"locataireCoordonnees"`
	DebutBail               string  `gorm:"column:debutBail;size:20" json:"debutBail"`
	FinBail                 string  `gorm:"column:finBail;size:20" json:"finBail"`
	MontantLoyerBase        string  `gorm:"column:montantLoyerBase;size:50" json:"montantLoyerBase"`
	MontantCharges          string  `gorm:"column:montantCharges;size:50" json:"montantCharges"`
	DepotGarantie           string  `gorm:"column:depotGarantie;size:50" json:"depotGarantie"`
	Irl                     string  `gorm:"column:irl;size:50" json:"irl"`
	DateProchaineIndexation string  `gorm:"column:dateProchaineIndexation;size:20" json:"dateProchaineIndexation"`
	EtatPaiement            string  `gorm:"column:etatPaiement;size:50" json:"etatPaiement"`
	DatePaiement            string  `gorm:"column:datePaiement;size:20" json:"datePaiement"`
	NotesIncident           string  `gorm:"column:notesIncident;type:text" json:"notesIncident"`
}

func (f GestionLocativeFields) Validate() error {
	v := make(validation.Violations)
	validation.Required("numeroBien", f.NumeroBien, v)
	return v.Err()
}

// NewGestionLocative builds the row, storing a blank mandat reference as NULL.
func NewGestionLocative(f GestionLocativeFields) GestionLocative {
	if f.ReferenceMandat != nil && strings.TrimSpace(*f.ReferenceMandat) == "" {
		f.ReferenceMandat = nil
	}
	return GestionLocative{GestionLocativeFields: f}
}
