package models

import "github.com/diewo77/agence-immo/validation"

// Suivi logs a follow-up action taken on a mandat.
type Suivi struct {
	ID uint `gorm:"primaryKey" json:"id"`
	SuiviFields
}

func (Suivi) TableName() string { return "suivi" }

func (m Suivi) GetID() uint { return m.ID }

type SuiviFields struct {
	ReferenceMandat     string `gorm:"column:referenceMandat;size:50;not null;index:idx_suivi_reference_mandat" json:"referenceMandat"`
	DateAction          string `gorm:"column:dateAction;size:20" json:"dateAction"`
	TypeAction          string `gorm:"column:typeAction;size:100" json:"typeAction"`
	IntensiteAction     string `gorm:"column:intensiteAction;size:50" json:"intensiteAction"`
	ContactClient       string `gorm:"column:contactClient;size:150" json:"contactClient"`
	Details             string `gorm:"column:details;type:text" json:"details"`
	Agent               string `gorm:"column:agent;size:100" json:"agent"`
	ProchaineEtape      string `gorm:"column:prochaineEtape;size:255" json:"prochaineEtape"`
	DateProchaineAction string `gorm:"column:dateProchaineAction;size:20" json:"dateProchaineAction"`
}

func (f SuiviFields) Validate() error {
	v := make(validation.Violations)
	validation.Required("referenceMandat", f.ReferenceMandat, v)
	return v.Err()
}

func NewSuivi(f SuiviFields) Suivi { return Suivi{SuiviFields: f} }
