package models

import "github.com/diewo77/agence-immo/validation"

// Recherche is a buyer or tenant search request. It is not tied to a mandat.
type Recherche struct {
	ID uint `gorm:"primaryKey" json:"id"`
	RechercheFields
}

func (Recherche) TableName() string { return "recherche" }

func (m Recherche) GetID() uint { return m.ID }

type RechercheFields struct {
	NumeroDemande       string `gorm:"column:numeroDemande;size:50;not null" json:"numeroDemande"`
	DateDemande         string `gorm:"column:dateDemande;size:20" json:"dateDemande"`
	ClientNom           string `gorm:"column:clientNom;size:150" json:"clientNom"`
	Telephone           string `gorm:"column:telephone;size:50" json:"telephone"`
	TypeRecherche       string `gorm:"column:typeRecherche;size:50" json:"typeRecherche"`
	BudgetMin           string `gorm:"column:budgetMin;size:50" json:"budgetMin"`
	BudgetMax           string `gorm:"column:budgetMax;size:50" json:"budgetMax"`
	SecteurGeographique string `gorm:"column:secteurGeographique;size:255" json:"secteurGeographique"`
	DelaiSouhaite       string `gorm:"column:delaiSouhaite;size:50" json:"delaiSouhaite"`
	Motivations         string `gorm:"column:motivations;type:text" json:"motivations"`
	CriteresSpecifiques string `gorm:"column:criteresSpecifiques;type:text" json:"criteresSpecifiques"`
	BiensProposes       string `gorm:"column:biensProposes;type:text" json:"biensProposes"`
	StatutDemande       string `gorm:"column:statutDemande;size:50" json:"statutDemande"`
	AgentSuivi          string `gorm:"column:agentSuivi;size:100" json:"agentSuivi"`
}

func (f RechercheFields) Validate() error {
	v := make(validation.Violations)
	validation.Required("numeroDemande", f.NumeroDemande, v)
	return v.Err()
}

func NewRecherche(f RechercheFields) Recherche { return Recherche{RechercheFields: f} }
