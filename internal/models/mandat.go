package models

import "github.com/diewo77/agence-immo/validation"

// Mandat is a listing agreement signed with a property owner.
// Transactions, suivis and gestion records hang off its reference.
type Mandat struct {
	ID uint `gorm:"primaryKey" json:"id"`
	MandatFields
}

func (Mandat) TableName() string { return "mandat" }

func (m Mandat) GetID() uint { return m.ID }

// MandatFields are the client-supplied columns of a mandat.
type MandatFields struct {
	ReferenceMandat         string `gorm:"column:referenceMandat;size:50;uniqueIndex:idx_mandat_reference_mandat;not null" json:"referenceMandat"`
	TypeMandat              string `gorm:"column:typeMandat;size:50" json:"typeMandat"`
	TypeTransaction         string `gorm:"column:typeTransaction;size:50" json:"typeTransaction"`
	StatutMandat            string `gorm:"column:statutMandat;size:50" json:"statutMandat"`
	TypeBien                string `gorm:"column:typeBien;size:50" json:"typeBien"`
	AdresseBien             string `gorm:"column:adresseBien;size:255" json:"adresseBien"`
	SurfaceM2               string `gorm:"column:surfaceM2;size:20" json:"surfaceM2"`
	NbPieces                string `gorm:"column:nbPieces;size:20" json:"nbPieces"`
	DpeClassement           string `gorm:"column:dpeClassement;size:10" json:"dpeClassement"`
	PrixDemande             string `gorm:"column:prixDemande;size:50" json:"prixDemande"`
	HonorairePourcent       string `gorm:"column:honorairePourcent;size:20" json:"honorairePourcent"`
	TvaApplicable           string `gorm:"column:tvaApplicable;size:10" json:"tvaApplicable"`
	ProprietaireNom         string `gorm:"column:proprietaireNom;size:150" json:"proprietaireNom"`
	ProprietaireCoordonnees string `gorm:"column:proprietaireCoordonnees;size:255" json:"proprietaireCoordonnees"`
	ClientVendeurInfos      string `gorm:"column:clientVendeurInfos;size:255" json:"clientVendeurInfos"`
	ClientAcheteurInfos     string `gorm:"column:clientAcheteurInfos;size:255" json:"clientAcheteurInfos"`
	DateSignature           string `gorm:"column:dateSignature;size:20" json:"dateSignature"`
	DateDebut               string `gorm:"column:dateDebut;size:20" json:"dateDebut"`
	DateEcheance            string `gorm:"column:dateEcheance;size:20" json:"dateEcheance"`
	DateFinalisation        string `gorm:"column:dateFinalisation;size:20" json:"dateFinalisation"`
	AgentResponsable        string `gorm:"column:agentResponsable;size:100" json:"agentResponsable"`
	DescriptionBien         string `gorm:"column:descriptionBien;type:text" json:"descriptionBien"`
	NotesMandat             string `gorm:"column:notesMandat;type:text" json:"notesMandat"`
}

func (f MandatFields) Validate() error {
	v := make(validation.Violations)
	validation.Required("referenceMandat", f.ReferenceMandat, v)
	return v.Err()
}

func NewMandat(f MandatFields) Mandat { return Mandat{MandatFields: f} }
