package models

import "github.com/diewo77/agence-immo/validation"

// Transaction is the sale or lease concluding a mandat.
type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`
	TransactionFields
}

func (Transaction) TableName() string { return "transaction" }

func (m Transaction) GetID() uint { return m.ID }

type TransactionFields struct {
	NumeroTransaction  string `gorm:"column:numeroTransaction;size:50;not null" json:"numeroTransaction"`
	ReferenceMandat    string `gorm:"column:referenceMandat;size:50;not null;index:idx_transaction_reference_mandat" json:"referenceMandat"`
	TypeTransaction    string `gorm:"column:typeTransaction;size:50" json:"typeTransaction"`
	DateSignature      string `gorm:"column:dateSignature;size:20" json:"dateSignature"`
	ClientVendeur      string `gorm:"column:clientVendeur;size:150" json:"clientVendeur"`
	AcquereurLocataire string `gorm:"column:acquereurLocataire;size:150" json:"acquereurLocataire"`
	Notaire            string `gorm:"column:notaire;size:150" json:"notaire"`
	PrixFinal          string `gorm:"column:prixFinal;size:50" json:"prixFinal"`
	CommissionHT       string `gorm:"column:commissionHT;size:50" json:"commissionHT"`
	MontantTVA         string `gorm:"column:montantTVA;size:50" json:"montantTVA"`
	CommissionTTC      string `gorm:"column:commissionTTC;size:50" json:"commissionTTC"`
	ConditionsSusp     string `gorm:"column:conditionsSusp;size:255" json:"conditionsSusp"`
	StatutReglement    string `gorm:"column:statutReglement;size:50" json:"statutReglement"`
	NotesTransaction   string `gorm:"column:notesTransaction;type:text" json:"notesTransaction"`
}

func (f TransactionFields) Validate() error {
	v := make(validation.Violations)
	validation.Required("numeroTransaction", f.NumeroTransaction, v)
	validation.Required("referenceMandat", f.ReferenceMandat, v)
	return v.Err()
}

func NewTransaction(f TransactionFields) Transaction { return Transaction{TransactionFields: f} }
