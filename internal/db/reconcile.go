package db

import (
	"fmt"
	"strings"

	"github.com/diewo77/agence-immo/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// AddedColumn describes a column created by Reconcile.
type AddedColumn struct {
	Table  string
	Column string
	Type   string
}

// Reconcile adds every column declared by the models but missing from the
// live tables, then builds the declared indexes that are missing. Added
// columns are nullable without default; nothing is ever dropped, renamed or
// retyped. On a current schema it does nothing.
func Reconcile(gdb *gorm.DB) ([]AddedColumn, error) {
	var added []AddedColumn
	err := gdb.Transaction(func(tx *gorm.DB) error {
		for _, model := range models.All() {
			cols, err := reconcileTable(tx, model)
			if err != nil {
				return err
			}
			added = append(added, cols...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, c := range added {
		zap.S().Infow("column added", "table", c.Table, "column", c.Column, "type", c.Type)
	}
	return added, nil
}

func reconcileTable(tx *gorm.DB, model any) ([]AddedColumn, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("parse %T: %w", model, err)
	}
	table := stmt.Schema.Table
	if !tx.Migrator().HasTable(table) {
		return nil, fmt.Errorf("table %s does not exist", table)
	}

	live, err := tx.Migrator().ColumnTypes(model)
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	existing := make(map[string]bool, len(live))
	for _, c := range live {
		existing[strings.ToLower(c.Name())] = true
	}

	var added []AddedColumn
	justAdded := make(map[string]bool)
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" || field.DataType == "" || field.PrimaryKey || existing[strings.ToLower(field.DBName)] {
			continue
		}
		typ := tx.Dialector.DataTypeOf(field)
		if err := tx.Exec("ALTER TABLE ? ADD COLUMN ? "+typ,
			clause.Table{Name: table}, clause.Column{Name: field.DBName}).Error; err != nil {
			return nil, fmt.Errorf("add column %s.%s: %w", table, field.DBName, err)
		}
		existing[strings.ToLower(field.DBName)] = true
		justAdded[strings.ToLower(field.DBName)] = true
		added = append(added, AddedColumn{Table: table, Column: field.DBName, Type: typ})
	}
	if err := reconcileIndexes(tx, model, stmt.Schema, justAdded); err != nil {
		return nil, err
	}
	return added, nil
}

// reconcileIndexes creates the declared indexes missing from the table.
// A unique index is only built when all its columns were added by this run:
// they hold nothing but NULLs, so it cannot fail on existing rows.
func reconcileIndexes(tx *gorm.DB, model any, sch *schema.Schema, justAdded map[string]bool) error {
	for _, idx := range sch.ParseIndexes() {
		if idx.Class == "UNIQUE" && !coversOnly(idx, justAdded) {
			continue
		}
		if tx.Migrator().HasIndex(model, idx.Name) {
			continue
		}
		if err := tx.Migrator().CreateIndex(model, idx.Name); err != nil {
			return fmt.Errorf("create index %s on %s: %w", idx.Name, sch.Table, err)
		}
		zap.S().Infow("index created", "table", sch.Table, "index", idx.Name)
	}
	return nil
}

func coversOnly(idx *schema.Index, columns map[string]bool) bool {
	for _, f := range idx.Fields {
		if f.Field == nil || !columns[strings.ToLower(f.DBName)] {
			return false
		}
	}
	return len(idx.Fields) > 0
}
