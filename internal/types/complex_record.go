// Package types provides type definitions for the tables and artifacts exchanged between af_prep commands.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Column names shared by the complex and protein tables.
const (
	ColumnUniqueID          = "unique_id"
	ColumnTFGene            = "tf_gene"
	ColumnSequence          = "sequence"
	ColumnAminoAcidSequence = "amino_acid_sequence"
)

// ComplexRecordColumns lists the columns a complex data table must carry.
var ComplexRecordColumns = []string{ColumnUniqueID, ColumnTFGene, ColumnSequence}

// ComplexRecord is one protein-DNA structure prediction job to be generated.
type ComplexRecord struct {
	Row      int    `csv:"-" validate:"-"`
	UniqueID string `csv:"unique_id" validate:"required"`
	TFGene   string `csv:"tf_gene" validate:"required"`
	Sequence string `csv:"sequence" validate:"required"`
}

// recordValidator reports field errors under their CSV column names.
var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("csv"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every required column is present and non-empty.
func (r *ComplexRecord) Validate() error {
	return recordValidator.Struct(r)
}

// MissingFields returns the CSV column names that failed validation, in declaration order.
func (r *ComplexRecord) MissingFields() []string {
	err := r.Validate()
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing
}

// ProteinSequenceEntry is one row of the protein sequence table.
type ProteinSequenceEntry struct {
	TFGene            string `csv:"tf_gene"`
	AminoAcidSequence string `csv:"amino_acid_sequence"`
}
