package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when a field name is not part of the student schema
var ErrUnknownField = errors.New("unknown student field")

// StudentRecord represents a single row of the student table
type StudentRecord struct {
	RollNo      int64
	Name        string
	FathersName string
	Subject     string
	Grade       string
}

// Values returns the record as display strings in table column order
func (s StudentRecord) Values() []string {
	return []string{
		strconv.FormatInt(s.RollNo, 10),
		s.Name,
		s.FathersName,
		s.Subject,
		s.Grade,
	}
}

// Get returns the value held by the given field
func (s StudentRecord) Get(field Field) string {
	switch field {
	case FieldRollNo:
		return strconv.FormatInt(s.RollNo, 10)
	case FieldName:
		return s.Name
	case FieldFathersName:
		return s.FathersName
	case FieldSubject:
		return s.Subject
	case FieldGrade:
		return s.Grade
	}
	return ""
}

// GradeCount is one bucket of the grade distribution
type GradeCount struct {
	Grade string
	Count int
}

// Field identifies a column of the student table.
// The set is closed: column identifiers used in SQL come only from here.
type Field int

const (
	FieldRollNo Field = iota
	FieldName
	FieldFathersName
	FieldSubject
	FieldGrade
)

type fieldInfo struct {
	name       string
	column     string
	label      string
	updatable  bool
	searchable bool
}

var fieldTable = [...]fieldInfo{
	FieldRollNo:      {name: "rollNo", column: "rollNo", label: "Roll No", searchable: true},
	FieldName:        {name: "name", column: "name", label: "Name", updatable: true, searchable: true},
	FieldFathersName: {name: "fathersName", column: "fname", label: "Father's Name", updatable: true},
	FieldSubject:     {name: "subject", column: "sub", label: "Subject", updatable: true, searchable: true},
	FieldGrade:       {name: "grade", column: "grade", label: "Grade", updatable: true},
}

// AllFields lists every field in table column order
var AllFields = []Field{FieldRollNo, FieldName, FieldFathersName, FieldSubject, FieldGrade}

// UpdatableFields lists the fields that may be changed after creation
var UpdatableFields = []Field{FieldName, FieldFathersName, FieldSubject, FieldGrade}

// SearchableFields lists the fields a search may filter on
var SearchableFields = []Field{FieldRollNo, FieldName, FieldSubject}

// ParseField resolves a logical field name or its legacy column name
func ParseField(s string) (Field, error) {
	key := strings.TrimSpace(s)
	for i, info := range fieldTable {
		if key == info.name || key == info.column {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Valid reports whether f is one of the declared fields
func (f Field) Valid() bool {
	return f >= 0 && int(f) < len(fieldTable)
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldTable[f].name
}

// Column returns the SQL column backing the field
func (f Field) Column() string {
	if !f.Valid() {
		return ""
	}
	return fieldTable[f].column
}

// Label returns the human readable heading for the field
func (f Field) Label() string {
	if !f.Valid() {
		return ""
	}
	return fieldTable[f].label
}

// Updatable reports whether the field may be changed by an update
func (f Field) Updatable() bool {
	return f.Valid() && fieldTable[f].updatable
}

// Searchable reports whether the field may be used as a search filter
func (f Field) Searchable() bool {
	return f.Valid() && fieldTable[f].searchable
}

// FieldNames returns the logical names of the given fields
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names
}
