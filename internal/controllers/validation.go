package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"student-records/internal/models"
)

// Form keys shared between the controller and the rendered forms
const (
	KeyRollNo      = "rollNo"
	KeyName        = "name"
	KeyFathersName = "fathersName"
	KeySubject     = "subject"
	KeyGrade       = "grade"
	KeyField       = "field"
	KeyValue       = "value"
)

// ValidationError carries a message meant for the user
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseStudent validates the add form: every field non-empty and an integer roll number.
func ParseStudent(values map[string]string) (models.StudentRecord, error) {
	keys := []string{KeyRollNo, KeyName, KeyFathersName, KeySubject, KeyGrade}
	trimmed := make(map[string]string, len(keys))
	for _, k := range keys {
		v := strings.TrimSpace(values[k])
		if v == "" {
			return models.StudentRecord{}, invalid("All fields are required.")
		}
		trimmed[k] = v
	}

	rollNo, err := ParseRollNo(trimmed[KeyRollNo])
	if err != nil {
		return models.StudentRecord{}, err
	}

	return models.StudentRecord{
		RollNo:      rollNo,
		Name:        trimmed[KeyName],
		FathersName: trimmed[KeyFathersName],
		Subject:     trimmed[KeySubject],
		Grade:       trimmed[KeyGrade],
	}, nil
}

// ParseRollNo requires a base-10 integer.
func ParseRollNo(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, invalid("Roll Number must be an integer.")
	}
	return n, nil
}

// ParseSearch validates the search form.
func ParseSearch(values map[string]string) (models.Field, string, error) {
	value := strings.TrimSpace(values[KeyValue])
	if value == "" {
		return 0, "", invalid("Search value cannot be empty.")
	}

	field, err := models.ParseField(values[KeyField])
	if err != nil || !field.Searchable() {
		return 0, "", invalid("Invalid search field.")
	}

	if field == models.FieldRollNo {
		if _, err := ParseRollNo(value); err != nil {
			return 0, "", err
		}
	}
	return field, value, nil
}

// ParseUpdate validates the update form.
func ParseUpdate(values map[string]string) (models.Field, string, error) {
	value := strings.TrimSpace(values[KeyValue])
	if value == "" {
		return 0, "", invalid("New value cannot be empty.")
	}

	field, err := models.ParseField(values[KeyField])
	if err != nil || !field.Updatable() {
		return 0, "", invalid("Invalid field selected for update.")
	}
	return field, value, nil
}
