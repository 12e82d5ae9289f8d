package entity

import "errors"

var (
	ErrIncorrectRequestBody = errors.New("incorrect request body")
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrAlreadyExists        = errors.New("already exists")
	ErrUnknownKind          = errors.New("unknown record kind")
	ErrPhotoStorageDisabled = errors.New("photo storage is not configured")
)

const (
	ErrMsgInternal   = "Erreur interne du serveur"
	ErrMsgBadRequest = "Requête invalide"
	ErrMsgValidation = "Erreur de validation"
	ErrMsgNotFound   = "Enregistrement introuvable"
	ErrMsgConflict   = "Opération impossible dans l'état actuel"
)

// FieldError describes one rejected field of a record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a record fails server side checks.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	msg := ErrValidation.Error() + ":"
	for i, f := range e.Fields {
		if i > 0 {
			msg += ";"
		}

		msg += " " + f.Field + " " + f.Message
	}

	return msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a field error and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// Err returns nil when no field was rejected.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}

	return e
}
