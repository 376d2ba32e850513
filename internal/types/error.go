package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type (
	Error struct {
		Fields  *map[string]string `json:"fields,omitempty" validate:"optional"`
		Message string             `json:"message"          validate:"required"`
	}
)

func StringError(err string) Error {
	return Error{Message: err}
}

func ValidationError(err error) Error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if ok {
		errorMap := make(map[string]string)
		for _, fieldError := range validationErrors {
			errorMap[fieldError.Field()] = fmt.Sprintf(
				"Failed to validate while checking condition: %s",
				fieldError.Tag(),
			)
		}

		return Error{Message: "validation error", Fields: &errorMap}
	}

	return Error{Message: "validation error"}
}

// MissingAnswersError reports the required questions a submission is still
// missing, one field entry per question id so the caller can highlight each.
func MissingAnswersError(questionIDs []string) Error {
	fields := make(map[string]string, len(questionIDs))
	for _, id := range questionIDs {
		fields[id] = "required question has no answer"
	}

	return Error{Message: "missing required answers", Fields: &fields}
}

// AnswerShapeError reports answers whose payload shape does not match the
// declared type of the question they target.
func AnswerShapeError(mismatches map[string]string) Error {
	return Error{Message: "answer shape does not match question type", Fields: &mismatches}
}
