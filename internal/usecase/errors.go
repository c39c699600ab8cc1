package usecase

import (
	"errors"

	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"
)

// appError passes AppErrors through and classifies everything else as a
// persistence failure.
func appError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err)
}

func validationError(err error) error {
	return apperror.Validation(validation.Message(err), err)
}
