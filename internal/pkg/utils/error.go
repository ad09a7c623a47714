package utils

import (
	"errors"

	"credverify/internal/pkg/models"
)

func GetErrorCode(err error) string {
	var customErr *models.CustomError
	if errors.As(err, &customErr) {
		return customErr.ErrorCode()
	}
	return "CREDVERIFY_INTERNAL_ERROR"
}
