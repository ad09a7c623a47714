package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"credverify/internal/pkg/consts"
)

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "CREDVERIFY_STATE_LOAN_NOT_FOUND", GetErrorCode(consts.ErrorLoanNotFound))

	// Wrapped sentinels still resolve to their code.
	wrapped := fmt.Errorf("loading loan: %w", consts.ErrorLoanNotFound)
	assert.Equal(t, "CREDVERIFY_STATE_LOAN_NOT_FOUND", GetErrorCode(wrapped))

	// Anything else falls back to the internal error code.
	assert.Equal(t, "CREDVERIFY_INTERNAL_ERROR", GetErrorCode(errors.New("boom")))
}
