package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepError_AbortedMatchesRenameAborted(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("rename: %w", &StepError{Step: StepProducts, Aborted: true, Err: cause})

	require.ErrorIs(t, err, ErrRenameAborted)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "products step failed")
	require.Contains(t, err.Error(), "connection reset")
}

func TestStepError_CategoryStepIsNotAborted(t *testing.T) {
	err := &StepError{Step: StepCategories, Err: errors.New("duplicate key")}

	require.NotErrorIs(t, err, ErrRenameAborted)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, "categories step failed: duplicate key", err.Error())
}

func TestBadRequest(t *testing.T) {
	err := BadRequest("at most %d images are allowed", 5)
	require.ErrorIs(t, err, ErrBadRequest)
	require.Equal(t, "bad request: at most 5 images are allowed", err.Error())
}
