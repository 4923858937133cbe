package cancelpayment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelpayment"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_CommandHandler_Handle_AcknowledgesTheCancellation(t *testing.T) {
	// arrange
	handler := cancelpayment.NewCommandHandler()

	// act
	result, handlerResult, err := handler.Handle(t.Context(), cancelpayment.BuildCommand())

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.PaymentCancelled, result.Outcome)
	assert.Equal(t, "Payment was cancelled. Please complete the payment within 24 hours.", result.Message)
	assert.True(t, handlerResult.Idempotent)
}

func Test_CommandHandler_Handle_Error_WhenContextIsCanceled(t *testing.T) {
	// arrange
	handler := cancelpayment.NewCommandHandler()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	// act
	_, _, err := handler.Handle(ctx, cancelpayment.BuildCommand())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
