package commands_test

import (
	"testing"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteStageCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCompleteStageCommand("pardos", "O-1001", "DELIVERY")
	require.NoError(t, err)
	assert.Equal(t, order.StageDelivery, cmd.Stage())
	assert.Equal(t, "pardos/O-1001", cmd.Key().String())
}

func TestNewCompleteStageCommand_CollectsAllFieldErrors(t *testing.T) {
	_, err := commands.NewCompleteStageCommand("", "O-1001", "BOXING")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCompleteStageCommand_ValidateRejectsZeroValue(t *testing.T) {
	cmd := commands.CompleteStageCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCompleteStageCommandIsNotConstructed)
}
