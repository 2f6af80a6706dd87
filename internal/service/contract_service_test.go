package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/model"
)

func TestCreateContractValidation(t *testing.T) {
	svc := newContractService(seededStore(t))

	_, err := svc.CreateContract(context.Background(), CreateContractInput{
		Authority:       model.Reference{ID: "auth-1"},
		Region:          model.Reference{ID: "region-1"},
		ServiceUserName: "Someone",
		CycleStartDate:  fixedNow,
		SharedRate:      -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateContract(context.Background(), CreateContractInput{
		Authority:      model.Reference{ID: "auth-1"},
		Region:         model.Reference{ID: "region-1"},
		CycleStartDate: fixedNow,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTerminateContractVacatesRoom(t *testing.T) {
	store := seededStore(t)
	svc := newContractService(store)
	ctx := context.Background()
	ended := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	contract, err := svc.TerminateContract(ctx, "contract-1", ended)
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusTerminated, contract.Status)
	require.NotNil(t, contract.TerminatedDate)
	assert.Equal(t, ended, *contract.TerminatedDate)
	assert.Nil(t, contract.Placement)

	util, err := newPlacementService(store).ComputeUtilization(ctx, "service-1")
	require.NoError(t, err)
	assert.Equal(t, 2, util.OccupiedRooms)

	_, err = svc.TerminateContract(ctx, "contract-1", ended)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.TerminateContract(ctx, "missing", ended)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTerminateContractDefaultsToNow(t *testing.T) {
	svc := newContractService(seededStore(t))

	contract, err := svc.TerminateContract(context.Background(), "contract-2", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, *contract.TerminatedDate)
}

func TestAssignAndVacateRoom(t *testing.T) {
	store := seededStore(t)
	svc := newContractService(store)
	ctx := context.Background()

	created, err := svc.CreateContract(ctx, CreateContractInput{
		Authority:          model.Reference{ID: "auth-2", Name: "County"},
		Region:             model.Reference{ID: "region-1", Name: "North"},
		ServiceUserName:    "Alex Green",
		CycleStartDate:     fixedNow,
		SharedHoursPerWeek: 30,
		SharedRate:         20,
	})
	require.NoError(t, err)
	assert.Equal(t, "contract-101", created.ID)

	_, err = svc.AssignRoom(ctx, created.ID, "service-3", "Room 2")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AssignRoom(ctx, created.ID, "service-3", "Unit A")
	assert.ErrorIs(t, err, ErrInvalidState)

	assignment, err := svc.AssignRoom(ctx, created.ID, "service-3", "Unit B")
	require.NoError(t, err)
	assert.Equal(t, "Unit B", assignment.RoomNumber)

	contract, err := svc.GetContract(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, contract.Placement)
	assert.Equal(t, "service-3", contract.Placement.ServiceID)

	_, err = svc.AssignRoom(ctx, created.ID, "service-3", "Unit C")
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, svc.VacateRoom(ctx, created.ID))
	contract, err = svc.GetContract(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, contract.Placement)

	assert.ErrorIs(t, svc.VacateRoom(ctx, created.ID), ErrNotFound)
}

func TestAssignRoomToTerminatedContract(t *testing.T) {
	svc := newContractService(seededStore(t))

	_, err := svc.AssignRoom(context.Background(), "contract-5", "service-4", "Room 1")
	assert.ErrorIs(t, err, ErrInvalidState)
}
