package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

type ContractService struct {
	contracts ContractRepository
	services  ServiceRepository
	ids       repository.IDGenerator
	log       zerolog.Logger
	now       func() time.Time
}

func NewContractService(contracts ContractRepository, services ServiceRepository, ids repository.IDGenerator, log zerolog.Logger) *ContractService {
	return &ContractService{
		contracts: contracts,
		services:  services,
		ids:       ids,
		log:       log,
		now:       time.Now,
	}
}

type CreateContractInput struct {
	Authority            model.Reference
	Region               model.Reference
	LotName              string
	ServiceUserName      string
	CycleStartDate       time.Time
	SharedHoursPerWeek   float64
	SharedRate           float64
	OneToOneHoursPerWeek float64
	OneToOneRate         float64
	TwoToOneHoursPerWeek float64
	TwoToOneRate         float64
	NightHoursPerWeek    *float64
	NightRate            *float64
}

func (in CreateContractInput) validate() error {
	if strings.TrimSpace(in.Authority.ID) == "" {
		return fmt.Errorf("%w: authority id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Region.ID) == "" {
		return fmt.Errorf("%w: region id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ServiceUserName) == "" {
		return fmt.Errorf("%w: service user name is required", ErrInvalidInput)
	}
	if in.CycleStartDate.IsZero() {
		return fmt.Errorf("%w: cycle start date is required", ErrInvalidInput)
	}
	values := []float64{
		in.SharedHoursPerWeek, in.SharedRate,
		in.OneToOneHoursPerWeek, in.OneToOneRate,
		in.TwoToOneHoursPerWeek, in.TwoToOneRate,
	}
	if in.NightHoursPerWeek != nil {
		values = append(values, *in.NightHoursPerWeek)
	}
	if in.NightRate != nil {
		values = append(values, *in.NightRate)
	}
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("%w: hours and rates must be non-negative", ErrInvalidInput)
		}
	}
	return nil
}

func (s *ContractService) ListContracts(ctx context.Context, authorityID string) ([]model.Contract, error) {
	return s.contracts.ListContracts(ctx, repository.ContractFilter{AuthorityID: authorityID})
}

func (s *ContractService) GetContract(ctx context.Context, id string) (*model.Contract, error) {
	contract, err := s.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return contract, nil
}

func (s *ContractService) CreateContract(ctx context.Context, input CreateContractInput) (*model.Contract, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	contract := model.Contract{
		ID:                   s.ids.NewID("contract"),
		Authority:            input.Authority,
		Region:               input.Region,
		LotName:              strings.TrimSpace(input.LotName),
		ServiceUserName:      strings.TrimSpace(input.ServiceUserName),
		CycleStartDate:       input.CycleStartDate,
		SharedHoursPerWeek:   input.SharedHoursPerWeek,
		SharedRate:           input.SharedRate,
		OneToOneHoursPerWeek: input.OneToOneHoursPerWeek,
		OneToOneRate:         input.OneToOneRate,
		TwoToOneHoursPerWeek: input.TwoToOneHoursPerWeek,
		TwoToOneRate:         input.TwoToOneRate,
		NightHoursPerWeek:    input.NightHoursPerWeek,
		NightRate:            input.NightRate,
		Status:               model.ContractStatusActive,
		CreatedAt:            s.now().UTC(),
	}
	if err := s.contracts.CreateContract(ctx, contract); err != nil {
		return nil, translate(err)
	}
	s.log.Info().Str("contract_id", contract.ID).Str("authority_id", contract.Authority.ID).Msg("contract created")
	return &contract, nil
}

// TerminateContract ends an active contract and frees its room. Termination is
// final.
func (s *ContractService) TerminateContract(ctx context.Context, id string, date time.Time) (*model.Contract, error) {
	contract, err := s.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if !contract.IsActive() {
		return nil, fmt.Errorf("%w: contract %s is already terminated", ErrInvalidState, contract.ID)
	}
	if date.IsZero() {
		date = s.now().UTC()
	}

	if err := s.vacate(ctx, contract.ID, date); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	contract.Status = model.ContractStatusTerminated
	contract.TerminatedDate = &date
	contract.Placement = nil
	if err := s.contracts.UpdateContract(ctx, *contract); err != nil {
		return nil, translate(err)
	}
	s.log.Info().Str("contract_id", contract.ID).Time("terminated_date", date).Msg("contract terminated")
	return contract, nil
}

// AssignRoom places an active, unplaced contract into a vacant room.
func (s *ContractService) AssignRoom(ctx context.Context, contractID, serviceID, roomNumber string) (*model.RoomAssignment, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if serviceID == "" || roomNumber == "" {
		return nil, fmt.Errorf("%w: service_id and room_number are required", ErrInvalidInput)
	}
	contract, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		return nil, translate(err)
	}
	if !contract.IsActive() {
		return nil, fmt.Errorf("%w: contract %s is terminated", ErrInvalidState, contract.ID)
	}
	if _, err := s.services.ActiveAssignmentForContract(ctx, contract.ID); err == nil {
		return nil, fmt.Errorf("%w: contract %s already has a room", ErrInvalidState, contract.ID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	service, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return nil, translate(err)
	}
	if !service.HasRoom(roomNumber) {
		return nil, fmt.Errorf("%w: %s has no room %q", ErrInvalidInput, service.Name, roomNumber)
	}

	assignment := model.RoomAssignment{
		ID:              s.ids.NewID("assignment"),
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		RoomNumber:      roomNumber,
		ContractID:      contract.ID,
		ServiceUserName: contract.ServiceUserName,
		AssignedDate:    s.now().UTC(),
		Status:          model.AssignmentStatusActive,
	}
	if err := s.services.CreateAssignment(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: %s %s is occupied", ErrInvalidState, service.Name, roomNumber)
		}
		return nil, err
	}

	contract.Placement = &model.Placement{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		RoomNumber:  roomNumber,
	}
	if err := s.contracts.UpdateContract(ctx, *contract); err != nil {
		return nil, translate(err)
	}
	s.log.Info().
		Str("contract_id", contract.ID).
		Str("service_id", service.ID).
		Str("room", roomNumber).
		Msg("room assigned")
	return &assignment, nil
}

func (s *ContractService) VacateRoom(ctx context.Context, contractID string) error {
	contract, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		return translate(err)
	}
	if err := s.vacate(ctx, contract.ID, s.now().UTC()); err != nil {
		return err
	}
	contract.Placement = nil
	return translate(s.contracts.UpdateContract(ctx, *contract))
}

func (s *ContractService) vacate(ctx context.Context, contractID string, date time.Time) error {
	assignment, err := s.services.ActiveAssignmentForContract(ctx, contractID)
	if err != nil {
		return translate(err)
	}
	assignment.Status = model.AssignmentStatusVacated
	assignment.VacatedDate = &date
	if err := s.services.UpdateAssignment(ctx, *assignment); err != nil {
		return translate(err)
	}
	s.log.Info().Str("contract_id", contractID).Str("room", assignment.RoomNumber).Msg("room vacated")
	return nil
}
