package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

const (
	MinServiceRooms = 1
	MaxServiceRooms = 50
)

// ServiceDirectory manages the care locations contracts are placed in.
type ServiceDirectory struct {
	services ServiceRepository
	ids      repository.IDGenerator
	log      zerolog.Logger
	now      func() time.Time
}

func NewServiceDirectory(services ServiceRepository, ids repository.IDGenerator, log zerolog.Logger) *ServiceDirectory {
	return &ServiceDirectory{services: services, ids: ids, log: log, now: time.Now}
}

type ServiceInput struct {
	Name       string
	Address    string
	Region     model.Reference
	TotalRooms int
	RoomNaming model.RoomNaming
}

func (in *ServiceInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if in.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Region.ID) == "" {
		return fmt.Errorf("%w: region is required", ErrInvalidInput)
	}
	if in.TotalRooms < MinServiceRooms || in.TotalRooms > MaxServiceRooms {
		return fmt.Errorf("%w: total rooms must be between %d and %d", ErrInvalidInput, MinServiceRooms, MaxServiceRooms)
	}
	switch in.RoomNaming {
	case "":
		in.RoomNaming = model.RoomNamingNumeric
	case model.RoomNamingNumeric, model.RoomNamingAlphabetic:
	default:
		return fmt.Errorf("%w: unknown room naming %q", ErrInvalidInput, in.RoomNaming)
	}
	return nil
}

func (d *ServiceDirectory) ListServices(ctx context.Context) ([]model.Service, error) {
	return d.services.ListServices(ctx)
}

func (d *ServiceDirectory) GetService(ctx context.Context, id string) (*model.Service, error) {
	service, err := d.services.GetService(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return service, nil
}

func (d *ServiceDirectory) CreateService(ctx context.Context, input ServiceInput) (*model.Service, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	service := model.Service{
		ID:         d.ids.NewID("service"),
		Name:       input.Name,
		Address:    input.Address,
		Region:     input.Region,
		TotalRooms: input.TotalRooms,
		RoomNaming: input.RoomNaming,
		CreatedAt:  d.now().UTC(),
	}
	if err := d.services.CreateService(ctx, service); err != nil {
		return nil, translate(err)
	}
	d.log.Info().Str("service_id", service.ID).Int("rooms", service.TotalRooms).Msg("service created")
	return &service, nil
}

// UpdateService rewrites a service's details. Shrinking below the rooms that
// are currently occupied is refused.
func (d *ServiceDirectory) UpdateService(ctx context.Context, id string, input ServiceInput) (*model.Service, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	service, err := d.services.GetService(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	updated := *service
	updated.Name = input.Name
	updated.Address = input.Address
	updated.Region = input.Region
	updated.TotalRooms = input.TotalRooms
	updated.RoomNaming = input.RoomNaming

	assignments, err := d.services.ListActiveAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if !updated.HasRoom(a.RoomNumber) {
			return nil, fmt.Errorf("%w: occupied room %q would no longer exist", ErrInvalidState, a.RoomNumber)
		}
	}

	if err := d.services.UpdateService(ctx, updated); err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}
