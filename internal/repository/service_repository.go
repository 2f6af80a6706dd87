package repository

import (
	"context"

	"github.com/nurpe/careops-billing/internal/model"
)

func (s *Store) ListServices(ctx context.Context) ([]model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Service, len(s.services))
	copy(result, s.services)
	return result, nil
}

func (s *Store) GetService(ctx context.Context, id string) (*model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos := indexOf(s.services, func(item model.Service) bool { return item.ID == id })
	if pos < 0 {
		return nil, ErrNotFound
	}
	service := s.services[pos]
	return &service, nil
}

func (s *Store) CreateService(ctx context.Context, service model.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.services, func(item model.Service) bool { return item.ID == service.ID }) >= 0 {
		return ErrConflict
	}
	s.services = append(s.services, service)
	return nil
}

func (s *Store) UpdateService(ctx context.Context, service model.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := indexOf(s.services, func(item model.Service) bool { return item.ID == service.ID })
	if pos < 0 {
		return ErrNotFound
	}
	s.services[pos] = service
	return nil
}

// ListActiveAssignments returns the active room assignments of a service.
func (s *Store) ListActiveAssignments(ctx context.Context, serviceID string) ([]model.RoomAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.RoomAssignment
	for _, item := range s.assignments {
		if item.ServiceID == serviceID && item.Status == model.AssignmentStatusActive {
			result = append(result, cloneAssignment(item))
		}
	}
	return result, nil
}

// ActiveAssignmentForContract returns the contract's active assignment, or
// ErrNotFound when the contract is not housed anywhere.
func (s *Store) ActiveAssignmentForContract(ctx context.Context, contractID string) (*model.RoomAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos := indexOf(s.assignments, func(item model.RoomAssignment) bool {
		return item.ContractID == contractID && item.Status == model.AssignmentStatusActive
	})
	if pos < 0 {
		return nil, ErrNotFound
	}
	assignment := cloneAssignment(s.assignments[pos])
	return &assignment, nil
}

// CreateAssignment inserts an active assignment. It fails with ErrConflict when
// the room or the contract already has an active assignment.
func (s *Store) CreateAssignment(ctx context.Context, assignment model.RoomAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clash := indexOf(s.assignments, func(item model.RoomAssignment) bool {
		if item.Status != model.AssignmentStatusActive {
			return false
		}
		sameRoom := item.ServiceID == assignment.ServiceID && item.RoomNumber == assignment.RoomNumber
		return sameRoom || item.ContractID == assignment.ContractID
	})
	if clash >= 0 {
		return ErrConflict
	}
	s.assignments = append(s.assignments, cloneAssignment(assignment))
	return nil
}

func (s *Store) UpdateAssignment(ctx context.Context, assignment model.RoomAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := indexOf(s.assignments, func(item model.RoomAssignment) bool { return item.ID == assignment.ID })
	if pos < 0 {
		return ErrNotFound
	}
	s.assignments[pos] = cloneAssignment(assignment)
	return nil
}

func cloneAssignment(a model.RoomAssignment) model.RoomAssignment {
	if a.VacatedDate != nil {
		vacated := *a.VacatedDate
		a.VacatedDate = &vacated
	}
	return a
}
