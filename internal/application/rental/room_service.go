package rental

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RoomService manages rooms
type RoomService struct {
	roomRepo rental.RoomRepository
	logger   *zap.Logger
}

// NewRoomService creates a new room service
func NewRoomService(roomRepo rental.RoomRepository, logger *zap.Logger) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// ListRooms returns every room ordered by room number
func (s *RoomService) ListRooms(ctx context.Context) ([]*rental.Room, error) {
	return s.roomRepo.FindAll(ctx)
}

// GetRoom returns a room by ID
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*rental.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, roomNotFound(err)
	}
	return room, nil
}

// CreateRoom creates a room with a unique room number
func (s *RoomService) CreateRoom(ctx context.Context, input RoomInput) (*rental.Room, error) {
	room, err := rental.NewRoom(input.RoomNo, input.BaseRent, input.Baseline)
	if err != nil {
		return nil, err
	}
	if err := s.ensureRoomNoFree(ctx, room.RoomNo, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, duplicateRoomNo(err)
	}

	s.logger.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("room_no", room.RoomNo))
	return room, nil
}

// UpdateRoom replaces the attributes of an existing room
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, input RoomInput) (*rental.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, roomNotFound(err)
	}
	if err := room.Update(input.RoomNo, input.BaseRent, input.Baseline); err != nil {
		return nil, err
	}
	if err := s.ensureRoomNoFree(ctx, room.RoomNo, room.ID); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, duplicateRoomNo(roomNotFound(err))
	}

	s.logger.Info("Room updated", zap.String("room_id", room.ID.String()))
	return room, nil
}

// DeleteRoom removes a room with its readings and bills
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return roomNotFound(err)
	}
	s.logger.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}

func (s *RoomService) ensureRoomNoFree(ctx context.Context, roomNo string, self uuid.UUID) error {
	existing, err := s.roomRepo.FindByRoomNo(ctx, roomNo)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return shared.NewDomainError(shared.CodeAlreadyExists, "Room number already exists")
	default:
		return nil
	}
}

func roomNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError("Room not found")
	}
	return err
}

func duplicateRoomNo(err error) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Room number already exists")
	}
	return err
}
