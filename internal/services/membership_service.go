package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/roomly/roomly-api/internal/models"
	"github.com/roomly/roomly-api/internal/repository"
	"github.com/roomly/roomly-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNoEmailsProvided  = errors.New("at least one email is required")
	ErrNoRoom            = errors.New("you are not in a room")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAccessDenied  = errors.New("you can only view members of your own room")
	ErrNotRoomCreator    = errors.New("only the room creator can perform this action")
	ErrAlreadyInRoom     = errors.New("you already belong to a room")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrInviteCodeFailed  = errors.New("failed to generate invite code")
)

// MembershipService orchestrates room membership: invitations, membership
// queries, leaving, and room deletion. It is the only component that mutates
// a user's room back-reference, and it keeps that reference and the room's
// member set in agreement after every completed operation.
type MembershipService struct {
	roomRepo repository.RoomRepository
	userRepo repository.UserRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(roomRepo repository.RoomRepository, userRepo repository.UserRepository) *MembershipService {
	return &MembershipService{
		roomRepo: roomRepo,
		userRepo: userRepo,
	}
}

// InviteOutcome reports the per-email results of an invite batch.
type InviteOutcome struct {
	Room        *models.Room
	RoomCreated bool
	Results     []string
	Errors      []string
}

// Invite adds the given emails to the principal's room, creating the room
// first if the principal does not have one. Each email is processed
// independently: a failure is recorded as that email's error outcome and the
// loop moves on. The staged member rows are inserted in one batch at the end.
func (s *MembershipService) Invite(principal *models.User, emails []string) (*InviteOutcome, error) {
	if len(emails) == 0 {
		return nil, ErrNoEmailsProvided
	}

	room, created, err := s.ensureRoom(principal)
	if err != nil {
		return nil, err
	}

	outcome := &InviteOutcome{
		Room:        room,
		RoomCreated: created,
		Results:     []string{},
	}

	var pending []models.RoomMember
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			outcome.Errors = append(outcome.Errors, "empty email skipped")
			continue
		}

		user, err := s.userRepo.FindByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s is not registered", email))
			} else {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to look up %s", email))
			}
			continue
		}

		if user.RoomID != nil {
			if *user.RoomID == room.ID {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s is already in this room", email))
			} else {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s already belongs to another household", email))
			}
			continue
		}

		// A member row without the back-reference means the stores drifted;
		// treat it as already-a-member rather than inserting a duplicate.
		if _, err := s.roomRepo.FindMember(room.ID, user.ID); err == nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s is already in this room", email))
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to verify membership of %s", email))
			continue
		}

		user.RoomID = &room.ID
		if err := s.userRepo.Update(user); err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to add %s", email))
			continue
		}

		pending = append(pending, models.RoomMember{
			RoomID:   room.ID,
			UserID:   user.ID,
			JoinedAt: time.Now(),
		})
		outcome.Results = append(outcome.Results, fmt.Sprintf("%s invited successfully", email))
	}

	if err := s.roomRepo.AddMembers(pending); err != nil {
		return nil, fmt.Errorf("failed to save room members: %w", err)
	}

	return outcome, nil
}

// ensureRoom returns the principal's room, creating one on first invite.
func (s *MembershipService) ensureRoom(principal *models.User) (*models.Room, bool, error) {
	if principal.RoomID != nil {
		room, err := s.roomRepo.FindByID(*principal.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrRoomNotFound
			}
			return nil, false, fmt.Errorf("failed to find room: %w", err)
		}
		return room, false, nil
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, false, ErrInviteCodeFailed
	}

	room := &models.Room{
		CreatedBy:  principal.ID,
		InviteCode: inviteCode,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, false, fmt.Errorf("failed to create room: %w", err)
	}

	member := models.RoomMember{
		RoomID:   room.ID,
		UserID:   principal.ID,
		JoinedAt: time.Now(),
	}
	if err := s.roomRepo.AddMembers([]models.RoomMember{member}); err != nil {
		return nil, false, fmt.Errorf("failed to add creator to room: %w", err)
	}

	principal.RoomID = &room.ID
	if err := s.userRepo.Update(principal); err != nil {
		return nil, false, fmt.Errorf("failed to update user room: %w", err)
	}

	return room, true, nil
}

// GetMyRoom returns the principal's room with members and creator loaded.
// A nil room with a nil error means the principal has no room.
func (s *MembershipService) GetMyRoom(principal *models.User) (*models.Room, error) {
	if principal.RoomID == nil {
		return nil, nil
	}

	room, err := s.roomRepo.FindByIDWithMembers(*principal.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The room is gone but the user still points at it. Surface it as
			// not-found, but log it: this should never survive a completed
			// membership operation.
			log.Printf("integrity: user %d references missing room %d", principal.ID, *principal.RoomID)
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return room, nil
}

// ListMembers returns the members of the principal's room. A principal with
// no room gets an empty list, not an error.
func (s *MembershipService) ListMembers(principal *models.User) ([]models.User, error) {
	if principal.RoomID == nil {
		return []models.User{}, nil
	}

	users, err := s.userRepo.ListByRoomID(*principal.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return users, nil
}

// ListRoomMembers returns the members of the requested room, but only when it
// is the principal's own room.
func (s *MembershipService) ListRoomMembers(principal *models.User, roomID uint64) ([]models.User, error) {
	if principal.RoomID == nil || *principal.RoomID != roomID {
		return nil, ErrRoomAccessDenied
	}

	users, err := s.userRepo.ListByRoomID(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return users, nil
}

// Leave removes the principal from their room. The last member leaving
// deletes the room: a room never persists with an empty member set. The
// principal's back-reference is cleared regardless of the branch taken.
func (s *MembershipService) Leave(principal *models.User) error {
	if principal.RoomID == nil {
		return ErrNoRoom
	}

	room, err := s.roomRepo.FindByID(*principal.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to find room: %w", err)
	}

	if err := s.roomRepo.RemoveMember(room.ID, principal.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	remaining, err := s.roomRepo.CountMembers(room.ID)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if remaining == 0 {
		if err := s.roomRepo.Delete(room.ID); err != nil {
			return fmt.Errorf("failed to delete empty room: %w", err)
		}
	}

	principal.RoomID = nil
	if err := s.userRepo.Update(principal); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// DeleteRoom deletes the principal's room. Only the creator may delete.
// Every user pointing at the room, found by the back-reference rather than
// the member rows, has that reference cleared in one batch; the count of
// affected users is returned.
func (s *MembershipService) DeleteRoom(principal *models.User) (int64, error) {
	if principal.RoomID == nil {
		return 0, ErrNoRoom
	}

	room, err := s.roomRepo.FindByID(*principal.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRoomNotFound
		}
		return 0, fmt.Errorf("failed to find room: %w", err)
	}

	if room.CreatedBy != principal.ID {
		return 0, ErrNotRoomCreator
	}

	affected, err := s.userRepo.ClearRoomByRoomID(room.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear member references: %w", err)
	}

	if err := s.roomRepo.Delete(room.ID); err != nil {
		return 0, fmt.Errorf("failed to delete room: %w", err)
	}

	principal.RoomID = nil
	return affected, nil
}

// JoinByInviteCode adds the principal to the room owning the code.
func (s *MembershipService) JoinByInviteCode(principal *models.User, code string) (*models.Room, error) {
	if principal.RoomID != nil {
		return nil, ErrAlreadyInRoom
	}

	room, err := s.roomRepo.FindByInviteCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find room by invite code: %w", err)
	}

	member := models.RoomMember{
		RoomID:   room.ID,
		UserID:   principal.ID,
		JoinedAt: time.Now(),
	}
	if err := s.roomRepo.AddMembers([]models.RoomMember{member}); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	principal.RoomID = &room.ID
	if err := s.userRepo.Update(principal); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return room, nil
}

// RegenerateInviteCode replaces the room's invite code. Creator only.
func (s *MembershipService) RegenerateInviteCode(principal *models.User) (*models.Room, error) {
	if principal.RoomID == nil {
		return nil, ErrNoRoom
	}

	room, err := s.roomRepo.FindByID(*principal.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	if room.CreatedBy != principal.ID {
		return nil, ErrNotRoomCreator
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeFailed
	}

	room.InviteCode = code
	if err := s.roomRepo.Update(room); err != nil {
		return nil, fmt.Errorf("failed to update invite code: %w", err)
	}

	return room, nil
}
