package dto

import (
	"time"

	"github.com/roomly/roomly-api/internal/models"
)

// RoomDTO represents a room in API responses
type RoomDTO struct {
	ID         uint64    `json:"id"`
	CreatedBy  uint64    `json:"created_by"`
	InviteCode string    `json:"invite_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoomMemberDTO represents a member in a room
type RoomMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// RoomDetailDTO represents a room with its member roster and creator expanded
type RoomDetailDTO struct {
	RoomDTO
	Creator UserDTO         `json:"creator"`
	Members []RoomMemberDTO `json:"members"`
}

// ToRoomDTO converts a Room model to RoomDTO
func ToRoomDTO(room models.Room, includeInviteCode bool) RoomDTO {
	dto := RoomDTO{
		ID:        room.ID,
		CreatedBy: room.CreatedBy,
		CreatedAt: room.CreatedAt,
	}
	if includeInviteCode {
		dto.InviteCode = room.InviteCode
	}
	return dto
}

// ToRoomMemberDTO converts a member to DTO
func ToRoomMemberDTO(member models.RoomMember) RoomMemberDTO {
	return RoomMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToRoomDetailDTO converts a room with loaded members to a detailed DTO
func ToRoomDetailDTO(room models.Room) RoomDetailDTO {
	memberDTOs := make([]RoomMemberDTO, len(room.Members))
	for i, member := range room.Members {
		memberDTOs[i] = ToRoomMemberDTO(member)
	}

	return RoomDetailDTO{
		RoomDTO: ToRoomDTO(room, true),
		Creator: ToUserDTO(room.Creator),
		Members: memberDTOs,
	}
}
