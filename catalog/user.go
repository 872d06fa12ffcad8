package catalog

import (
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// BuildUserRequest constructs a User Request (BE), used for the log-on-as /
// status probes that sit above the session-level Logon handshake.
func BuildUserRequest(userRequestID, userRequestType, username, password string) *wire.Message {
	m := wire.New().
		Set(dictionary.TagUserRequestID, userRequestID).
		Set(dictionary.TagUserRequestType, userRequestType).
		SetIfNotEmpty(dictionary.TagUsername, username)
	m.SetIfNotEmpty(dictionary.TagPassword, password)
	return m
}

// UserResponse is the parsed view of an inbound User Response (BF).
type UserResponse struct {
	UserRequestID string
	Username      string
	UserStatus    string
	UserStatusText string
}

func ParseUserResponse(m *wire.Message) UserResponse {
	var out UserResponse
	out.UserRequestID, _ = m.Get(dictionary.TagUserRequestID)
	out.Username, _ = m.Get(dictionary.TagUsername)
	out.UserStatus, _ = m.Get(dictionary.TagUserStatus)
	out.UserStatusText, _ = m.Get(dictionary.TagUserStatusText)
	return out
}
