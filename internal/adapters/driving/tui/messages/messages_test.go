package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestRole_String(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "user"},
		{RoleBot, "bot"},
		{RoleError, "error"},
		{Role(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.String())
	}
}

func TestReplyReceived_CarriesResponse(t *testing.T) {
	msg := ReplyReceived{Message: "hi", Response: domain.Success("Hello!")}

	assert.Equal(t, "hi", msg.Message)
	assert.True(t, msg.Response.OK())
}
