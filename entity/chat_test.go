package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequestUserRef(t *testing.T) {
	var req ChatRequest
	require.NoError(t, json.Unmarshal([]byte(`{"message":" hi ","user_id":"12"}`), &req))
	require.NoError(t, req.Bind(nil))
	assert.Equal(t, UserRef(12), req.UserID)
	assert.Equal(t, "hi", req.Message)

	require.NoError(t, json.Unmarshal([]byte(`{"message":"hi","user_id":7}`), &req))
	assert.Equal(t, UserRef(7), req.UserID)

	assert.Error(t, json.Unmarshal([]byte(`{"message":"hi","user_id":"abc"}`), &req))
}

func TestChatRequestRequiresMessage(t *testing.T) {
	req := ChatRequest{Message: "   "}
	assert.Error(t, req.Bind(nil))
}
