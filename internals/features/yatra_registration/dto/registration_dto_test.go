package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRegistrationResolveIDs(t *testing.T) {
	self := uuid.New()
	yatraID := uuid.New()

	// Defaults to self-registration when no pilgrim is named.
	req := CreateRegistrationRequest{YatraID: yatraID.String()}
	gotYatra, gotFor, err := req.ResolveIDs(self)
	require.NoError(t, err)
	assert.Equal(t, yatraID, gotYatra)
	assert.Equal(t, self, gotFor)

	// Mentor naming a mentee registers them instead.
	mentee := uuid.New()
	menteeStr := mentee.String()
	req = CreateRegistrationRequest{YatraID: yatraID.String(), RegisteredForProfileID: &menteeStr}
	_, gotFor, err = req.ResolveIDs(self)
	require.NoError(t, err)
	assert.Equal(t, mentee, gotFor)

	bad := "not-a-uuid"
	req = CreateRegistrationRequest{YatraID: yatraID.String(), RegisteredForProfileID: &bad}
	_, _, err = req.ResolveIDs(self)
	assert.Error(t, err)
}
