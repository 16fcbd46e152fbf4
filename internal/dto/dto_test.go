package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
)

func TestToIncidentDTO_OwnerOnlyWhenLoaded(t *testing.T) {
	withOwner := ToIncidentDTO(models.IncidentReport{ID: 1, UserID: 3, User: models.User{ID: 3, Username: "alice", PasswordHash: "secret"}})
	require.NotNil(t, withOwner.User)
	assert.Equal(t, "alice", withOwner.User.Username)

	withoutOwner := ToIncidentDTO(models.IncidentReport{ID: 2, UserID: 3})
	assert.Nil(t, withoutOwner.User)
}

func TestToProfileDTO_NeverLeaksPasswordHash(t *testing.T) {
	body, err := json.Marshal(ToProfileDTO(models.User{ID: 1, Username: "alice", PasswordHash: "$2a$10$hash"}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "$2a$10$hash")
}

func TestToListResponse(t *testing.T) {
	donations := []models.Donation{{ID: 2}, {ID: 1}}
	resp := ToListResponse(donations, ToDonationDTO, utils.NewPaginationParams(1, 2), 5, nil)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, uint64(2), resp.Items[0].ID)
	assert.Equal(t, utils.PaginationResponse{Page: 1, Limit: 2, Total: 5}, resp.Pagination)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "messages")
}
