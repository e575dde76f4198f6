package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
)

func seedAccess() (*fakeAccessRepo, AccessService) {
	repo := newFakeAccessRepo()
	repo.groups["students"] = true
	repo.levels["easy"] = true
	repo.levels["medium"] = true
	repo.levels["hard"] = true
	return repo, NewAccessService(repo)
}

func TestCreateUserGroupAndLevel(t *testing.T) {
	repo, svc := seedAccess()

	require.NoError(t, svc.CreateUserGroup(dto.PostUserGroupRequest{UserGroupCd: "teachers"}))
	assert.True(t, repo.groups["teachers"])

	// Re-creating is an upsert, not an error.
	require.NoError(t, svc.CreateUserGroup(dto.PostUserGroupRequest{UserGroupCd: "teachers"}))

	require.NoError(t, svc.CreateLevel(dto.PostLevelRequest{LevelCd: "expert"}))
	assert.True(t, repo.levels["expert"])
}

func TestSetGroupLevelsReplacesWholesale(t *testing.T) {
	repo, svc := seedAccess()

	require.NoError(t, svc.SetGroupLevels("students", []string{"easy", "medium"}))
	assert.True(t, repo.links["students"]["easy"])
	assert.True(t, repo.links["students"]["medium"])

	require.NoError(t, svc.SetGroupLevels("students", []string{"hard"}))
	assert.False(t, repo.links["students"]["easy"])
	assert.False(t, repo.links["students"]["medium"])
	assert.True(t, repo.links["students"]["hard"])
}

func TestSetGroupLevelsEmptyRevokesAll(t *testing.T) {
	repo, svc := seedAccess()

	require.NoError(t, svc.SetGroupLevels("students", []string{"easy"}))
	require.NoError(t, svc.SetGroupLevels("students", nil))
	assert.Empty(t, repo.links["students"])
}

func TestSetGroupLevelsUnknownGroup(t *testing.T) {
	_, svc := seedAccess()
	assert.ErrorIs(t, svc.SetGroupLevels("nobody", []string{"easy"}), ErrUserGroupNotFound)
}

func TestSetGroupLevelsUnknownLevelLeavesGrantsIntact(t *testing.T) {
	repo, svc := seedAccess()
	require.NoError(t, svc.SetGroupLevels("students", []string{"easy"}))

	err := svc.SetGroupLevels("students", []string{"hard", "legendary"})
	assert.ErrorIs(t, err, ErrLevelNotFound)
	assert.True(t, repo.links["students"]["easy"])
	assert.False(t, repo.links["students"]["hard"])
}

func TestAddGroupLevelKeepsExistingGrants(t *testing.T) {
	repo, svc := seedAccess()
	require.NoError(t, svc.SetGroupLevels("students", []string{"easy"}))

	require.NoError(t, svc.AddGroupLevel("students", "medium"))
	assert.True(t, repo.links["students"]["easy"])
	assert.True(t, repo.links["students"]["medium"])

	assert.ErrorIs(t, svc.AddGroupLevel("students", "legendary"), ErrLevelNotFound)
	assert.ErrorIs(t, svc.AddGroupLevel("nobody", "easy"), ErrUserGroupNotFound)
}
