package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/repository"
)

func TestRosterSeedAndLookup(t *testing.T) {
	roster := repository.NewRosterRepository(domain.SeedRoster())
	ctx := context.Background()

	assert.Len(t, roster.List(ctx), 6)
	assert.True(t, roster.Exists(ctx, "e1"))

	member, err := roster.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Hiếu Hiếu", member.Name)

	_, err = roster.GetByID(ctx, "nope")
	assert.Error(t, err)
}

func TestRosterAppendRejectsDuplicateID(t *testing.T) {
	roster := repository.NewRosterRepository(domain.SeedRoster())
	ctx := context.Background()

	err := roster.Append(ctx, domain.StaffMember{ID: "e1", Name: "Imposter"})
	assert.Error(t, err)

	member, getErr := roster.GetByID(ctx, "e1")
	require.NoError(t, getErr)
	assert.Equal(t, "Hiếu Hiếu", member.Name, "existing member must not be shadowed")
}

func TestRosterAppendOrderPreserved(t *testing.T) {
	roster := repository.NewRosterRepository(nil)
	ctx := context.Background()

	require.NoError(t, roster.Append(ctx, domain.StaffMember{ID: "a", Name: "A"}))
	require.NoError(t, roster.Append(ctx, domain.StaffMember{ID: "b", Name: "B"}))

	members := roster.List(ctx)
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].ID)
	assert.Equal(t, "b", members[1].ID)
}
