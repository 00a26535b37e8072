package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mapParentOf backs the ancestor walk with an in-memory parent table.
func mapParentOf(parents map[primitive.ObjectID]primitive.ObjectID) func(context.Context, primitive.ObjectID) (*primitive.ObjectID, error) {
	return func(_ context.Context, id primitive.ObjectID) (*primitive.ObjectID, error) {
		p, ok := parents[id]
		if !ok {
			return nil, nil
		}
		return &p, nil
	}
}

func TestWalkAncestors_FindsTarget(t *testing.T) {
	root := primitive.NewObjectID()
	mid := primitive.NewObjectID()
	leaf := primitive.NewObjectID()

	parents := map[primitive.ObjectID]primitive.ObjectID{
		mid:  root,
		leaf: mid,
	}

	found, err := walkAncestors(context.Background(), leaf, root, mapParentOf(parents))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestWalkAncestors_StartIsTarget(t *testing.T) {
	id := primitive.NewObjectID()

	found, err := walkAncestors(context.Background(), id, id, mapParentOf(nil))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestWalkAncestors_TargetNotInChain(t *testing.T) {
	root := primitive.NewObjectID()
	leaf := primitive.NewObjectID()
	other := primitive.NewObjectID()

	parents := map[primitive.ObjectID]primitive.ObjectID{
		leaf: root,
	}

	found, err := walkAncestors(context.Background(), leaf, other, mapParentOf(parents))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWalkAncestors_DanglingParentTreatedAsRoot(t *testing.T) {
	// leaf points at a parent that no longer exists; the lookup reports
	// nil and the walk terminates without error.
	leaf := primitive.NewObjectID()
	target := primitive.NewObjectID()

	found, err := walkAncestors(context.Background(), leaf, target, mapParentOf(nil))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWalkAncestors_CycleHitsDepthBound(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	target := primitive.NewObjectID()

	parents := map[primitive.ObjectID]primitive.ObjectID{
		a: b,
		b: a,
	}

	found, err := walkAncestors(context.Background(), a, target, mapParentOf(parents))
	require.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))
}

func stubTaken(taken bool, err error) func(context.Context, string) (bool, error) {
	return func(context.Context, string) (bool, error) {
		return taken, err
	}
}

func stubCount(n int64, err error) func(context.Context, primitive.ObjectID) (int64, error) {
	return func(context.Context, primitive.ObjectID) (int64, error) {
		return n, err
	}
}

func TestEnsureSlugFree_DuplicateSlugConflicts(t *testing.T) {
	err := ensureSlugFree(context.Background(), "electronics", stubTaken(true, nil))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}

func TestEnsureSlugFree_AvailableSlugPasses(t *testing.T) {
	assert.NoError(t, ensureSlugFree(context.Background(), "electronics", stubTaken(false, nil)))
}

func TestEnsureSlugFree_InvalidFormatRejected(t *testing.T) {
	err := ensureSlugFree(context.Background(), "Not A Slug", stubTaken(false, nil))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestEnsureSlugFree_LookupErrorPropagates(t *testing.T) {
	lookupErr := errors.New("server selection timeout")
	err := ensureSlugFree(context.Background(), "electronics", stubTaken(false, lookupErr))
	assert.ErrorIs(t, err, lookupErr)
}

func TestEnsureDeletable_ReferencedByProducts(t *testing.T) {
	err := ensureDeletable(context.Background(), primitive.NewObjectID(), stubCount(3, nil), stubCount(0, nil))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestEnsureDeletable_HasChildCategories(t *testing.T) {
	err := ensureDeletable(context.Background(), primitive.NewObjectID(), stubCount(0, nil), stubCount(1, nil))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestEnsureDeletable_Unreferenced(t *testing.T) {
	assert.NoError(t, ensureDeletable(context.Background(), primitive.NewObjectID(), stubCount(0, nil), stubCount(0, nil)))
}

func TestEnsureDeletable_CountErrorPropagates(t *testing.T) {
	countErr := errors.New("server selection timeout")
	err := ensureDeletable(context.Background(), primitive.NewObjectID(), stubCount(0, countErr), stubCount(0, nil))
	assert.ErrorIs(t, err, countErr)
}

func TestWalkAncestors_ChainAtMaxDepthStillResolves(t *testing.T) {
	// A legitimate chain just inside the bound resolves normally.
	ids := make([]primitive.ObjectID, maxCategoryDepth)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	parents := map[primitive.ObjectID]primitive.ObjectID{}
	for i := 1; i < len(ids); i++ {
		parents[ids[i]] = ids[i-1]
	}

	found, err := walkAncestors(context.Background(), ids[len(ids)-1], ids[0], mapParentOf(parents))
	require.NoError(t, err)
	assert.True(t, found)
}
