package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewTable(t *testing.T) {
	table := NewTable(2, 10, 25)
	assert.Equal(t, 2, table.CurrentPage)
	assert.Equal(t, 3, table.TotalPages)
	assert.Equal(t, 10, table.PageLimit)
	assert.Equal(t, int64(25), table.TotalCount)

	// exact multiple does not round up
	assert.Equal(t, 2, NewTable(1, 10, 20).TotalPages)

	// empty collection has zero pages
	assert.Equal(t, 0, NewTable(1, 10, 0).TotalPages)
}

func TestDedupeIDsPreservesOrder(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	out := DedupeIDs([]primitive.ObjectID{a, b, a, b, a})
	assert.Equal(t, []primitive.ObjectID{a, b}, out)

	assert.Empty(t, DedupeIDs(nil))
}

func TestValidProgress(t *testing.T) {
	for _, p := range []string{ProgressPending, ProgressAccepted, ProgressDeclined, ProgressDone} {
		assert.True(t, ValidProgress(p), p)
	}
	assert.False(t, ValidProgress("shipped"))
	assert.False(t, ValidProgress(""))
	assert.False(t, ValidProgress("Pending"))
}
