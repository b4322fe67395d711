package services

import (
	"github.com/google/uuid"

	types "github.com/crestline/origination-backend/internal/domain"
)

// incomingItem is any request payload item that can name an already-persisted
// row by id.
type incomingItem interface {
	ExistingID() *uuid.UUID
}

type plannedItem[P any] struct {
	Index int
	Item  P
	ID    uuid.UUID // zero for creates
}

// collectionPlan is the structural diff between an incoming collection and the
// persisted rows it targets. Validation happens later, while the plan is
// applied: an update that fails validation keeps its persisted value (its id
// never lands in RemoveIDs), a create that fails is simply not performed.
type collectionPlan[P any] struct {
	Creates   []plannedItem[P]
	Updates   []plannedItem[P]
	RemoveIDs []uuid.UUID
	Failures  []types.ItemFailure
}

// planCollection matches incoming items against the existing row ids.
// An item without an id is a create. An item naming a known id is an update.
// An item naming an unknown or already-claimed id is a failure and is omitted.
// Existing ids no incoming item claimed are removals.
func planCollection[P incomingItem](collection string, incoming []P, existingIDs []uuid.UUID) collectionPlan[P] {
	known := make(map[uuid.UUID]bool, len(existingIDs))
	for _, id := range existingIDs {
		known[id] = true
	}
	claimed := make(map[uuid.UUID]bool, len(incoming))

	var plan collectionPlan[P]
	for i, item := range incoming {
		id := item.ExistingID()
		if id == nil || *id == uuid.Nil {
			plan.Creates = append(plan.Creates, plannedItem[P]{Index: i, Item: item})
			continue
		}
		if !known[*id] {
			plan.Failures = append(plan.Failures, types.ItemFailure{
				Collection: collection,
				Index:      i,
				ItemID:     id,
				Fields:     types.FieldErrors{"id": "no such item on this application"},
			})
			continue
		}
		if claimed[*id] {
			plan.Failures = append(plan.Failures, types.ItemFailure{
				Collection: collection,
				Index:      i,
				ItemID:     id,
				Fields:     types.FieldErrors{"id": "duplicate id in payload"},
			})
			continue
		}
		claimed[*id] = true
		plan.Updates = append(plan.Updates, plannedItem[P]{Index: i, Item: item, ID: *id})
	}
	for _, id := range existingIDs {
		if !claimed[id] {
			plan.RemoveIDs = append(plan.RemoveIDs, id)
		}
	}
	return plan
}

func itemFailure(collection string, index int, id *uuid.UUID, fields types.FieldErrors) types.ItemFailure {
	return types.ItemFailure{Collection: collection, Index: index, ItemID: id, Fields: fields}
}
