package services

import (
	"testing"

	"github.com/google/uuid"
)

type fakeItem struct {
	id   *uuid.UUID
	name string
}

func (f fakeItem) ExistingID() *uuid.UUID { return f.id }

func TestPlanCollection(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	unknown := uuid.New()
	existing := []uuid.UUID{a, b, c}

	t.Run("mixed creates updates and removals", func(t *testing.T) {
		plan := planCollection("items", []fakeItem{
			{name: "fresh"},
			{id: &a, name: "touched"},
		}, existing)

		if len(plan.Creates) != 1 || plan.Creates[0].Item.name != "fresh" {
			t.Fatalf("Creates = %+v", plan.Creates)
		}
		if len(plan.Updates) != 1 || plan.Updates[0].ID != a {
			t.Fatalf("Updates = %+v", plan.Updates)
		}
		if len(plan.RemoveIDs) != 2 {
			t.Fatalf("RemoveIDs = %v, want b and c", plan.RemoveIDs)
		}
		if len(plan.Failures) != 0 {
			t.Fatalf("Failures = %+v", plan.Failures)
		}
	})

	t.Run("empty incoming removes everything", func(t *testing.T) {
		plan := planCollection("items", []fakeItem{}, existing)
		if len(plan.Creates)+len(plan.Updates)+len(plan.Failures) != 0 {
			t.Fatalf("plan = %+v, want removals only", plan)
		}
		if len(plan.RemoveIDs) != 3 {
			t.Fatalf("RemoveIDs = %v, want all three", plan.RemoveIDs)
		}
	})

	t.Run("unknown id is a failure not a create", func(t *testing.T) {
		plan := planCollection("items", []fakeItem{{id: &unknown}}, existing)
		if len(plan.Creates) != 0 || len(plan.Updates) != 0 {
			t.Fatalf("plan = %+v", plan)
		}
		if len(plan.Failures) != 1 || plan.Failures[0].ItemID == nil || *plan.Failures[0].ItemID != unknown {
			t.Fatalf("Failures = %+v", plan.Failures)
		}
		if plan.Failures[0].Collection != "items" || plan.Failures[0].Index != 0 {
			t.Fatalf("failure metadata = %+v", plan.Failures[0])
		}
	})

	t.Run("duplicate id keeps first occurrence", func(t *testing.T) {
		plan := planCollection("items", []fakeItem{
			{id: &b, name: "first"},
			{id: &b, name: "second"},
		}, existing)
		if len(plan.Updates) != 1 || plan.Updates[0].Item.name != "first" {
			t.Fatalf("Updates = %+v", plan.Updates)
		}
		if len(plan.Failures) != 1 || plan.Failures[0].Index != 1 {
			t.Fatalf("Failures = %+v", plan.Failures)
		}
	})

	t.Run("failed reference still protects the row from removal", func(t *testing.T) {
		// b is referenced twice; the duplicate fails but b was claimed, so b
		// must not land in RemoveIDs.
		plan := planCollection("items", []fakeItem{
			{id: &b},
			{id: &b},
		}, existing)
		for _, id := range plan.RemoveIDs {
			if id == b {
				t.Fatal("claimed id scheduled for removal")
			}
		}
		if len(plan.RemoveIDs) != 2 {
			t.Fatalf("RemoveIDs = %v, want a and c", plan.RemoveIDs)
		}
	})

	t.Run("nil existing treats everything as create or failure", func(t *testing.T) {
		plan := planCollection("items", []fakeItem{{name: "x"}, {id: &a}}, nil)
		if len(plan.Creates) != 1 || len(plan.Failures) != 1 {
			t.Fatalf("plan = %+v", plan)
		}
	})
}
