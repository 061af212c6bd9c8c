package optimistic

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeCart struct {
	Items map[int]int // item id -> quantity
}

func cloneFakeCart(c fakeCart) fakeCart {
	items := make(map[int]int, len(c.Items))
	for k, v := range c.Items {
		items[k] = v
	}
	return fakeCart{Items: items}
}

func TestMutatePublishesProvisionalState(t *testing.T) {
	store := NewStore(fakeCart{Items: map[int]int{1: 2}}, cloneFakeCart)

	var seenDuringCommit int
	err := store.Mutate(context.Background(),
		func(c fakeCart) fakeCart {
			c.Items[1] = 5
			return c
		},
		func(ctx context.Context) error {
			seenDuringCommit = store.Get().Items[1]
			return nil
		},
		nil,
	)
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if seenDuringCommit != 5 {
		t.Fatalf("provisional state not visible during commit, saw %d", seenDuringCommit)
	}
	if store.Get().Items[1] != 5 {
		t.Fatalf("accepted mutation lost")
	}
}

func TestMutateRollsBackExactlyOnFailure(t *testing.T) {
	initial := fakeCart{Items: map[int]int{1: 2, 2: 7}}
	store := NewStore(initial, cloneFakeCart)

	boom := errors.New("stock check failed")
	err := store.Mutate(context.Background(),
		func(c fakeCart) fakeCart {
			c.Items[1] = 99
			delete(c.Items, 2)
			return c
		},
		func(ctx context.Context) error { return boom },
		nil,
	)
	if !errors.Is(err, boom) {
		t.Fatalf("commit error should surface, got %v", err)
	}
	if got := store.Get(); !reflect.DeepEqual(got.Items, initial.Items) {
		t.Fatalf("rollback not exact: %v != %v", got.Items, initial.Items)
	}
}

func TestMutateReconcilesWithServerState(t *testing.T) {
	store := NewStore(fakeCart{Items: map[int]int{1: 2}}, cloneFakeCart)

	err := store.Mutate(context.Background(),
		func(c fakeCart) fakeCart {
			c.Items[1] = 3
			return c
		},
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) (fakeCart, error) {
			// Server clamped the quantity against stock.
			return fakeCart{Items: map[int]int{1: 2}}, nil
		},
	)
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if got := store.Get().Items[1]; got != 2 {
		t.Fatalf("reconciled state should win, got %d", got)
	}
}

func TestReconcileFailureKeepsProvisionalState(t *testing.T) {
	store := NewStore(fakeCart{Items: map[int]int{1: 2}}, cloneFakeCart)

	refetchErr := errors.New("refetch failed")
	err := store.Mutate(context.Background(),
		func(c fakeCart) fakeCart {
			c.Items[1] = 3
			return c
		},
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) (fakeCart, error) { return fakeCart{}, refetchErr },
	)
	if !errors.Is(err, refetchErr) {
		t.Fatalf("expected refetch error, got %v", err)
	}
	if got := store.Get().Items[1]; got != 3 {
		t.Fatalf("committed mutation must survive a failed reconcile, got %d", got)
	}
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	store := NewStore(fakeCart{Items: map[int]int{1: 2}}, cloneFakeCart)
	copy1 := store.Get()
	copy1.Items[1] = 42
	if store.Get().Items[1] != 2 {
		t.Fatalf("Get must not expose shared state")
	}
}
