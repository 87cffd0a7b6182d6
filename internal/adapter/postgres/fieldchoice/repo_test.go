package fieldchoice_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsl/signbank-backend/internal/adapter/postgres/fieldchoice"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/testhelper"
	"github.com/finsl/signbank-backend/internal/domain"
)

// mvSeq hands out unique machine values; the column is globally unique.
var mvSeq atomic.Int64

func init() {
	mvSeq.Store(10_000)
}

func nextMachineValue() int {
	return int(mvSeq.Add(1))
}

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*fieldchoice.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return fieldchoice.New(pool), pool
}

func TestRepo_Insert_AndListByField(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	field := "handedness-" + uuid.New().String()[:8]

	// Insert out of value order; the repo must list in machine_value order.
	low := nextMachineValue()
	high := nextMachineValue()

	if _, err := repo.Insert(ctx, domain.FieldChoice{Field: field, EnglishName: "Two handed", MachineValue: high}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := repo.Insert(ctx, domain.FieldChoice{Field: field, EnglishName: "One handed", MachineValue: low}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.ListByField(ctx, field)
	if err != nil {
		t.Fatalf("ListByField: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(got))
	}
	if got[0].MachineValue != low || got[1].MachineValue != high {
		t.Errorf("expected machine_value order [%d %d], got [%d %d]",
			low, high, got[0].MachineValue, got[1].MachineValue)
	}
	if got[0].EnglishName != "One handed" {
		t.Errorf("expected 'One handed' first, got %q", got[0].EnglishName)
	}
}

func TestRepo_Insert_DuplicateMachineValue(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	mv := nextMachineValue()
	fieldA := "location-" + uuid.New().String()[:8]
	fieldB := "movement-" + uuid.New().String()[:8]

	if _, err := repo.Insert(ctx, domain.FieldChoice{Field: fieldA, EnglishName: "Chin", MachineValue: mv}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Machine values are unique across all fields, not per field.
	_, err := repo.Insert(ctx, domain.FieldChoice{Field: fieldB, EnglishName: "Circle", MachineValue: mv})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRepo_ListByField_Unknown(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	got, err := repo.ListByField(ctx, "no-such-field-"+uuid.New().String()[:8])
	if err != nil {
		t.Fatalf("ListByField: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d choices", len(got))
	}
}

func TestRepo_ListAll_ContainsInserted(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	field := "named_entity-" + uuid.New().String()[:8]
	mv := nextMachineValue()

	inserted, err := repo.Insert(ctx, domain.FieldChoice{Field: field, EnglishName: "Person", MachineValue: mv})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inserted.ID == 0 {
		t.Error("expected non-zero ID after insert")
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}

	found := false
	for _, fc := range all {
		if fc.ID == inserted.ID {
			found = true
			if fc.Field != field || fc.MachineValue != mv {
				t.Errorf("unexpected row: %+v", fc)
			}
			break
		}
	}
	if !found {
		t.Error("inserted choice not present in ListAll")
	}
}
