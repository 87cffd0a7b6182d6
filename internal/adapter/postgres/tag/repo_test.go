package tag_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsl/signbank-backend/internal/adapter/postgres/tag"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/testhelper"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*tag.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return tag.New(pool), pool
}

func TestRepo_TaggedGlossIDs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	name := "lexis:test-" + uuid.New().String()[:8]
	tagged := testhelper.SeedGloss(t, pool, "TAG-A-"+name, true)
	untagged := testhelper.SeedGloss(t, pool, "TAG-B-"+name, true)
	testhelper.SeedTag(t, pool, tagged, name)

	ids, err := repo.TaggedGlossIDs(ctx, name)
	if err != nil {
		t.Fatalf("TaggedGlossIDs: %v", err)
	}

	if _, ok := ids[tagged]; !ok {
		t.Errorf("expected gloss %d in tagged set", tagged)
	}
	if _, ok := ids[untagged]; ok {
		t.Errorf("gloss %d should not be in tagged set", untagged)
	}
}

func TestRepo_TaggedGlossIDs_UndefinedTag(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	// A tag nobody defined yields a nil set and no error; callers skip
	// filtering entirely in that case.
	ids, err := repo.TaggedGlossIDs(ctx, "lexis:undefined-"+uuid.New().String()[:8])
	if err != nil {
		t.Fatalf("TaggedGlossIDs: %v", err)
	}
	if ids != nil {
		t.Errorf("expected nil set for undefined tag, got %v", ids)
	}
}

func TestRepo_TaggedGlossIDs_DefinedButUnused(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	name := "lexis:unused-" + uuid.New().String()[:8]
	id := testhelper.SeedGloss(t, pool, "UNUSED-"+name, true)
	testhelper.SeedTag(t, pool, id, name)

	if err := repo.Detach(ctx, id, name); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	// The tag still exists, just tags nothing: empty non-nil set.
	ids, err := repo.TaggedGlossIDs(ctx, name)
	if err != nil {
		t.Fatalf("TaggedGlossIDs: %v", err)
	}
	if ids == nil {
		t.Fatal("expected non-nil set for a defined tag")
	}
	if len(ids) != 0 {
		t.Errorf("expected empty set, got %v", ids)
	}
}

func TestRepo_Attach_Idempotent_AndTagsForGloss(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	id := testhelper.SeedGloss(t, pool, "LIITE-"+suffix, true)

	if err := repo.Attach(ctx, id, "b-tag-"+suffix); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := repo.Attach(ctx, id, "a-tag-"+suffix); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := repo.Attach(ctx, id, "a-tag-"+suffix); err != nil {
		t.Fatalf("Attach (repeat): %v", err)
	}

	names, err := repo.TagsForGloss(ctx, id)
	if err != nil {
		t.Fatalf("TagsForGloss: %v", err)
	}

	if len(names) != 2 {
		t.Fatalf("expected 2 tags, got %d: %v", len(names), names)
	}
	if names[0] != "a-tag-"+suffix || names[1] != "b-tag-"+suffix {
		t.Errorf("expected name order, got %v", names)
	}
}

func TestRepo_Detach(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	id := testhelper.SeedGloss(t, pool, "IRTI-"+suffix, true)
	testhelper.SeedTag(t, pool, id, "gone-"+suffix)
	testhelper.SeedTag(t, pool, id, "kept-"+suffix)

	if err := repo.Detach(ctx, id, "gone-"+suffix); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	names, err := repo.TagsForGloss(ctx, id)
	if err != nil {
		t.Fatalf("TagsForGloss: %v", err)
	}
	if len(names) != 1 || names[0] != "kept-"+suffix {
		t.Errorf("expected only kept tag, got %v", names)
	}
}
