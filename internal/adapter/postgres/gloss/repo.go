// Package gloss implements persistence for the dictionary's root aggregate.
// Reads use raw SQL; search and writes build their statements with squirrel
// because the column set is wide and the filters are dynamic.
package gloss

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Repo provides gloss persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new gloss repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// psql builds statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// glossColumns is the full column list in scan order.
var glossColumns = []string{
	"id", "idgloss",
	"annotation_idgloss_jkl", "annotation_idgloss_jkl_en",
	"annotation_idgloss_hki", "annotation_idgloss_hki_en",
	"annotation_comments", "url", "locked",
	"handedness", "strong_handshape", "weak_handshape", "location",
	"relation_between_articulators",
	"absolute_orientation_palm", "absolute_orientation_fingers",
	"relative_orientation_movement", "relative_orientation_location",
	"orientation_change", "handshape_change",
	"movement_shape", "movement_direction", "movement_manner", "contact_type",
	"repeated_movement", "alternating_movement",
	"phonology_other", "mouth_gesture", "mouthing", "phonetic_variation",
	"iconic_image", "named_entity", "semantic_field",
	"number_of_occurrences", "in_web_dictionary", "is_proposed_new_sign",
	"created_at", "created_by", "updated_at", "updated_by",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a single gloss by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Gloss, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf("SELECT %s FROM glosses WHERE id = $1", strings.Join(glossColumns, ", "))

	g, err := scanGloss(querier.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.MapError(err, "gloss", id)
	}

	return g, nil
}

// GetByIDGloss returns a single gloss by its unique identifying name.
func (r *Repo) GetByIDGloss(ctx context.Context, idgloss string) (*domain.Gloss, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf("SELECT %s FROM glosses WHERE idgloss = $1", strings.Join(glossColumns, ", "))

	g, err := scanGloss(querier.QueryRow(ctx, query, idgloss))
	if err != nil {
		return nil, postgres.MapError(err, "gloss", idgloss)
	}

	return g, nil
}

// Find searches glosses with the given filter and returns the page plus the
// total pre-pagination count.
func (r *Repo) Find(ctx context.Context, filter Filter) ([]domain.Gloss, int, error) {
	filter.normalize()
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	base := psql.Select().From("glosses g")
	base = applyFilter(base, filter)

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "glosses", "count")
	}

	cols := make([]string, len(glossColumns))
	for i, c := range glossColumns {
		cols[i] = "g." + c
	}

	pageSQL, pageArgs, err := applyFilter(psql.Select(cols...).From("glosses g"), filter).
		OrderBy(fmt.Sprintf("g.%s %s", filter.SortBy, filter.SortOrder)).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build find query: %w", err)
	}

	rows, err := querier.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "glosses", "find")
	}
	defer rows.Close()

	var glosses []domain.Gloss
	for rows.Next() {
		g, err := scanGloss(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan gloss: %w", err)
		}
		glosses = append(glosses, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "glosses", "find")
	}

	if glosses == nil {
		glosses = []domain.Gloss{}
	}

	return glosses, total, nil
}

// applyFilter adds WHERE clauses for the set filter fields.
func applyFilter(b sq.SelectBuilder, f Filter) sq.SelectBuilder {
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"g.idgloss": pattern},
			sq.ILike{"g.annotation_idgloss_jkl": pattern},
			sq.ILike{"g.annotation_idgloss_hki": pattern},
		})
	}
	if f.InWebDictionary != nil {
		b = b.Where(sq.Eq{"g.in_web_dictionary": *f.InWebDictionary})
	}
	if f.IsProposedNewSign != nil {
		b = b.Where(sq.Eq{"g.is_proposed_new_sign": *f.IsProposedNewSign})
	}
	if f.LanguageID != nil {
		b = b.Where("g.id IN (SELECT gloss_id FROM gloss_languages WHERE language_id = ?)", *f.LanguageID)
	}
	if f.DialectID != nil {
		b = b.Where("g.id IN (SELECT gloss_id FROM gloss_dialects WHERE dialect_id = ?)", *f.DialectID)
	}
	return b
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a gloss. created_at/updated_at are set by the database.
func (r *Repo) Create(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert("glosses").
		SetMap(writeMap(g)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if err := querier.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "gloss", g.IDGloss)
	}

	return g, nil
}

// Update rewrites all mutable gloss columns and bumps updated_at.
func (r *Repo) Update(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m := writeMap(g)
	delete(m, "created_by")

	query, args, err := psql.Update("glosses").
		SetMap(m).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": g.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	if err := querier.QueryRow(ctx, query, args...).Scan(&g.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "gloss", g.ID)
	}

	return g, nil
}

// Delete removes a gloss; owned definitions, translations, relations and tag
// bindings go with it via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, "DELETE FROM glosses WHERE id = $1", id)
	if err != nil {
		return postgres.MapError(err, "gloss", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gloss %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// writeMap lists the writable columns for insert/update.
func writeMap(g *domain.Gloss) map[string]any {
	return map[string]any{
		"idgloss":                       g.IDGloss,
		"annotation_idgloss_jkl":        g.AnnotationIDGlossJKL,
		"annotation_idgloss_jkl_en":     g.AnnotationIDGlossJKLEn,
		"annotation_idgloss_hki":        g.AnnotationIDGlossHKI,
		"annotation_idgloss_hki_en":     g.AnnotationIDGlossHKIEn,
		"annotation_comments":           g.AnnotationComments,
		"url":                           g.URL,
		"locked":                        g.Locked,
		"handedness":                    g.Handedness,
		"strong_handshape":              g.StrongHandshape,
		"weak_handshape":                g.WeakHandshape,
		"location":                      g.Location,
		"relation_between_articulators": g.RelationBetweenArticulators,
		"absolute_orientation_palm":     g.AbsOrientationPalm,
		"absolute_orientation_fingers":  g.AbsOrientationFingers,
		"relative_orientation_movement": g.RelOrientationMovement,
		"relative_orientation_location": g.RelOrientationLocation,
		"orientation_change":            g.OrientationChange,
		"handshape_change":              g.HandshapeChange,
		"movement_shape":                g.MovementShape,
		"movement_direction":            g.MovementDirection,
		"movement_manner":               g.MovementManner,
		"contact_type":                  g.ContactType,
		"repeated_movement":             g.RepeatedMovement,
		"alternating_movement":          g.AlternatingMovement,
		"phonology_other":               g.PhonologyOther,
		"mouth_gesture":                 g.MouthGesture,
		"mouthing":                      g.Mouthing,
		"phonetic_variation":            g.PhoneticVariation,
		"iconic_image":                  g.IconicImage,
		"named_entity":                  g.NamedEntity,
		"semantic_field":                g.SemanticField,
		"number_of_occurrences":         g.NumberOfOccurrences,
		"in_web_dictionary":             g.InWebDictionary,
		"is_proposed_new_sign":          g.IsProposedNewSign,
		"created_by":                    g.CreatedBy,
		"updated_by":                    g.UpdatedBy,
	}
}

// ---------------------------------------------------------------------------
// Language / dialect associations
// ---------------------------------------------------------------------------

// LoadLanguages populates g.Languages in name order.
func (r *Repo) LoadLanguages(ctx context.Context, g *domain.Gloss) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `
		SELECT l.id, l.name, l.description
		FROM languages l
		JOIN gloss_languages gl ON gl.language_id = l.id
		WHERE gl.gloss_id = $1
		ORDER BY l.name`, g.ID)
	if err != nil {
		return postgres.MapError(err, "gloss languages", g.ID)
	}
	defer rows.Close()

	g.Languages = g.Languages[:0]
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Description); err != nil {
			return fmt.Errorf("scan language: %w", err)
		}
		g.Languages = append(g.Languages, l)
	}

	return rows.Err()
}

// LoadDialects populates g.Dialects in (language, name) order.
func (r *Repo) LoadDialects(ctx context.Context, g *domain.Gloss) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `
		SELECT d.id, d.language_id, d.name, d.description
		FROM dialects d
		JOIN gloss_dialects gd ON gd.dialect_id = d.id
		WHERE gd.gloss_id = $1
		ORDER BY d.language_id, d.name`, g.ID)
	if err != nil {
		return postgres.MapError(err, "gloss dialects", g.ID)
	}
	defer rows.Close()

	g.Dialects = g.Dialects[:0]
	for rows.Next() {
		var d domain.Dialect
		if err := rows.Scan(&d.ID, &d.LanguageID, &d.Name, &d.Description); err != nil {
			return fmt.Errorf("scan dialect: %w", err)
		}
		g.Dialects = append(g.Dialects, d)
	}

	return rows.Err()
}

// BindLanguage associates a gloss with a language (idempotent).
func (r *Repo) BindLanguage(ctx context.Context, glossID, languageID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, `
		INSERT INTO gloss_languages (gloss_id, language_id)
		VALUES ($1, $2)
		ON CONFLICT (gloss_id, language_id) DO NOTHING`, glossID, languageID)
	return postgres.MapError(err, "gloss language", glossID)
}

// BindDialect associates a gloss with a dialect (idempotent).
func (r *Repo) BindDialect(ctx context.Context, glossID, dialectID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, `
		INSERT INTO gloss_dialects (gloss_id, dialect_id)
		VALUES ($1, $2)
		ON CONFLICT (gloss_id, dialect_id) DO NOTHING`, glossID, dialectID)
	return postgres.MapError(err, "gloss dialect", glossID)
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanGloss(row pgx.Row) (*domain.Gloss, error) {
	var g domain.Gloss
	err := row.Scan(
		&g.ID, &g.IDGloss,
		&g.AnnotationIDGlossJKL, &g.AnnotationIDGlossJKLEn,
		&g.AnnotationIDGlossHKI, &g.AnnotationIDGlossHKIEn,
		&g.AnnotationComments, &g.URL, &g.Locked,
		&g.Handedness, &g.StrongHandshape, &g.WeakHandshape, &g.Location,
		&g.RelationBetweenArticulators,
		&g.AbsOrientationPalm, &g.AbsOrientationFingers,
		&g.RelOrientationMovement, &g.RelOrientationLocation,
		&g.OrientationChange, &g.HandshapeChange,
		&g.MovementShape, &g.MovementDirection, &g.MovementManner, &g.ContactType,
		&g.RepeatedMovement, &g.AlternatingMovement,
		&g.PhonologyOther, &g.MouthGesture, &g.Mouthing, &g.PhoneticVariation,
		&g.IconicImage, &g.NamedEntity, &g.SemanticField,
		&g.NumberOfOccurrences, &g.InWebDictionary, &g.IsProposedNewSign,
		&g.CreatedAt, &g.CreatedBy, &g.UpdatedAt, &g.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
