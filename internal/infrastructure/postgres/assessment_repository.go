package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/pkg/events"
	pkgpostgres "github.com/Svaella/app-atension-api/pkg/postgres"
)

// Compile-time interface check.
var _ port.AssessmentRepository = (*AssessmentRepository)(nil)

const selectColumns = `
	id, reference, sexo, edad, peso, altura, imc::text, grupo_edad,
	frutas, vegetales, sal, alcohol, tabaco, vapeo, estres_dias,
	actividad, colesterol, diabetes,
	hta_diagnosticada_previamente, puntaje_conocimiento_hta, respuestas_hta,
	riesgo, probabilidad::text, created_at
`

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	db pkgpostgres.DB
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
// db is usually a *pgxpool.Pool.
func NewAssessmentRepository(db pkgpostgres.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Save inserts the assessment and its domain events into outbox_events in one
// transaction. On success the assessment carries the generated id, the
// server-side created_at and the recorded events. On failure it is untouched.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.HypertensionAssessment) error {
	if !assessment.IsClassified() {
		return model.ErrNotClassified
	}
	rec := assessment.ToRecord()

	var answers []byte
	if rec.QuizAnswers != nil {
		var err error
		answers, err = json.Marshal(rec.QuizAnswers)
		if err != nil {
			return fmt.Errorf("failed to encode quiz answers: %w", err)
		}
	}

	query := `
		INSERT INTO hypertension_assessments (
			reference, sexo, edad, peso, altura, imc, grupo_edad,
			frutas, vegetales, sal, alcohol, tabaco, vapeo, estres_dias,
			actividad, colesterol, diabetes,
			hta_diagnosticada_previamente, puntaje_conocimiento_hta, respuestas_hta,
			riesgo, probabilidad
		) VALUES (
			$1, $2, $3, $4, $5, $6::numeric, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17,
			$18, $19, $20,
			$21, $22::numeric
		)
		RETURNING id, created_at
	`

	staged := *assessment
	err := pkgpostgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var (
			id        int64
			createdAt time.Time
		)
		err := tx.QueryRow(ctx, query,
			rec.Reference,
			rec.Sex,
			rec.Age,
			rec.WeightKg,
			rec.HeightCm,
			rec.BMI.StringFixed(2),
			rec.AgeBracket,
			rec.Fruits,
			rec.Vegetables,
			rec.Salt,
			rec.Alcohol,
			rec.Smoking,
			rec.Vaping,
			rec.StressDays,
			rec.PhysicalActivity,
			rec.Cholesterol,
			rec.Diabetes,
			rec.PreviouslyDiagnosed,
			rec.QuizScore,
			answers,
			rec.RiskTier,
			rec.Probability.StringFixed(2),
		).Scan(&id, &createdAt)
		if err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		if err := staged.MarkPersisted(id, createdAt); err != nil {
			return fmt.Errorf("failed to mark assessment persisted: %w", err)
		}

		entries, err := events.NewOutboxEntries(staged.Events())
		if err != nil {
			return fmt.Errorf("failed to build outbox entries: %w", err)
		}
		return NewOutboxRepository(tx).Store(ctx, entries)
	})
	if err != nil {
		return err
	}

	*assessment = staged
	return nil
}

// FindByID retrieves a stored record by its identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id int64) (*model.AssessmentRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM hypertension_assessments WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", port.ErrAssessmentNotFound, id)
		}
		return nil, err
	}
	return &rec, nil
}

// ListRecent returns up to limit records, newest first.
func (r *AssessmentRepository) ListRecent(ctx context.Context, limit int) ([]model.AssessmentRecord, error) {
	query := `SELECT ` + selectColumns + `
		FROM hypertension_assessments
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	records := make([]model.AssessmentRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return records, nil
}

// scanRecord reads one row selected with selectColumns. pgx.Rows satisfies
// pgx.Row, so it serves both single and multi-row queries.
func scanRecord(row pgx.Row) (model.AssessmentRecord, error) {
	var (
		rec         model.AssessmentRecord
		bmi         string
		probability string
		answers     []byte
	)

	err := row.Scan(
		&rec.ID, &rec.Reference, &rec.Sex, &rec.Age, &rec.WeightKg, &rec.HeightCm, &bmi, &rec.AgeBracket,
		&rec.Fruits, &rec.Vegetables, &rec.Salt, &rec.Alcohol, &rec.Smoking, &rec.Vaping, &rec.StressDays,
		&rec.PhysicalActivity, &rec.Cholesterol, &rec.Diabetes,
		&rec.PreviouslyDiagnosed, &rec.QuizScore, &answers,
		&rec.RiskTier, &probability, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AssessmentRecord{}, err
		}
		return model.AssessmentRecord{}, fmt.Errorf("failed to scan assessment: %w", err)
	}

	if rec.BMI, err = decimal.NewFromString(bmi); err != nil {
		return model.AssessmentRecord{}, fmt.Errorf("failed to parse imc %q: %w", bmi, err)
	}
	if rec.Probability, err = decimal.NewFromString(probability); err != nil {
		return model.AssessmentRecord{}, fmt.Errorf("failed to parse probabilidad %q: %w", probability, err)
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &rec.QuizAnswers); err != nil {
			return model.AssessmentRecord{}, fmt.Errorf("failed to decode respuestas_hta: %w", err)
		}
	}

	return rec, nil
}
