package treatment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sonia-health/sonia/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, patient_id, nombre, activo,
	metas_clinicas, metas_personales, calidad_vida_deseada,
	tipo_relacion, proceso_decisiones, rol_familia,
	puntos_atencion_fisicos, plataformas_digitales,
	recursos_humanos, recursos_fisicos, recursos_intelectuales, recursos_financieros,
	costos_financieros, carga_tiempo, carga_fisica, carga_emocional, carga_social_laboral,
	metricas_clinicas, resultados_funcionales, resultados_reportados, valor_sistema,
	frecuencia_comunicacion, medios_comunicacion, created_at, updated_at`

func scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.PatientID, &t.Name, &t.Active,
		&t.ClinicalGoals, &t.PersonalGoals, &t.DesiredQualityOfLife,
		&t.RelationshipType, &t.DecisionProcess, &t.FamilyRole,
		&t.PhysicalCarePoints, &t.DigitalPlatforms,
		&t.HumanResources, &t.PhysicalResources, &t.IntellectualResources, &t.FinancialResources,
		&t.FinancialCosts, &t.TimeBurden, &t.PhysicalBurden, &t.EmotionalBurden, &t.SocialWorkBurden,
		&t.ClinicalMetrics, &t.FunctionalOutcomes, &t.ReportedOutcomes, &t.SystemValue,
		&t.CommunicationFrequency, &t.CommunicationChannels, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatments (id, patient_id, nombre, activo,
			metas_clinicas, metas_personales, calidad_vida_deseada,
			tipo_relacion, proceso_decisiones, rol_familia,
			puntos_atencion_fisicos, plataformas_digitales,
			recursos_humanos, recursos_fisicos, recursos_intelectuales, recursos_financieros,
			costos_financieros, carga_tiempo, carga_fisica, carga_emocional, carga_social_laboral,
			metricas_clinicas, resultados_funcionales, resultados_reportados, valor_sistema,
			frecuencia_comunicacion, medios_comunicacion)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)`,
		t.ID, t.PatientID, t.Name, t.Active,
		t.ClinicalGoals, t.PersonalGoals, t.DesiredQualityOfLife,
		t.RelationshipType, t.DecisionProcess, t.FamilyRole,
		t.PhysicalCarePoints, t.DigitalPlatforms,
		t.HumanResources, t.PhysicalResources, t.IntellectualResources, t.FinancialResources,
		t.FinancialCosts, t.TimeBurden, t.PhysicalBurden, t.EmotionalBurden, t.SocialWorkBurden,
		t.ClinicalMetrics, t.FunctionalOutcomes, t.ReportedOutcomes, t.SystemValue,
		t.CommunicationFrequency, t.CommunicationChannels)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return scanTreatment(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM treatments WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, t *Treatment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatments SET nombre=$2, activo=$3,
			metas_clinicas=$4, metas_personales=$5, calidad_vida_deseada=$6,
			tipo_relacion=$7, proceso_decisiones=$8, rol_familia=$9,
			puntos_atencion_fisicos=$10, plataformas_digitales=$11,
			recursos_humanos=$12, recursos_fisicos=$13, recursos_intelectuales=$14, recursos_financieros=$15,
			costos_financieros=$16, carga_tiempo=$17, carga_fisica=$18, carga_emocional=$19, carga_social_laboral=$20,
			metricas_clinicas=$21, resultados_funcionales=$22, resultados_reportados=$23, valor_sistema=$24,
			frecuencia_comunicacion=$25, medios_comunicacion=$26, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.Active,
		t.ClinicalGoals, t.PersonalGoals, t.DesiredQualityOfLife,
		t.RelationshipType, t.DecisionProcess, t.FamilyRole,
		t.PhysicalCarePoints, t.DigitalPlatforms,
		t.HumanResources, t.PhysicalResources, t.IntellectualResources, t.FinancialResources,
		t.FinancialCosts, t.TimeBurden, t.PhysicalBurden, t.EmotionalBurden, t.SocialWorkBurden,
		t.ClinicalMetrics, t.FunctionalOutcomes, t.ReportedOutcomes, t.SystemValue,
		t.CommunicationFrequency, t.CommunicationChannels)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Treatment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+cols+` FROM treatments WHERE patient_id = $1 ORDER BY updated_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *repoPG) CreateActivities(ctx context.Context, activities []*CareActivity) error {
	for _, a := range activities {
		a.ID = uuid.New()
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO care_activities (id, treatment_id, patient_id, tipo, titulo, descripcion,
				fecha_inicio, es_recurrente, frecuencia)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			a.ID, a.TreatmentID, a.PatientID, a.Type, a.Title, a.Description,
			a.StartDate, a.Recurring, a.Frequency)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) ActiveByPatients(ctx context.Context, patientIDs []uuid.UUID) (map[uuid.UUID]*Treatment, error) {
	if len(patientIDs) == 0 {
		return map[uuid.UUID]*Treatment{}, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT DISTINCT ON (patient_id) `+cols+` FROM treatments
		WHERE patient_id = ANY($1) AND activo = TRUE
		ORDER BY patient_id, updated_at DESC`, patientIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uuid.UUID]*Treatment, len(patientIDs))
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out[t.PatientID] = t
	}
	return out, rows.Err()
}

func (r *repoPG) MostRecentActive(ctx context.Context, patientID uuid.UUID) (*Treatment, error) {
	t, err := scanTreatment(r.conn(ctx).QueryRow(ctx, `
		SELECT `+cols+` FROM treatments
		WHERE patient_id = $1 AND activo = TRUE
		ORDER BY updated_at DESC
		LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
