package patient

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sonia-health/sonia/internal/domain/treatment"
	"github.com/sonia-health/sonia/internal/platform/db"
)

type repoPG struct {
	pool       *pgxpool.Pool
	treatments treatment.Repository
}

func NewRepoPG(pool *pgxpool.Pool, treatments treatment.Repository) Repository {
	return &repoPG{pool: pool, treatments: treatments}
}

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, created_by, nombre, edad, fecha_nacimiento, genero, telefono, email, direccion,
	ocupacion_anterior, situacion_social, situacion_economica, contexto_cultural,
	valores_personales, preocupaciones, esperanzas,
	diagnostico_principal, condiciones_cronicas, medicamentos, alergias,
	created_at, updated_at`

// visibleTo restricts rows to patients the caller created or collaborates on.
// The caller id is always the first query parameter.
const visibleTo = `(p.created_by = $1 OR EXISTS (
	SELECT 1 FROM patient_collaborators pc WHERE pc.patient_id = p.id AND pc.user_id = $1))`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.CreatorID, &p.Name, &p.Age, &p.BirthDate, &p.Gender, &p.Phone, &p.Email, &p.Address,
		&p.PriorOccupation, &p.SocialSituation, &p.EconomicSituation, &p.CulturalContext,
		&p.PersonalValues, &p.Concerns, &p.Hopes,
		&p.PrimaryDiagnosis, &p.ChronicConditions, &p.Medications, &p.Allergies,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, created_by, nombre, edad, fecha_nacimiento, genero, telefono, email, direccion,
			ocupacion_anterior, situacion_social, situacion_economica, contexto_cultural,
			valores_personales, preocupaciones, esperanzas,
			diagnostico_principal, condiciones_cronicas, medicamentos, alergias)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		p.ID, p.CreatorID, p.Name, p.Age, p.BirthDate, p.Gender, p.Phone, p.Email, p.Address,
		p.PriorOccupation, p.SocialSituation, p.EconomicSituation, p.CulturalContext,
		p.PersonalValues, p.Concerns, p.Hopes,
		p.PrimaryDiagnosis, p.ChronicConditions, p.Medications, p.Allergies)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET nombre=$2, edad=$3, fecha_nacimiento=$4, genero=$5, telefono=$6, email=$7, direccion=$8,
			ocupacion_anterior=$9, situacion_social=$10, situacion_economica=$11, contexto_cultural=$12,
			valores_personales=$13, preocupaciones=$14, esperanzas=$15,
			diagnostico_principal=$16, condiciones_cronicas=$17, medicamentos=$18, alergias=$19,
			updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.BirthDate, p.Gender, p.Phone, p.Email, p.Address,
		p.PriorOccupation, p.SocialSituation, p.EconomicSituation, p.CulturalContext,
		p.PersonalValues, p.Concerns, p.Hopes,
		p.PrimaryDiagnosis, p.ChronicConditions, p.Medications, p.Allergies)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, callerID, nameContains string, limit, offset int) ([]*Patient, int, error) {
	where := `WHERE ` + visibleTo
	args := []interface{}{callerID}
	if nameContains != "" {
		where += ` AND p.nombre ILIKE '%' || $2 || '%'`
		args = append(args, nameContains)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients p `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + cols + ` FROM patients p ` + where +
		` ORDER BY p.updated_at DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, limit, offset)
	items, err := r.queryPatients(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repoPG) FindForCaller(ctx context.Context, callerID, nameContains string, limit int) ([]*Patient, error) {
	where := `WHERE ` + visibleTo
	args := []interface{}{callerID}
	if nameContains != "" {
		where += ` AND p.nombre ILIKE '%' || $2 || '%'`
		args = append(args, nameContains)
	}
	query := `SELECT ` + cols + ` FROM patients p ` + where +
		` ORDER BY p.updated_at DESC LIMIT ` + placeholder(len(args)+1)
	args = append(args, limit)

	items, err := r.queryPatients(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachActivePlans(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repoPG) GetForCaller(ctx context.Context, id uuid.UUID, callerID string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `
		SELECT `+cols+` FROM patients p WHERE p.id = $2 AND `+visibleTo, callerID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachActivePlans(ctx, []*Patient{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// attachActivePlans loads every patient's current canvas in one batched query.
func (r *repoPG) attachActivePlans(ctx context.Context, items []*Patient) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	plans, err := r.treatments.ActiveByPatients(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range items {
		p.ActivePlan = plans[p.ID]
	}
	return nil
}

func (r *repoPG) queryPatients(ctx context.Context, query string, args ...interface{}) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) HasAccess(ctx context.Context, patientID uuid.UUID, callerID string) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM patients p WHERE p.id = $2 AND `+visibleTo+`)`,
		callerID, patientID).Scan(&ok)
	return ok, err
}

func (r *repoPG) AddCollaborator(ctx context.Context, patientID uuid.UUID, userID string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_collaborators (patient_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, patientID, userID)
	return err
}

func (r *repoPG) RemoveCollaborator(ctx context.Context, patientID uuid.UUID, userID string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM patient_collaborators WHERE patient_id = $1 AND user_id = $2`, patientID, userID)
	return err
}

func (r *repoPG) Collaborators(ctx context.Context, patientID uuid.UUID) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT user_id FROM patient_collaborators WHERE patient_id = $1 ORDER BY added_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
