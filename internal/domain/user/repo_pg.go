package user

import (
	"context"
	"errors"

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

func (r *repoPG) GetByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, email, nombre, apellido, rol, especialidad, institucion, relacion_paciente, telefono, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Role, &p.Specialty, &p.Institution, &p.PatientRelation, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Upsert(ctx context.Context, p *Profile) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO users (id, email, nombre, apellido, rol, especialidad, institucion, relacion_paciente, telefono)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			nombre = EXCLUDED.nombre,
			apellido = EXCLUDED.apellido,
			rol = EXCLUDED.rol,
			especialidad = EXCLUDED.especialidad,
			institucion = EXCLUDED.institucion,
			relacion_paciente = EXCLUDED.relacion_paciente,
			telefono = EXCLUDED.telefono,
			updated_at = NOW()`,
		p.ID, p.Email, p.FirstName, p.LastName, p.Role, p.Specialty, p.Institution, p.PatientRelation, p.Phone)
	return err
}
