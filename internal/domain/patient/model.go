package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/sonia-health/sonia/internal/domain/treatment"
)

// Patient maps to the patients table. Domain field names stay in Spanish on
// the wire so existing clients keep working; demographic and narrative fields
// are optional and render only when populated.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatorID string    `db:"created_by" json:"creadorId"`

	Name      string     `db:"nombre" json:"nombre"`
	Age       int        `db:"edad" json:"edad"`
	BirthDate *time.Time `db:"fecha_nacimiento" json:"fechaNacimiento,omitempty"`
	Gender    *string    `db:"genero" json:"genero,omitempty"`
	Phone     *string    `db:"telefono" json:"telefono,omitempty"`
	Email     *string    `db:"email" json:"email,omitempty"`
	Address   *string    `db:"direccion" json:"direccion,omitempty"`

	PriorOccupation   *string `db:"ocupacion_anterior" json:"ocupacionAnterior,omitempty"`
	SocialSituation   *string `db:"situacion_social" json:"situacionSocial,omitempty"`
	EconomicSituation *string `db:"situacion_economica" json:"situacionEconomica,omitempty"`
	CulturalContext   *string `db:"contexto_cultural" json:"contextoCultural,omitempty"`

	PersonalValues []string `db:"valores_personales" json:"valoresPersonales"`
	Concerns       []string `db:"preocupaciones" json:"preocupaciones"`
	Hopes          []string `db:"esperanzas" json:"esperanzas"`

	PrimaryDiagnosis  *string  `db:"diagnostico_principal" json:"diagnosticoPrincipal,omitempty"`
	ChronicConditions []string `db:"condiciones_cronicas" json:"condicionesCronicas"`
	Medications       []string `db:"medicamentos" json:"medicamentos"`
	Allergies         []string `db:"alergias" json:"alergias"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// ActivePlan is the most recently updated active treatment canvas,
	// prefetched on retrieval paths that need it. Never persisted from here.
	ActivePlan *treatment.Treatment `db:"-" json:"tratamientoActivo,omitempty"`
}
