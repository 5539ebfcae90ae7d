package treatment

import (
	"time"

	"github.com/google/uuid"
)

// CareActivity is one scheduled care action of canvas Block 5. Activities
// hang off the patient's active canvas; posting activities for a patient
// without one creates a default canvas first.
type CareActivity struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TreatmentID uuid.UUID `db:"treatment_id" json:"treatmentId"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	Type        string    `db:"tipo" json:"tipo"`
	Title       string    `db:"titulo" json:"titulo"`
	Description *string   `db:"descripcion" json:"descripcion,omitempty"`
	StartDate   time.Time `db:"fecha_inicio" json:"fechaInicio"`
	Recurring   bool      `db:"es_recurrente" json:"esRecurrente"`
	Frequency   *string   `db:"frecuencia" json:"frecuencia,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
