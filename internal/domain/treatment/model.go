package treatment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClinicalGoal is one entry of the metas_clinicas canvas block. The persisted
// shape drifted over time: the objective may live under "objetivo" or "tipo",
// and the target under "valor", "descripcion" or "meta". Keeping the entry as
// a loose map lets every stored variant round-trip untouched.
type ClinicalGoal map[string]interface{}

// Objective resolves the goal's human-readable objective label from whichever
// legacy key is populated.
func (g ClinicalGoal) Objective() string {
	for _, key := range []string{"objetivo", "tipo"} {
		if s := stringAt(g, key); s != "" {
			return s
		}
	}
	return ""
}

// Target resolves the goal's target value from whichever legacy key is
// populated. Numeric values are rendered as text.
func (g ClinicalGoal) Target() string {
	for _, key := range []string{"valor", "descripcion", "meta"} {
		if s := stringAt(g, key); s != "" {
			return s
		}
	}
	return ""
}

func stringAt(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Treatment maps to the treatments table: one Patient-Centered Treatment
// Canvas (LTCP). Wire names stay in Spanish for compatibility with the
// existing clients.
type Treatment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	Name      *string   `db:"nombre" json:"nombre,omitempty"`
	Active    bool      `db:"activo" json:"activo"`

	// Block 2: clinical and personal goals
	ClinicalGoals        []ClinicalGoal `db:"metas_clinicas" json:"metasClinicas"`
	PersonalGoals        []string       `db:"metas_personales" json:"metasPersonales"`
	DesiredQualityOfLife *string        `db:"calidad_vida_deseada" json:"calidadVidaDeseada,omitempty"`

	// Block 3: care relationship
	RelationshipType *string `db:"tipo_relacion" json:"tipoRelacion,omitempty"`
	DecisionProcess  *string `db:"proceso_decisiones" json:"procesoDecisiones,omitempty"`
	FamilyRole       *string `db:"rol_familia" json:"rolFamilia,omitempty"`

	// Block 4: care locations
	PhysicalCarePoints []string `db:"puntos_atencion_fisicos" json:"puntosAtencionFisicos"`
	DigitalPlatforms   []string `db:"plataformas_digitales" json:"plataformasDigitales"`

	// Block 5 (care activities) lives in its own table; see CareActivity.

	// Block 6: resources
	HumanResources        []string `db:"recursos_humanos" json:"recursosHumanos"`
	PhysicalResources     []string `db:"recursos_fisicos" json:"recursosFisicos"`
	IntellectualResources []string `db:"recursos_intelectuales" json:"recursosIntelectuales"`
	FinancialResources    []string `db:"recursos_financieros" json:"recursosFinancieros"`

	// Block 7: costs and burdens
	FinancialCosts   []string `db:"costos_financieros" json:"costosFinancieros"`
	TimeBurden       *string  `db:"carga_tiempo" json:"cargaTiempo,omitempty"`
	PhysicalBurden   *string  `db:"carga_fisica" json:"cargaFisica,omitempty"`
	EmotionalBurden  *string  `db:"carga_emocional" json:"cargaEmocional,omitempty"`
	SocialWorkBurden *string  `db:"carga_social_laboral" json:"cargaSocialLaboral,omitempty"`

	// Block 8: evaluation metrics
	ClinicalMetrics    []string `db:"metricas_clinicas" json:"metricasClinicas"`
	FunctionalOutcomes []string `db:"resultados_funcionales" json:"resultadosFuncionales"`
	ReportedOutcomes   []string `db:"resultados_reportados" json:"resultadosReportados"`
	SystemValue        []string `db:"valor_sistema" json:"valorSistema"`

	// Block 9: communication plan
	CommunicationFrequency *string  `db:"frecuencia_comunicacion" json:"frecuenciaComunicacion,omitempty"`
	CommunicationChannels  []string `db:"medios_comunicacion" json:"mediosComunicacion"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
