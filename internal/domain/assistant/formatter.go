package assistant

import (
	"fmt"
	"strings"

	"github.com/sonia-health/sonia/internal/domain/patient"
)

const contextHeader = "**INFORMACIÓN DE PACIENTES EN LA BASE DE DATOS:**"

// FormatContext renders retrieved patients into the grounding block embedded
// in the system prompt. Deterministic: same records, same bytes. Total: every
// optional field is guarded, so malformed records render partially instead of
// failing the turn.
func FormatContext(records []*patient.Patient, requestedName string) string {
	if len(records) == 0 {
		var b strings.Builder
		b.WriteString("**NOTA:** No se encontraron pacientes")
		if requestedName != "" {
			fmt.Fprintf(&b, " con el nombre %q", requestedName)
		}
		b.WriteString(" en la base de datos.")
		return b.String()
	}

	blocks := make([]string, len(records))
	for i, p := range records {
		blocks[i] = formatPatient(p)
	}
	return contextHeader + "\n\n" + strings.Join(blocks, "\n\n---\n\n")
}

func formatPatient(p *patient.Patient) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("**%s**", p.Name))
	lines = append(lines, fmt.Sprintf("- Edad: %d años", p.Age))

	optional := func(label string, v *string) {
		if v != nil && *v != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, *v))
		}
	}
	joined := func(label string, vs []string) {
		if len(vs) > 0 {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, strings.Join(vs, ", ")))
		}
	}

	optional("Género", p.Gender)
	optional("Teléfono", p.Phone)
	optional("Email", p.Email)
	optional("Situación Social", p.SocialSituation)
	optional("Situación Económica", p.EconomicSituation)
	optional("Contexto Cultural", p.CulturalContext)
	optional("Ocupación Anterior", p.PriorOccupation)

	joined("Valores", p.PersonalValues)
	joined("Preocupaciones", p.Concerns)
	joined("Esperanzas", p.Hopes)

	if plan := p.ActivePlan; plan != nil {
		joined("Metas Personales", plan.PersonalGoals)
		optional("Calidad de Vida Deseada", plan.DesiredQualityOfLife)
		if len(plan.ClinicalGoals) > 0 {
			goals := make([]string, len(plan.ClinicalGoals))
			for i, g := range plan.ClinicalGoals {
				goals[i] = g.Objective() + ": " + g.Target()
			}
			lines = append(lines, "- Metas Clínicas: "+strings.Join(goals, ", "))
		}
	}

	return strings.Join(lines, "\n")
}
