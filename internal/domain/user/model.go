package user

import "time"

// Profile is the application-side record for an authenticated user. The id
// is the subject claim of the caller's token, so a row may not exist until
// the user saves their profile for the first time.
//
// Specialty and Institution only apply to health professionals;
// PatientRelation only to caregivers and family members. Save blanks
// whichever set does not match the role.
type Profile struct {
	ID              string    `db:"id" json:"id"`
	Email           *string   `db:"email" json:"email,omitempty"`
	FirstName       string    `db:"nombre" json:"nombre"`
	LastName        string    `db:"apellido" json:"apellido"`
	Role            string    `db:"rol" json:"rol"`
	Specialty       *string   `db:"especialidad" json:"especialidad,omitempty"`
	Institution     *string   `db:"institucion" json:"institucion,omitempty"`
	PatientRelation *string   `db:"relacion_paciente" json:"relacionPaciente,omitempty"`
	Phone           *string   `db:"telefono" json:"telefono,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// FullName joins the name parts, tolerating either being empty.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
