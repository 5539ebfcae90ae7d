package assistant

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IntentKind says what a chat message is asking for.
type IntentKind int

const (
	GeneralInfo IntentKind = iota
	LookupAllPatients
	LookupSpecificPatient
)

// Intent is the classifier's reading of a message. PatientNameHint is set
// exactly when Kind is LookupSpecificPatient.
type Intent struct {
	Kind            IntentKind
	PatientNameHint string
}

// lookupKeywords is the care-domain vocabulary that signals the caller wants
// patient data. Matching is substring-based over the lower-cased message.
var lookupKeywords = []string{
	"paciente", "edad", "años", "teléfono", "telefono", "contacto",
	"medicamento", "medicina", "toma", "cita", "consulta",
	"diagnóstico", "diagnostico", "enfermedad", "condición",
	"tratamiento", "terapia", "información", "informacion",
	"datos", "dime", "muestra", "cuál", "cual", "quién", "quien",
	"cuándo", "cuando", "dónde", "donde", "metas", "objetivos",
}

// allPatientsPhrases unambiguously ask for the caller's whole patient list
// and win over any name found in the same message.
var allPatientsPhrases = []string{
	"qué pacientes", "que pacientes", "cuántos pacientes", "cuantos pacientes",
	"mis pacientes", "todos los pacientes", "lista de pacientes",
	"mostrar pacientes", "listar pacientes",
}

// Classify inspects a raw chat message and decides whether it asks about a
// specific patient, the caller's whole patient list, or nothing requiring
// patient data. Pure, single pass.
func Classify(message string) Intent {
	lower := strings.ToLower(message)

	for _, phrase := range allPatientsPhrases {
		if strings.Contains(lower, phrase) {
			return Intent{Kind: LookupAllPatients}
		}
	}

	hasKeyword := false
	for _, kw := range lookupKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}

	if name := firstProperNoun(message); name != "" && hasKeyword {
		return Intent{Kind: LookupSpecificPatient, PatientNameHint: name}
	}
	if hasKeyword {
		// Keyword with no recognizable name: search everything rather than
		// answering blind.
		return Intent{Kind: LookupAllPatients}
	}
	return Intent{Kind: GeneralInfo}
}

// firstProperNoun returns the first capitalized span in the message, merging
// at most two adjacent capitalized words to approximate "first + last name".
// Candidacy is judged on the raw token, so "¿Cuántos" is not a candidate
// (its first rune is punctuation), but the returned hint is stripped of
// surrounding punctuation so "Lopez?" yields "Lopez". Returns "" when no
// span qualifies.
func firstProperNoun(message string) string {
	words := strings.Fields(message)
	for i, raw := range words {
		if !nameCandidate(raw) {
			continue
		}
		w := trimPunct(raw)
		if i+1 < len(words) && startsUpper(words[i+1]) {
			return w + " " + trimPunct(words[i+1])
		}
		return w
	}
	return ""
}

func nameCandidate(w string) bool {
	return utf8.RuneCountInString(w) > 2 && startsUpper(w)
}

func startsUpper(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r)
}

func trimPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
