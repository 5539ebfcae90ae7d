package assistant

import (
	"strings"
	"testing"

	"github.com/sonia-health/sonia/internal/llm"
)

func TestComposeProducesSystemAndUserPair(t *testing.T) {
	msgs := Compose("CONTEXTO", "hola", "", nil)
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[1].Role != llm.RoleUser {
		t.Fatalf("roles = %q, %q; want system, user", msgs[0].Role, msgs[1].Role)
	}
	if !strings.Contains(msgs[0].Content, "CONTEXTO") {
		t.Error("context block not embedded in system message")
	}
	if !strings.Contains(msgs[0].Content, "cuidados paliativos") {
		t.Error("persona missing from system message")
	}
	if !strings.Contains(msgs[0].Content, "INSTRUCCIONES") {
		t.Error("instructions missing from system message")
	}
	if msgs[1].Content != "hola" {
		t.Errorf("user message = %q, want %q", msgs[1].Content, "hola")
	}
}

func TestComposeExternalContextPrepended(t *testing.T) {
	msgs := Compose("", "¿y ahora?", "antes hablamos de Ana", nil)
	want := "antes hablamos de Ana\n\n¿y ahora?"
	if msgs[1].Content != want {
		t.Errorf("user message = %q, want %q", msgs[1].Content, want)
	}
}

func TestComposeOmitsEmptyContextBlock(t *testing.T) {
	msgs := Compose("", "hola", "", nil)
	if strings.Contains(msgs[0].Content, "\n\n\n") {
		t.Errorf("system message has stray blank section:\n%s", msgs[0].Content)
	}
}

func TestComposeWithCallerProfile(t *testing.T) {
	profile := &CallerProfile{DisplayName: "Laura Pérez", RoleLabel: "profesional de salud", Specialty: "oncología"}
	msgs := Compose("", "hola", "", profile)
	sys := msgs[0].Content
	for _, want := range []string{"Laura Pérez", "profesional de salud", "oncología"} {
		if !strings.Contains(sys, want) {
			t.Errorf("system message missing %q:\n%s", want, sys)
		}
	}
}
