package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sonia-health/sonia/internal/domain/patient"
	"github.com/sonia-health/sonia/internal/domain/user"
	"github.com/sonia-health/sonia/internal/llm"
	"github.com/sonia-health/sonia/internal/platform/auth"
)

// ProfileSource supplies the caller's stored profile for prompt
// personalization. Implemented by the user service.
type ProfileSource interface {
	Get(ctx context.Context, callerID, tokenRole string) (*user.Profile, error)
}

// ProviderError wraps a completion-provider failure with its classified kind
// so the HTTP layer can map it to a status code.
type ProviderError struct {
	Kind llm.ErrorKind
	Err  error
}

func (e *ProviderError) Error() string { return e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

type ChatRequest struct {
	Message   string `json:"message"`
	PatientID string `json:"patientId,omitempty"`
	Context   string `json:"context,omitempty"`
}

type ChatResponse struct {
	Message       string `json:"message"`
	PatientsFound bool   `json:"pacientesEncontrados"`
}

// Options are the generation knobs and the per-call deadline for the
// completion provider.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Service runs one chat turn: classify the message, retrieve grounding
// records if the intent calls for any, format them, compose the prompt and
// call the completion provider. Stateless between turns.
type Service struct {
	retriever *Retriever
	profiles  ProfileSource
	provider  llm.Client
	opts      Options
	log       zerolog.Logger
}

func NewService(retriever *Retriever, profiles ProfileSource, provider llm.Client, opts Options, log zerolog.Logger) *Service {
	return &Service{retriever: retriever, profiles: profiles, provider: provider, opts: opts, log: log}
}

func (s *Service) Chat(ctx context.Context, req ChatRequest, callerID, role string) (*ChatResponse, error) {
	intent := Classify(req.Message)
	s.log.Debug().Int("intent", int(intent.Kind)).Str("name_hint", intent.PatientNameHint).Msg("chat message classified")

	records, looked := s.lookup(ctx, intent, req.PatientID, callerID)

	contextBlock := ""
	if looked {
		contextBlock = FormatContext(records, intent.PatientNameHint)
	}

	messages := Compose(contextBlock, req.Message, req.Context, s.callerProfile(ctx, callerID, role))

	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	reply, err := s.provider.Complete(callCtx, messages, llm.Params{
		Model:       s.opts.Model,
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
	})
	if err != nil {
		kind := llm.Classify(err)
		s.log.Error().Err(err).Int("kind", int(kind)).Msg("completion call failed")
		return nil, &ProviderError{Kind: kind, Err: err}
	}
	if reply == "" {
		reply = "No pude generar una respuesta."
	}

	return &ChatResponse{Message: reply, PatientsFound: looked}, nil
}

// lookup decides whether retrieval happens at all and runs it. The second
// return value reports that patient data was consulted, which drives both the
// context block and the pacientesEncontrados response flag.
func (s *Service) lookup(ctx context.Context, intent Intent, patientID, callerID string) ([]*patient.Patient, bool) {
	if patientID != "" {
		id, err := uuid.Parse(patientID)
		if err != nil {
			s.log.Warn().Str("patient_id", patientID).Msg("ignoring malformed patientId in chat request")
		} else {
			return s.retriever.ByID(ctx, id, callerID), true
		}
	}
	if intent.Kind == GeneralInfo {
		return nil, false
	}
	return s.retriever.Retrieve(ctx, intent, callerID), true
}

func (s *Service) callerProfile(ctx context.Context, callerID, role string) *CallerProfile {
	if s.profiles == nil {
		return nil
	}
	p, err := s.profiles.Get(ctx, callerID, role)
	if err != nil {
		s.log.Warn().Err(err).Msg("profile lookup failed, composing without it")
		return nil
	}
	if p == nil || p.FullName() == "" {
		return nil
	}
	cp := &CallerProfile{DisplayName: p.FullName(), RoleLabel: auth.RoleLabel(p.Role)}
	if p.Specialty != nil {
		cp.Specialty = *p.Specialty
	}
	return cp
}
