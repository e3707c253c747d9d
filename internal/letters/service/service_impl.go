package service

import (
	"context"
	"fmt"
	"strings"

	lettersdomain "github.com/chatgptnotes/esic-billing/internal/letters/domain"
	"github.com/chatgptnotes/esic-billing/internal/providers/ai"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const systemPrompt = "You are a medical documentation assistant at an Indian hospital. " +
	"Write formal, factual clinical documents for ESIC/CGHS claims. " +
	"Use only the details provided; do not invent findings."

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Provider ai.Provider
}

type Service struct {
	log      *zap.Logger
	provider ai.Provider
}

func NewService(p ServiceParam) lettersdomain.Service {
	return &Service{
		log:      p.Log.Named("letters.service"),
		provider: p.Provider,
	}
}

func (s *Service) Generate(ctx context.Context, req lettersdomain.GenerateRequest) (lettersdomain.GenerateResponse, error) {
	if strings.TrimSpace(req.VisitID) == "" {
		return lettersdomain.GenerateResponse{}, lettersdomain.ErrInvalidVisit
	}
	if _, err := lettersdomain.ParseKind(string(req.Kind)); err != nil {
		return lettersdomain.GenerateResponse{}, err
	}

	requestID := uuid.NewString()
	log := s.log.With(
		zap.String("request_id", requestID),
		zap.String("visit_id", req.VisitID),
		zap.String("kind", string(req.Kind)),
	)

	content, err := s.provider.Complete(ctx, ai.CompletionRequest{
		System: systemPrompt,
		Prompt: buildPrompt(req),
	})
	if err == nil && strings.TrimSpace(content) != "" {
		log.Info("letter generated")
		return lettersdomain.GenerateResponse{
			RequestID: requestID,
			Kind:      req.Kind,
			Content:   content,
		}, nil
	}

	// Provider trouble never blocks the clinician; hand back the template.
	log.Warn("letter generation fell back to template", zap.Error(err))
	fallback, ferr := renderFallback(req)
	if ferr != nil {
		return lettersdomain.GenerateResponse{}, ferr
	}
	return lettersdomain.GenerateResponse{
		RequestID: requestID,
		Kind:      req.Kind,
		Content:   fallback,
		Fallback:  true,
	}, nil
}

func buildPrompt(req lettersdomain.GenerateRequest) string {
	var b strings.Builder

	switch req.Kind {
	case lettersdomain.KindDischargeSummary:
		b.WriteString("Draft a discharge summary for the following inpatient admission.\n")
	case lettersdomain.KindApprovalLetter:
		b.WriteString("Draft a treatment approval request letter addressed to the ESIC medical officer.\n")
	case lettersdomain.KindOTNotes:
		b.WriteString("Draft operation theatre notes for the following procedure.\n")
	}

	fmt.Fprintf(&b, "Patient: %s", req.Patient.Name)
	if req.Patient.Age != "" {
		fmt.Fprintf(&b, ", %s", req.Patient.Age)
	}
	if req.Patient.Sex != "" {
		fmt.Fprintf(&b, ", %s", req.Patient.Sex)
	}
	b.WriteString("\n")
	if req.Patient.ClaimID != "" {
		fmt.Fprintf(&b, "Claim ID: %s\n", req.Patient.ClaimID)
	}
	if len(req.Diagnoses) > 0 {
		fmt.Fprintf(&b, "Diagnoses: %s\n", strings.Join(req.Diagnoses, "; "))
	}
	if len(req.Surgeries) > 0 {
		fmt.Fprintf(&b, "Procedures: %s\n", strings.Join(req.Surgeries, "; "))
	}
	if req.Extra != "" {
		fmt.Fprintf(&b, "Additional notes: %s\n", req.Extra)
	}

	return b.String()
}
