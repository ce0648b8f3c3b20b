package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const maxBodyBytes = 64 << 10

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	resp, err := s.orch.Render(r.Context(), orchestrator.Request{Session: wizard.NewSession()})
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writePage(w, http.StatusOK, resp)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}

	step, err := parseStep(r.PostForm.Get(render.StepFieldName))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	action, err := wizard.ParseAction(r.PostForm.Get(render.ActionFieldName))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	raw := make(map[string]any, len(r.PostForm))
	for key, vals := range r.PostForm {
		raw[key] = vals
	}
	values, err := wizard.DecodeValues(raw)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	resp, err := s.orch.Handle(r.Context(), orchestrator.Request{
		Session: wizard.Session{Step: step},
		Action:  action,
		Values:  values,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, wizard.ErrStepOutOfRange) || errors.Is(err, wizard.ErrBackDisabled) {
			status = http.StatusBadRequest
		}
		s.writeError(w, r, status, err)
		return
	}

	status := http.StatusOK
	if resp.SubmitErr != nil {
		status = http.StatusBadGateway
	}
	s.writePage(w, status, resp)
}

type validateRequest struct {
	Step   int            `json:"step"`
	Values map[string]any `json:"values"`
}

type validateResponse struct {
	Accepted *wizard.FormValues `json:"accepted"`
	Errors   wizard.ErrorMap    `json:"errors"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	values, err := wizard.DecodeValues(body.Values)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.orch.Wizard().Validator().Validate(wizard.StepIndex(body.Step), values)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, wizard.ErrStepOutOfRange) {
			status = http.StatusBadRequest
		}
		s.writeError(w, r, status, err)
		return
	}

	resp := validateResponse{Accepted: result.Accepted, Errors: result.Errors}
	if resp.Errors == nil {
		resp.Errors = wizard.ErrorMap{}
	}
	status := http.StatusOK
	if !result.Passed() {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, r, status, resp)
}

func (s *Server) writePage(w http.ResponseWriter, status int, resp orchestrator.Response) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(resp.Body)
}

func parseStep(raw string) (wizard.StepIndex, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return wizard.StepFirst, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", wizard.ErrStepOutOfRange, raw)
	}
	return wizard.StepIndex(n), nil
}
