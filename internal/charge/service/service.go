// Package service relays land charge submissions and updates to the
// registration service after checking them against the search service.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gowebpki/jcs"

	"maintain/internal/audit"
	"maintain/internal/charge/chargeid"
	"maintain/internal/charge/client"
	dErrors "maintain/pkg/domain-errors"
	"maintain/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/charge-mocks.go -package=mocks Mint,Search

const (
	fieldChargeID         = "local-land-charge"
	fieldRegistrationDate = "registration-date"
	fieldStartDate        = "start-date"
	fieldEndDate          = "end-date"

	codeAddToRegister   = "ADD_TO_REGISTER"
	codeChargeIDChanged = "U100"
	codeChargeNotFound  = "U101"
)

// Mint is the registration service.
type Mint interface {
	AddToRegister(ctx context.Context, payload []byte) (*client.Response, error)
}

// Search is the lookup service.
type Search interface {
	GetCharge(ctx context.Context, ref string) (*client.Response, error)
}

// Charge is a land charge record as submitted. Only the fields the relay
// reads or stamps are interpreted; everything else passes through.
type Charge map[string]any

// Result is the reply to return to the caller, already serialised.
type Result struct {
	Status int
	Body   []byte
}

// Service relays charges to mint.
type Service struct {
	mint    Mint
	search  Search
	audit   *audit.Publisher
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAudit sets the audit publisher.
func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

// WithMetrics sets the business metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates a charge relay.
func New(mint Mint, search Search, opts ...Option) *Service {
	s := &Service{mint: mint, search: search}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Submit stamps the registration and start dates and registers a new charge.
func (s *Service) Submit(ctx context.Context, charge Charge) (*Result, error) {
	today := requestcontext.Now(ctx).Format(time.DateOnly)
	if _, ok := charge[fieldRegistrationDate]; !ok {
		charge[fieldRegistrationDate] = today
	}
	charge[fieldStartDate] = today

	s.logger.InfoContext(ctx, "sending charge to mint")
	res, reg, err := s.addToRegister(ctx, charge)
	if err != nil || reg == nil {
		return res, err
	}

	s.metrics.IncCharge(ActionAdded)
	s.logger.InfoContext(ctx, fmt.Sprintf("New charge successfully added. Charge ID: '%s'", reg.ref),
		"performance_platform", true,
		"land_charge_id", reg.ref,
	)
	s.emit(ctx, audit.ActionChargeCreated, reg)
	return res, nil
}

// Update re-registers an existing charge. The charge number in the payload
// must match id, and the charge must already be known to search.
func (s *Service) Update(ctx context.Context, id string, charge Charge) (*Result, error) {
	raw, ok := charge[fieldChargeID]
	if !ok || render(raw) != id {
		s.logger.WarnContext(ctx, fmt.Sprintf("Cannot change local-land-charge field for charge '%s'", id))
		return nil, dErrors.New(dErrors.CodeBadRequest, "Cannot change local-land-charge field").
			WithExternalCode(codeChargeIDChanged)
	}

	notFound := dErrors.New(dErrors.CodeBadRequest, "Cannot find local land charge").
		WithExternalCode(codeChargeNotFound)
	ref, err := chargeid.EncodeString(id)
	if err != nil {
		s.logger.WarnContext(ctx, "charge number cannot be encoded", "charge", id, "error", err)
		return nil, notFound
	}

	found, err := s.search.GetCharge(ctx, ref)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "Failed to look up local land charge")
	}
	if found.Status != http.StatusOK {
		s.logger.ErrorContext(ctx, "charge does not exist", "land_charge_id", ref, "status", found.Status)
		return nil, notFound
	}

	s.logger.InfoContext(ctx, "sending charge to mint")
	res, reg, err := s.addToRegister(ctx, charge)
	if err != nil || reg == nil {
		return res, err
	}

	action, event, msg := ActionUpdated, audit.ActionChargeUpdated, "Successfully updated charge '%s'"
	if truthy(charge[fieldEndDate]) {
		action, event, msg = ActionCancelled, audit.ActionChargeCancelled, "Successfully cancelled charge '%s'"
	}
	s.metrics.IncCharge(action)
	s.logger.InfoContext(ctx, fmt.Sprintf(msg, id),
		"performance_platform", true,
		"land_charge_id", reg.ref,
	)
	s.emit(ctx, event, reg)
	return res, nil
}

// registration is what mint accepted.
type registration struct {
	entryNumber any
	ref         string
}

// addToRegister posts charge to mint. A nil registration with a nil error
// means mint rejected the charge and res carries its reply.
func (s *Service) addToRegister(ctx context.Context, charge Charge) (*Result, *registration, error) {
	payload, err := canonical(charge)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "Request body could not be serialised")
	}

	resp, err := s.mint.AddToRegister(ctx, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, fmt.Sprintf("Failed to send land charge to mint-api. Exception - %v", err))
		return nil, nil, dErrors.Wrap(err, dErrors.CodeUpstream, "Failed to send land charge to mint-api").
			WithExternalCode(codeAddToRegister)
	}

	switch resp.Status {
	case http.StatusAccepted:
	case http.StatusBadRequest:
		s.logger.ErrorContext(ctx, rejectedMessage(resp))
		body, err := jcs.Transform(resp.Body)
		if err != nil {
			body = resp.Body
		}
		return &Result{Status: resp.Status, Body: body}, nil, nil
	default:
		msg := rejectedMessage(resp)
		s.logger.ErrorContext(ctx, msg)
		return nil, nil, dErrors.Wrap(errors.New(msg), dErrors.CodeUpstream, "Failed to send land charge to mint-api").
			WithExternalCode(codeAddToRegister)
	}

	var accepted map[string]any
	if err := decodeNumbers(resp.Body, &accepted); err != nil {
		return nil, nil, upstreamContract(err)
	}
	ref, err := chargeid.EncodeString(render(accepted[fieldChargeID]))
	if err != nil {
		return nil, nil, upstreamContract(err)
	}
	reg := &registration{entryNumber: accepted["entry_number"], ref: ref}

	body, err := canonical(map[string]any{
		"entry_number":      reg.entryNumber,
		"land_charge_id":    reg.ref,
		"registration_date": charge[fieldRegistrationDate],
	})
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to build charge response")
	}
	return &Result{Status: http.StatusAccepted, Body: body}, reg, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, reg *registration) {
	entry := render(reg.entryNumber)
	if action == audit.ActionChargeCreated {
		s.logger.InfoContext(ctx, fmt.Sprintf("New charge created. entry number: %s", entry))
	}
	err := s.audit.Emit(ctx, audit.Event{
		Action:      action,
		EntryNumber: entry,
		ChargeID:    reg.ref,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}

func rejectedMessage(resp *client.Response) string {
	return fmt.Sprintf("Failed to send land charge to mint-api. Status '%v', Message '%v'", resp.Status, string(resp.Body))
}

func upstreamContract(err error) error {
	return dErrors.Wrap(err, dErrors.CodeUpstream, "Unexpected response from mint-api").
		WithExternalCode(codeAddToRegister)
}

// canonical serialises v with sorted keys and no insignificant whitespace.
func canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(raw)
}

// DecodeCharge parses a request body into a Charge, keeping numbers exact.
func DecodeCharge(body []byte) (Charge, error) {
	var charge Charge
	if err := decodeNumbers(body, &charge); err != nil || charge == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Request body must be a JSON object")
	}
	return charge, nil
}

func decodeNumbers(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(out)
}

// render formats a JSON scalar the way it appears in a URL path.
func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// truthy reports whether a JSON value is present and non-empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
