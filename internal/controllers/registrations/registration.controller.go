package registrationController

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"rcsc-server/config"
	"rcsc-server/internal/events"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"
	"rcsc-server/internal/repositories"
	"rcsc-server/internal/services"
	"rcsc-server/internal/utils"
	"rcsc-server/internal/validation"

	"gorm.io/gorm"
)

type RegistrationController struct {
	registrationRepo repositories.RegistrationRepository
	transactions     *services.TransactionService
	validator        *validation.Validator
	eventBus         *events.EventBus
	Config           config.Config
	log              logger.Logger
}

func New(
	eventBus *events.EventBus,
	registrationRepo repositories.RegistrationRepository,
	transactions *services.TransactionService,
	validator *validation.Validator,
	config config.Config,
) *RegistrationController {
	return &RegistrationController{
		registrationRepo: registrationRepo,
		transactions:     transactions,
		validator:        validator,
		eventBus:         eventBus,
		Config:           config,
		log:              logger.New("RegistrationController"),
	}
}

// IntakeMeta is the request metadata captured server-side at submission.
type IntakeMeta struct {
	UserAgent    string
	ForwardedFor string
	RemoteIP     string
}

// ClientIP takes the first hop of the forwarded-for chain as the
// originating client, defaulting to the sentinel "Unknown".
func (m IntakeMeta) ClientIP() string {
	if m.ForwardedFor != "" {
		first := strings.TrimSpace(strings.SplitN(m.ForwardedFor, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if m.RemoteIP != "" {
		return m.RemoteIP
	}
	return "Unknown"
}

// Intake is the only write path that creates registrations. It validates
// and normalizes the payload, then performs a deduplicated insert.
// Validation failures come back as field errors, duplicate transaction
// IDs as ErrDuplicateTransactionID.
func (rc *RegistrationController) Intake(
	ctx context.Context,
	req *RegistrationRequest,
	meta IntakeMeta,
) (*Registration, validation.FieldErrors, error) {
	log := rc.log.Function("Intake")

	if fieldErrors := rc.validator.ValidateRegistration(req); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	userAgent := meta.UserAgent
	if userAgent == "" {
		userAgent = "Unknown"
	}
	ip := meta.ClientIP()

	registration := Registration{
		FullName:       req.FullName,
		ClassGrade:     req.Class,
		Section:        req.Section,
		CNo:            req.CNo,
		Wing:           req.Wing,
		Email:          req.Email,
		Phone:          utils.NormalizeContactNumber(req.Phone),
		Whatsapp:       optional(utils.NormalizeContactNumber(req.Whatsapp)),
		MembershipType: req.MembershipType,
		TshirtSize:     optional(req.TshirtSize),
		BkashNumber:    utils.NormalizeContactNumber(req.BkashNumber),
		TransactionID:  strings.ToUpper(req.TransactionID),
		IsValidated:    false,
		UserAgent:      &userAgent,
		IPAddress:      &ip,
		BrowserTime:    optional(req.BrowserTime),
	}

	if err := rc.registrationRepo.Create(ctx, &registration); err != nil {
		if errors.Is(err, ErrDuplicateTransactionID) {
			return nil, nil, err
		}
		return nil, nil, log.Err("failed to insert registration", err,
			"transactionID", registration.TransactionID)
	}

	rc.publish(events.TypeInsert, map[string]any{"new": rowPayload(&registration)})

	return &registration, nil, nil
}

func (rc *RegistrationController) GetAll(ctx context.Context) ([]Registration, error) {
	registrations, err := rc.registrationRepo.GetAll(ctx)
	if err != nil {
		return nil, rc.log.Function("GetAll").Err("failed to get registrations", err)
	}

	return registrations, nil
}

// Update pushes a whitelisted set of mutable fields as one atomic
// statement, re-normalizing contact numbers first.
func (rc *RegistrationController) Update(
	ctx context.Context,
	id int,
	update *RegistrationUpdate,
) (*Registration, error) {
	log := rc.log.Function("Update")

	normalizeField(update.Phone)
	normalizeField(update.Whatsapp)
	normalizeField(update.BkashNumber)
	if update.TransactionID != nil {
		upper := strings.ToUpper(*update.TransactionID)
		update.TransactionID = &upper
	}

	// the update and its read-back run in one transaction so the
	// published row is exactly what was committed
	var registration *Registration
	err := rc.transactions.Execute(ctx, func(txCtx context.Context) error {
		var txErr error
		registration, txErr = rc.registrationRepo.Update(txCtx, id, update.Changes())
		return txErr
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateTransactionID) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to update registration", err, "id", id)
	}

	rc.publish(events.TypeUpdate, map[string]any{"new": rowPayload(registration)})

	return registration, nil
}

// Delete is terminal; the realtime delete event is what removes the row
// from every open session's view.
func (rc *RegistrationController) Delete(ctx context.Context, id int) error {
	log := rc.log.Function("Delete")

	if err := rc.registrationRepo.Delete(ctx, id); err != nil {
		return log.Err("failed to delete registration", err, "id", id)
	}

	rc.publish(events.TypeDelete, map[string]any{"old": map[string]any{"id": id}})

	return nil
}

// IPAddresses lists the distinct captured submission addresses.
func (rc *RegistrationController) IPAddresses(ctx context.Context) ([]string, error) {
	registrations, err := rc.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var ips []string
	for _, registration := range registrations {
		if registration.IPAddress != nil {
			ips = append(ips, *registration.IPAddress)
		}
	}

	return ips, nil
}

func (rc *RegistrationController) publish(eventType string, data map[string]any) {
	log := rc.log.Function("publish")

	event := events.Event{
		Type: eventType,
		Data: data,
	}

	// The row is already durable; a failed fan-out must not fail the
	// request. Sessions repair on their next bulk read.
	if err := rc.eventBus.Publish(events.ChannelRegistrations, event); err != nil {
		log.Warn("failed to publish change event", "type", eventType, "error", err)
	}
}

// rowPayload round-trips the row through JSON so event data carries the
// same column-keyed shape as REST responses.
func rowPayload(registration *Registration) map[string]any {
	raw, err := json.Marshal(registration)
	if err != nil {
		return nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}

	return payload
}

func normalizeField(field *string) {
	if field != nil {
		*field = utils.NormalizeContactNumber(*field)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
