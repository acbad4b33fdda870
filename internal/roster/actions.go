package roster

import (
	"context"
	"errors"
	"strings"

	. "rcsc-server/internal/models"
	"rcsc-server/internal/utils"
)

// ErrDeleteNotConfirmed is returned when the destructive-action guard
// declines.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// ErrRowNotFound means the targeted row is no longer in the local view,
// usually because another session deleted it.
var ErrRowNotFound = errors.New("registration not in roster")

// Store is the server surface moderation actions write through.
type Store interface {
	FetchAll(ctx context.Context) ([]Registration, error)
	Update(ctx context.Context, id int, update RegistrationUpdate) (*Registration, error)
	Delete(ctx context.Context, id int) error
}

// ActionState tracks an optimistic mutation: local state flips first,
// then either the write commits or the flip is rolled back.
type ActionState int

const (
	ActionIdle ActionState = iota
	ActionPending
	ActionCommitted
	ActionRolledBack
)

// ToggleValidation flips is_validated optimistically, then issues the
// update. On failure the local value is restored to exactly its
// pre-toggle state and the error surfaced — local and remote state are
// never left silently diverged.
func (r *Roster) ToggleValidation(ctx context.Context, store Store, id int) (ActionState, error) {
	row, ok := r.get(id)
	if !ok {
		return ActionIdle, ErrRowNotFound
	}

	prev := row.IsValidated
	next := !prev

	r.setValidated(id, next)

	update := RegistrationUpdate{IsValidated: &next}
	if _, err := store.Update(ctx, id, update); err != nil {
		r.setValidated(id, prev)
		return ActionRolledBack, err
	}

	return ActionCommitted, nil
}

func (r *Roster) setValidated(id int, value bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].IsValidated = value
			return
		}
	}
}

// SaveEdit pushes the whitelisted mutable fields as a single update,
// re-normalizing contact numbers first. Local state is replaced only on
// success; on failure the caller keeps its dialog open and nothing local
// moves.
func (r *Roster) SaveEdit(ctx context.Context, store Store, id int, update RegistrationUpdate) (*Registration, error) {
	if _, ok := r.get(id); !ok {
		return nil, ErrRowNotFound
	}

	normalizeContact(update.Phone)
	normalizeContact(update.Whatsapp)
	normalizeContact(update.BkashNumber)
	if update.TransactionID != nil {
		upper := strings.ToUpper(*update.TransactionID)
		update.TransactionID = &upper
	}

	saved, err := store.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	r.replace(*saved)
	return saved, nil
}

// Delete issues the terminal delete after the confirmation guard
// passes. The row leaves local state via the realtime delete event, not
// here, so the view stays correct even when another session deletes the
// same row concurrently.
func (r *Roster) Delete(ctx context.Context, store Store, id int, confirm func() bool) error {
	if confirm == nil || !confirm() {
		return ErrDeleteNotConfirmed
	}

	return store.Delete(ctx, id)
}

// Refresh rereads the full collection from the store.
func (r *Roster) Refresh(ctx context.Context, store Store) error {
	rows, err := store.FetchAll(ctx)
	if err != nil {
		return err
	}

	r.Load(rows)
	return nil
}

func normalizeContact(field *string) {
	if field != nil {
		*field = utils.NormalizeContactNumber(*field)
	}
}
