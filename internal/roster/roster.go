// Package roster maintains a dashboard session's live view of all
// registrations: one bulk read, then change events applied in arrival
// order. Every open session converges on the same state because every
// session applies every event, including those caused by its own writes.
package roster

import (
	"encoding/json"
	"sync"

	"rcsc-server/internal/events"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"
)

type Roster struct {
	mu   sync.RWMutex
	rows []Registration
	log  logger.Logger
}

func New() *Roster {
	return &Roster{
		log: logger.New("roster"),
	}
}

// Load replaces the collection with a bulk snapshot, assumed already
// ordered newest first.
func (r *Roster) Load(rows []Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = make([]Registration, len(rows))
	copy(r.rows, rows)
}

// Apply reconciles one change event. Events are trusted to arrive in
// commit order per row; nothing is reordered or deduplicated here.
func (r *Roster) Apply(event events.Event) {
	log := r.log.Function("Apply")

	switch event.Type {
	case events.TypeInsert:
		row, err := decodeRow(event.Data["new"])
		if err != nil {
			log.Er("failed to decode insert event", err, "eventID", event.ID)
			return
		}
		r.prepend(row)
	case events.TypeUpdate:
		row, err := decodeRow(event.Data["new"])
		if err != nil {
			log.Er("failed to decode update event", err, "eventID", event.ID)
			return
		}
		r.replace(row)
	case events.TypeDelete:
		id, ok := decodeDeletedID(event.Data["old"])
		if !ok {
			log.ErMsg("delete event without row id", "eventID", event.ID)
			return
		}
		r.remove(id)
	}
}

// prepend keeps descending-recency order: new rows are always newest.
func (r *Roster) prepend(row Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = append([]Registration{row}, r.rows...)
}

// replace swaps in the updated row wholesale.
func (r *Roster) replace(row Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == row.ID {
			r.rows[i] = row
			return
		}
	}
}

func (r *Roster) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the current collection.
func (r *Roster) Snapshot() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]Registration, len(r.rows))
	copy(rows, r.rows)
	return rows
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func (r *Roster) get(id int) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.rows {
		if r.rows[i].ID == id {
			return r.rows[i], true
		}
	}
	return Registration{}, false
}

// decodeRow converts the event payload (generic JSON object) back into a
// typed row.
func decodeRow(payload any) (Registration, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Registration{}, err
	}

	var row Registration
	if err := json.Unmarshal(raw, &row); err != nil {
		return Registration{}, err
	}

	return row, nil
}

func decodeDeletedID(payload any) (int, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}

	switch id := obj["id"].(type) {
	case float64:
		return int(id), true
	case int:
		return id, true
	default:
		return 0, false
	}
}
