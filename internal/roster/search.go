package roster

import (
	"strings"

	. "rcsc-server/internal/models"
)

// Search is a pure, case-insensitive substring match over name, phone
// and transaction ID. It never touches the store.
func (r *Roster) Search(term string) []Registration {
	rows := r.Snapshot()
	if term == "" {
		return rows
	}

	lowered := strings.ToLower(term)
	uppered := strings.ToUpper(term)

	matches := make([]Registration, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.FullName), lowered) ||
			strings.Contains(row.Phone, term) ||
			strings.Contains(row.TransactionID, uppered) {
			matches = append(matches, row)
		}
	}

	return matches
}
