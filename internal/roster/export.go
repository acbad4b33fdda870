package roster

import (
	"strconv"
	"strings"
	"time"

	. "rcsc-server/internal/models"
)

var csvHeader = []string{
	"ID", "Created At", "Name", "Class", "Section", "C/No", "Wing",
	"Email", "Phone", "Whatsapp", "Membership Type", "Size", "Bkash",
	"TrxID", "Status", "T-Shirt Given", "ID Given", "IP",
}

// ExportCSV projects rows into the dashboard's flat export format. Rows
// are joined with plain commas; embedded commas in free-text fields are
// not escaped, which is part of the documented export contract. Pure:
// the same collection always produces byte-identical output.
func ExportCSV(rows []Registration) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))

	for _, row := range rows {
		fields := []string{
			strconv.Itoa(row.ID),
			row.CreatedAt.UTC().Format(time.RFC3339),
			row.FullName,
			row.ClassGrade,
			row.Section,
			row.CNo,
			row.Wing,
			row.Email,
			row.Phone,
			stringOr(row.Whatsapp, "-"),
			row.MembershipType,
			stringOr(row.TshirtSize, "N/A"),
			row.BkashNumber,
			row.TransactionID,
			statusLabel(row.IsValidated),
			yesNo(row.TshirtGiven),
			yesNo(row.IDCardGiven),
			stringOr(row.IPAddress, "Unknown"),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}

	return b.String()
}

func (r *Roster) ExportCSV() string {
	return ExportCSV(r.Snapshot())
}

func statusLabel(validated bool) string {
	if validated {
		return "Verified"
	}
	return "Pending"
}

func yesNo(flag *bool) string {
	if flag != nil && *flag {
		return "Yes"
	}
	return "No"
}

func stringOr(value *string, fallback string) string {
	if value != nil && *value != "" {
		return *value
	}
	return fallback
}
