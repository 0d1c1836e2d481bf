package employees

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var headerCaser = cases.Title(language.English)

// WriteRosterCSV writes the employee roster as CSV. Skill lists are flattened
// into a single "name:level" column.
func WriteRosterCSV(w io.Writer, roster []Employee) error {
	cw := csv.NewWriter(w)
	header := []string{"email", "name", "department", "skills", "active"}
	for i, col := range header {
		header[i] = headerCaser.String(col)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("employees: write csv header: %w", err)
	}
	for _, e := range roster {
		skills := make([]string, len(e.Skills))
		for i, s := range e.Skills {
			skills[i] = s.Name + ":" + strconv.Itoa(s.Level)
		}
		record := []string{
			e.Email,
			e.Name,
			headerCaser.String(e.Department),
			strings.Join(skills, "; "),
			strconv.FormatBool(e.IsActive),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("employees: write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
