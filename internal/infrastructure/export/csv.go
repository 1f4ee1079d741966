package export

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/rentdesk/backend/internal/domain/billing"
)

// WriteCSV renders bills as CSV with an English header row
func WriteCSV(bills []*billing.BillWithRoom) ([]byte, error) {
	rows := NewBillRows(bills)

	var buf bytes.Buffer
	if err := gocsv.Marshal(&rows, &buf); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
