package export

import (
	"bytes"
	"fmt"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the bills
const SheetName = "账单"

// XLSXHeaders is the header row of the bill worksheet
var XLSXHeaders = []string{
	"房间号", "月份", "房租",
	"水用量", "水费",
	"电用量", "电费",
	"气用量", "气费",
	"物业单价", "物业费", "合计",
	"收款状态", "收款时间", "方式", "备注",
}

const (
	xlsxColumnWidth = 14
	// built-in number format "0.00"
	xlsxNumFmtTwoDecimals = 2
)

// WriteXLSX renders bills into a single-sheet workbook
func WriteXLSX(bills []*billing.BillWithRoom) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(XLSXHeaders))
	for i, h := range XLSXHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, b := range bills {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, xlsxRow(b)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(XLSXHeaders))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, xlsxColumnWidth); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	if len(bills) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: xlsxNumFmtTwoDecimals})
		if err != nil {
			return nil, err
		}
		// money and usage columns C..L
		if err := f.SetCellStyle(SheetName, "C2", fmt.Sprintf("L%d", len(bills)+1), style); err != nil {
			return nil, fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func xlsxRow(b *billing.BillWithRoom) *[]interface{} {
	c := b.Charges
	status := "未收"
	if b.IsPaid() {
		status = "已收"
	}
	paidAt := ""
	if b.Payment.PaidAt != nil {
		paidAt = b.Payment.PaidAt.Format(billing.PaidAtLayout)
	}

	row := []interface{}{
		b.RoomNo,
		b.Period.String(),
		c.RentFee.Round(2).InexactFloat64(),
		c.Used.Water.Round(2).InexactFloat64(),
		c.WaterFee.Round(2).InexactFloat64(),
		c.Used.Elec.Round(2).InexactFloat64(),
		c.ElecFee.Round(2).InexactFloat64(),
		c.Used.Gas.Round(2).InexactFloat64(),
		c.GasFee.Round(2).InexactFloat64(),
		c.PropertyRate.Round(2).InexactFloat64(),
		c.PropertyFee.Round(2).InexactFloat64(),
		c.Total.Round(2).InexactFloat64(),
		status,
		paidAt,
		b.Payment.Method,
		b.Payment.Remark,
	}
	return &row
}
