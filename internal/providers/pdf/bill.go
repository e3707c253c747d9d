package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/chatgptnotes/esic-billing/internal/billdoc"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) RenderBill(ctx context.Context, data BillData) (io.Reader, error) {
	if data.Doc == nil {
		return nil, fmt.Errorf("bill pdf: missing document")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.HospitalName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	if data.HospitalAddress != "" {
		m.AddRow(6,
			text.NewCol(12, data.HospitalAddress, props.Text{Size: 9, Align: align.Center}),
		)
	}
	m.AddRow(10,
		text.NewCol(12, "FINAL BILL", props.Text{
			Size:  13,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   2,
		}),
	)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Bill No: "+data.BillNo, props.Text{Top: 0, Size: 9}),
			text.New("Bill Date: "+data.BillDate, props.Text{Top: 5, Size: 9}),
			text.New("Category: "+data.Category, props.Text{Top: 10, Size: 9}),
		),
		col.New(6).Add(
			text.New("Visit ID: "+data.VisitID, props.Text{Top: 0, Size: 9}),
			text.New("Claim ID: "+data.ClaimID, props.Text{Top: 5, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(1, "Sr", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(5, "Particulars", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Code", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Doc.Items {
		switch item.Kind {
		case billdoc.KindSection:
			m.AddRow(8,
				text.NewCol(12, item.Section.RenderTitle(), props.Text{
					Style: fontstyle.Bold,
					Size:  10,
					Top:   2,
				}),
			)
		case billdoc.KindMainItem:
			main := item.Main
			m.AddRow(7,
				text.NewCol(1, fmt.Sprintf("%d", main.SrNo), props.Text{Size: 9}),
				text.NewCol(9, main.Description, props.Text{Style: fontstyle.Bold, Size: 9}),
				text.NewCol(2, fmt.Sprintf("%d", main.Amount()), props.Text{Size: 9, Align: align.Right}),
			)
			for _, sub := range main.SubItems {
				m.AddRow(6,
					col.New(1),
					text.NewCol(5, sub.Label+" "+sub.Description, props.Text{Size: 9}),
					text.NewCol(2, sub.Code, props.Text{Size: 9}),
					text.NewCol(1, fmt.Sprintf("%d", sub.Rate), props.Text{Size: 9, Align: align.Right}),
					text.NewCol(1, fmt.Sprintf("%d", sub.Quantity), props.Text{Size: 9, Align: align.Right}),
					text.NewCol(2, fmt.Sprintf("%d", sub.Amount), props.Text{Size: 9, Align: align.Right}),
				)
			}
		}
	}

	if len(data.Doc.Surgeries) > 0 {
		m.AddRow(8,
			text.NewCol(12, "Surgical Treatment", props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
		)
		for _, row := range data.Doc.Surgeries {
			desc := row.Name
			if adj := adjustmentLabel(row); adj != "" {
				desc += " (" + adj + ")"
			}
			m.AddRow(6,
				col.New(1),
				text.NewCol(5, desc, props.Text{Size: 9}),
				text.NewCol(2, row.Code, props.Text{Size: 9}),
				text.NewCol(1, fmt.Sprintf("%d", row.Rate), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(1, fmt.Sprintf("%d", row.Quantity), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, fmt.Sprintf("%.2f", row.Final()), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Grand Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, fmt.Sprintf("%d", data.Doc.TotalRounded()), props.Text{
			Style: fontstyle.Bold,
			Size:  10,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func adjustmentLabel(row billdoc.SurgeryRow) string {
	parts := make([]string, 0, 2)
	for _, code := range []billdoc.AdjustmentCode{row.PrimaryAdjustment, row.SecondaryAdjustment} {
		if code == "" || code == billdoc.AdjustmentNone {
			continue
		}
		if pct := billdoc.AdjustmentPercent(code); pct != 0 {
			parts = append(parts, fmt.Sprintf("less %.0f%%", pct))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
