package sims

import (
	"encoding/csv"
	"io"
	"strings"

	"simtracker/internal/models"
)

// csvHeader is a contract with downstream consumers: same titles, same
// order, every export. days_left and create_date are deliberately absent so
// an export can be fed straight back into the importer.
var csvHeader = []string{
	"MEID",
	"Project Name",
	"Brand",
	"ICCID",
	"Added Features",
	"BAN to Activate On",
	"Length of Activation",
	"MDN",
	"MSID",
	"MSL",
	"Request On",
	"Expires On",
	"Comments",
}

// WriteCSV emits the header row followed by one row per record. encoding/csv
// handles quoting of embedded delimiters and newlines.
func WriteCSV(w io.Writer, records []models.Sim) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range records {
		row := []string{
			s.MEID,
			s.ProjectName,
			s.Brand,
			s.ICCID,
			s.AddedFeatures,
			s.BanToActivateOn,
			s.LengthOfActivation,
			s.MDN,
			s.MSID,
			s.MSL,
			s.RequestOn,
			s.ExpiresOn,
			s.Comments,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows in the export column order back into inputs. Fields
// are taken by position, the same way the front end maps an uploaded file;
// a leading header row is skipped. Short rows are padded with empties.
func ReadCSV(r io.Reader) ([]SimInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	ins := make([]SimInput, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "MEID") {
			continue
		}
		cell := func(idx int) string {
			if idx < len(row) {
				return row[idx]
			}
			return ""
		}
		ins = append(ins, SimInput{
			MEID:               cell(0),
			ProjectName:        cell(1),
			Brand:              cell(2),
			ICCID:              cell(3),
			AddedFeatures:      cell(4),
			BanToActivateOn:    cell(5),
			LengthOfActivation: cell(6),
			MDN:                cell(7),
			MSID:               cell(8),
			MSL:                cell(9),
			RequestOn:          cell(10),
			ExpiresOn:          cell(11),
			Comments:           cell(12),
		})
	}
	return ins, nil
}
