package requisite

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/pkg/logger"
)

// ImportExcel bulk-loads requisites from the first sheet of an Excel file.
// Expected columns: name, description, isValidityRequired, validityValue,
// validityUnit, isActive; the first row is a header. Rows whose name already
// exists are skipped. Returns the number of requisites inserted.
func (s *Service) ImportExcel(ctx context.Context, r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, apperror.Validation("could not read Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, apperror.Validation("the Excel file contains no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, apperror.Validation("could not read Excel rows: %v", err)
	}

	parsed := []CreateInput{}
	for i, row := range rows {
		if i == 0 { // header
			continue
		}
		name := cell(row, 0)
		if name == "" {
			continue
		}
		value, _ := strconv.Atoi(cell(row, 3))
		parsed = append(parsed, CreateInput{
			Name:               name,
			Description:        cell(row, 1),
			IsValidityRequired: strings.EqualFold(cell(row, 2), "true"),
			ValidityValue:      value,
			ValidityUnit:       models.ValidityUnit(strings.ToUpper(cell(row, 4))),
		})
	}
	if len(parsed) == 0 {
		return 0, apperror.Validation("no valid requisites found in the file")
	}

	added := 0
	for _, in := range parsed {
		existing, err := s.repo.FindByName(ctx, in.Name)
		if err != nil {
			return added, err
		}
		if existing != nil {
			logger.Debugf("import: requisite %q already exists, skipping", in.Name)
			continue
		}
		if _, err := s.Create(ctx, in); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
