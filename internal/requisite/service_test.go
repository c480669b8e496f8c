package requisite

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/models"
)

func TestCreateRequisite(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	req, err := svc.Create(ctx, CreateInput{
		Name:               "Medical Certificate",
		IsValidityRequired: true,
		ValidityValue:      2,
		ValidityUnit:       models.UnitMonth,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.True(t, req.IsActive)

	// duplicate name rejected
	_, err = svc.Create(ctx, CreateInput{Name: "Medical Certificate"})
	assert.True(t, apperror.IsValidation(err))

	// validity fields mandatory when required
	_, err = svc.Create(ctx, CreateInput{Name: "Other", IsValidityRequired: true})
	assert.True(t, apperror.IsValidation(err))
}

func TestFindRequisitesPagination(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	for _, name := range []string{"Contract", "Diploma", "ID Copy"} {
		_, err := svc.Create(ctx, CreateInput{Name: name})
		require.NoError(t, err)
	}

	items, count, err := svc.Find(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, items, 2)

	items, count, err = svc.Find(ctx, 1, 0, "dip")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, items, 1)
	assert.Equal(t, "Diploma", items[0].Name)

	_, _, err = svc.Find(ctx, 0, 10, "")
	assert.True(t, apperror.IsValidation(err))
	_, _, err = svc.Find(ctx, 1, 51, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateRequisite(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	req, err := svc.Create(ctx, CreateInput{Name: "Contract"})
	require.NoError(t, err)

	truth := true
	value := 1
	unit := models.UnitYear
	updated, err := svc.Update(ctx, req.ID, UpdateInput{
		IsValidityRequired: &truth,
		ValidityValue:      &value,
		ValidityUnit:       &unit,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsValidityRequired)
	assert.Equal(t, models.UnitYear, updated.ValidityUnit)

	_, err = svc.Update(ctx, "missing", UpdateInput{})
	assert.True(t, apperror.IsNotFound(err))
}

func writeImportSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportExcel(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Contract"})
	require.NoError(t, err)

	buf := writeImportSheet(t, [][]interface{}{
		{"name", "description", "isValidityRequired", "validityValue", "validityUnit", "isActive"},
		{"Contract", "already present", "false", "", "", "true"},
		{"Medical Certificate", "health check", "true", 2, "MONTH", "true"},
		{"", "row without name is skipped", "false", "", "", "true"},
	})

	added, err := svc.ImportExcel(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	req, err := svc.repo.FindByName(ctx, "Medical Certificate")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.True(t, req.IsValidityRequired)
	assert.Equal(t, models.UnitMonth, req.ValidityUnit)
}

func TestImportExcelEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	buf := writeImportSheet(t, [][]interface{}{
		{"name", "description", "isValidityRequired", "validityValue", "validityUnit", "isActive"},
	})
	_, err := svc.ImportExcel(context.Background(), buf)
	assert.True(t, apperror.IsValidation(err))
}
