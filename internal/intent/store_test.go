package intent

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCityAliases(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"canonical", "variant"}).
		AddRow("北京", "北京市").
		AddRow("北京", "首都").
		AddRow("上海", "上海市").
		AddRow("上海", "魔都")

	mock.ExpectQuery("SELECT canonical, variant").WillReturnRows(rows)

	table, err := LoadCityAliases(context.Background(), db)
	require.NoError(t, err)

	require.Len(t, table, 2)
	assert.Equal(t, "北京", table[0].Canonical)
	assert.Equal(t, []string{"北京市", "首都"}, table[0].Variants)
	assert.Equal(t, "上海", table[1].Canonical)
	assert.Equal(t, []string{"上海市", "魔都"}, table[1].Variants)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadCityAliases_PreservesRowOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"canonical", "variant"}).
		AddRow("深圳", "鹏城").
		AddRow("广州", "羊城")

	mock.ExpectQuery("SELECT canonical, variant").WillReturnRows(rows)

	table, err := LoadCityAliases(context.Background(), db)
	require.NoError(t, err)

	// Row order becomes the first-match-wins scan order.
	require.Len(t, table, 2)
	assert.Equal(t, "深圳", table[0].Canonical)
	assert.Equal(t, "广州", table[1].Canonical)
}

func TestLoadCityAliases_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT canonical, variant").WillReturnError(assert.AnError)

	table, err := LoadCityAliases(context.Background(), db)
	assert.Error(t, err)
	assert.Nil(t, table)
}

func TestLoadCityAliases_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT canonical, variant").
		WillReturnRows(sqlmock.NewRows([]string{"canonical", "variant"}))

	table, err := LoadCityAliases(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, table)
}
