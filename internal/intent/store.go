package intent

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadCityAliases reads the city alias table from Postgres. Rows are
// grouped by canonical name in priority order, which becomes the
// table's declaration order and therefore the first-match-wins order
// during normalization. The result is read once at startup; callers
// fall back to DefaultCityAliases when the query fails or returns no
// rows.
func LoadCityAliases(ctx context.Context, db *sql.DB) (AliasTable, error) {
	const query = `
		SELECT canonical, variant
		FROM city_aliases
		ORDER BY priority ASC, canonical ASC, variant ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying city aliases: %w", err)
	}
	defer rows.Close()

	var (
		table   AliasTable
		indexOf = make(map[string]int)
	)
	for rows.Next() {
		var canonical, variant string
		if err := rows.Scan(&canonical, &variant); err != nil {
			return nil, fmt.Errorf("scanning city alias row: %w", err)
		}
		idx, ok := indexOf[canonical]
		if !ok {
			idx = len(table)
			indexOf[canonical] = idx
			table = append(table, AliasEntry{Canonical: canonical})
		}
		table[idx].Variants = append(table[idx].Variants, variant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading city aliases: %w", err)
	}
	return table, nil
}
