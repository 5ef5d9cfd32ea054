package sqlstore

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanItem scans a single item from a database row
func ScanItem(scanner Scanner) (*Item, error) {
	item := &Item{}
	if err := scanner.Scan(&item.ID, &item.Name, &item.IsComplete); err != nil {
		return nil, err
	}
	return item, nil
}

// ScanItems scans multiple items from database rows
func ScanItems(rows Rows) ([]*Item, error) {
	items := make([]*Item, 0)
	for rows.Next() {
		item, err := ScanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
