package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// CartSnapshot persists an ordered list of cart lines as a JSON document.
type CartSnapshot []types.CartLine

func (c *CartSnapshot) Scan(src any) error {
	if src == nil {
		*c = CartSnapshot{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("CartSnapshot: unsupported Scan type %T", src)
	}

	if len(raw) == 0 {
		*c = CartSnapshot{}
		return nil
	}

	var lines []types.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return fmt.Errorf("CartSnapshot: decode: %w", err)
	}
	if lines == nil {
		lines = []types.CartLine{}
	}
	*c = lines
	return nil
}

func (c CartSnapshot) Value() (driver.Value, error) {
	lines := []types.CartLine(c)
	if lines == nil {
		lines = []types.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("CartSnapshot: encode: %w", err)
	}
	return string(raw), nil
}

// Lines returns the snapshot as plain cart lines.
func (c CartSnapshot) Lines() []types.CartLine {
	return []types.CartLine(c)
}
