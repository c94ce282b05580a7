package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

const offsetPrefix = "off:"

// EncodeOffsetToken creates an opaque token for the position after offset-1.
func EncodeOffsetToken(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(offsetPrefix + strconv.Itoa(offset)))
}

// DecodeOffsetToken parses a token created by EncodeOffsetToken.
func DecodeOffsetToken(token string) (int, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	raw := string(decodedBytes)
	if len(raw) <= len(offsetPrefix) || raw[:len(offsetPrefix)] != offsetPrefix {
		return 0, fmt.Errorf("invalid pagination token format (prefix)")
	}
	offset, err := strconv.Atoi(raw[len(offsetPrefix):])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// Page returns at most limit items starting at the token's offset, and the
// token for the following page when one exists. A zero limit returns the rest.
func Page[T any](items []T, limit int, token string) ([]T, *string, error) {
	offset := 0
	if token != "" {
		var err error
		if offset, err = DecodeOffsetToken(token); err != nil {
			return nil, nil, err
		}
	}
	if offset >= len(items) {
		return []T{}, nil, nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	var next *string
	if end < len(items) {
		t := EncodeOffsetToken(end)
		next = &t
	}
	return items[offset:end], next, nil
}
