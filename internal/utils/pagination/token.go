package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeEntryToken creates a base64 encoded keyset token from the entry date and
// id of the last row of a page. Pages are ordered by entry date desc then id desc.
func EncodeEntryToken(entryDate time.Time, entryID string) string {
	tokenStr := fmt.Sprintf("%s|%s", entryDate.UTC().Format(timeFormat), entryID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeEntryToken parses a token produced by EncodeEntryToken.
func DecodeEntryToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	return entryDate, parts[1], nil
}

// Before reports whether the row (date, id) sorts after the cursor (cursorDate,
// cursorID) in date desc, id desc order, i.e. belongs to the next page.
func Before(date time.Time, id string, cursorDate time.Time, cursorID string) bool {
	if !date.Equal(cursorDate) {
		return date.Before(cursorDate)
	}
	return id < cursorID
}
