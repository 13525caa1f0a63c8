package sink

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"

	"apisport/internal/summoner/acquire"
)

// JSON encodes the records as one compact JSON array
func JSON(records []acquire.Record) ([]byte, error) {
	if records == nil {
		records = []acquire.Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return b, nil
}

// GetSHA returns the hex sha1 of s
func GetSHA(s []byte) string {
	h := sha1.New()
	h.Write(s)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// ObjectName builds a content addressed object key: prefix/sha.ext
func ObjectName(prefix, ext string, content []byte) string {
	return fmt.Sprintf("%s/%s.%s", prefix, GetSHA(content), ext)
}
