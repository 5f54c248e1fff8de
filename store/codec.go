package store

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"mangatan.com/yomitan/types"
)

// Term store blobs are snappy-compressed JSON. Compression is per record, so a
// single corrupt blob never poisons the rest of a result set.

func DecodeRecord(blob []byte) (types.StoredRecord, error) {
	var record types.StoredRecord
	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		return record, fmt.Errorf("could not decompress record: %w", err)
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("could not decode record: %w", err)
	}
	return record, nil
}

func EncodeRecord(record *types.StoredRecord) ([]byte, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("could not encode record: %w", err)
	}
	return snappy.Encode(nil, raw), nil
}
