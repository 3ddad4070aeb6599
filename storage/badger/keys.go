package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/studiolore/studyhall/core"
)

// Key prefixes for different data types
const (
	topicRecordPrefix   = "toprec"
	progressPrefix      = "prgrec"
	progressSectorIndex = "prgrecs"
	progressIDSeq       = "prgrecseq"
	searchPrefix        = "schrec"
	searchDatePrefix    = "schrecd"
	searchIDSeq         = "schrecseq"
)

// makeTopicKey generates a key for a topic by ID.
// Topic IDs are content-derived from the sector name, so the key for a
// sector is stable across upserts.
func makeTopicKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", topicRecordPrefix, id))
}

// makeProgressKey generates a key for a progress record by ID.
func makeProgressKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", progressPrefix, id))
}

// makeProgressSectorKey generates a composite key for the sector index.
// Format: prefix:sectorID:recordID
func makeProgressSectorKey(sectorID, recordID core.ID) []byte {
	prefix := progressSectorIndex + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for sectorID + 8 bytes for recordID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(sectorID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(recordID))
	return buf
}

// makePartialProgressSectorKey generates a partial key for sector queries.
// Format: prefix:sectorID
func makePartialProgressSectorKey(sectorID core.ID) []byte {
	prefix := progressSectorIndex + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(sectorID))
	return buf
}

// makeSearchKey generates a key for a search record by ID.
func makeSearchKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", searchPrefix, id))
}

// makeSearchDateKey generates a composite key for the search date index.
// Format: prefix:timestamp:id
func makeSearchDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := searchDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSearchDateKey generates a partial key for date-ordered scans.
// Format: prefix:timestamp
func makePartialSearchDateKey(timestamp time.Time) []byte {
	prefix := searchDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
