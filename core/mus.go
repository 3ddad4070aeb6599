package core

import (
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored record types. Written by hand: the records
// are small and flat, so a generator would be more machinery than code.
var (
	IDMUS             = idMUS{}
	TopicMUS          = topicMUS{}
	ProgressRecordMUS = progressRecordMUS{}
	SearchRecordMUS   = searchRecordMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

type topicMUS struct{}

func (topicMUS) Marshal(v Topic, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Sector, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.FurtherReading, bs[n:])
	n += marshalTime(v.LastUpdate, bs[n:])
	return n
}

func (topicMUS) Unmarshal(bs []byte) (v Topic, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Sector, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.FurtherReading, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.LastUpdate, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (topicMUS) Size(v Topic) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Sector)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.FurtherReading)
	size += sizeTime(v.LastUpdate)
	return size
}

type progressRecordMUS struct{}

func (progressRecordMUS) Marshal(v ProgressRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Sector, bs[n:])
	n += marshalTime(v.LastStudyDate, bs[n:])
	n += varint.Uint64.Marshal(math.Float64bits(v.Performance), bs[n:])
	n += ord.String.Marshal(v.Notes, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	return n
}

func (progressRecordMUS) Unmarshal(bs []byte) (v ProgressRecord, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Sector, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.LastStudyDate, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var bits uint64
	if bits, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Performance = math.Float64frombits(bits)
	n += n1
	if v.Notes, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (progressRecordMUS) Size(v ProgressRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Sector)
	size += sizeTime(v.LastStudyDate)
	size += varint.Uint64.Size(math.Float64bits(v.Performance))
	size += ord.String.Size(v.Notes)
	size += sizeTime(v.InsertedAt)
	return size
}

type searchRecordMUS struct{}

func (searchRecordMUS) Marshal(v SearchRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Query, bs[n:])
	n += marshalTime(v.Timestamp, bs[n:])
	return n
}

func (searchRecordMUS) Unmarshal(bs []byte) (v SearchRecord, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Query, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Timestamp, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (searchRecordMUS) Size(v SearchRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Query)
	size += sizeTime(v.Timestamp)
	return size
}

// Timestamps are stored as microseconds since the Unix epoch and restored
// in UTC. The zero time maps to a sentinel so it survives the round trip.
const zeroTimeMarker = int64(math.MinInt64)

func marshalTime(t time.Time, bs []byte) (n int) {
	micros := zeroTimeMarker
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Marshal(micros, bs)
}

func unmarshalTime(bs []byte) (t time.Time, n int, err error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	if micros == zeroTimeMarker {
		return time.Time{}, n, nil
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) (size int) {
	micros := zeroTimeMarker
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Size(micros)
}
