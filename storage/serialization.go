// Copyright 2026 Studiolore
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/studiolore/studyhall/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalTopic serializes a Topic to bytes.
func MarshalTopic(topic *core.Topic) []byte {
	buf := make([]byte, core.TopicMUS.Size(*topic))
	core.TopicMUS.Marshal(*topic, buf)
	return buf
}

// UnmarshalTopic deserializes a Topic from bytes.
func UnmarshalTopic(data []byte) (*core.Topic, error) {
	topic, _, err := core.TopicMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// MarshalProgressRecord serializes a ProgressRecord to bytes.
func MarshalProgressRecord(record *core.ProgressRecord) []byte {
	buf := make([]byte, core.ProgressRecordMUS.Size(*record))
	core.ProgressRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalProgressRecord deserializes a ProgressRecord from bytes.
func UnmarshalProgressRecord(data []byte) (*core.ProgressRecord, error) {
	record, _, err := core.ProgressRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalSearchRecord serializes a SearchRecord to bytes.
func MarshalSearchRecord(record *core.SearchRecord) []byte {
	buf := make([]byte, core.SearchRecordMUS.Size(*record))
	core.SearchRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalSearchRecord deserializes a SearchRecord from bytes.
func UnmarshalSearchRecord(data []byte) (*core.SearchRecord, error) {
	record, _, err := core.SearchRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
