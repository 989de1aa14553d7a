// Copyright 2025 Ilias Haddad
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


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for values persisted in storage. Timestamps are encoded
// as Unix microseconds.
var (
	SceneMUS       = sceneMUS{}
	JobMUS         = jobMUS{}
	ChatMessageMUS = chatMessageMUS{}
	VectorPointMUS = vectorPointMUS{}

	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	float32SliceMUS = ord.NewSliceSer[float32](varint.Float32)
	stringMapMUS    = ord.NewMapSer[string, string](ord.String, ord.String)
)

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

type sceneMUS struct{}

func (sceneMUS) Marshal(s Scene, bs []byte) (n int) {
	n = ord.String.Marshal(s.ID, bs)
	n += ord.String.Marshal(s.VideoID, bs[n:])
	n += varint.Float64.Marshal(s.StartTime, bs[n:])
	n += varint.Float64.Marshal(s.EndTime, bs[n:])
	n += ord.String.Marshal(s.Text, bs[n:])
	n += stringSliceMUS.Marshal(s.Faces, bs[n:])
	n += stringSliceMUS.Marshal(s.Objects, bs[n:])
	n += stringSliceMUS.Marshal(s.Emotions, bs[n:])
	n += ord.String.Marshal(s.ShotType, bs[n:])
	n += ord.String.Marshal(s.Camera, bs[n:])
	n += ord.String.Marshal(s.Location, bs[n:])
	n += ord.String.Marshal(s.Transcription, bs[n:])
	n += marshalTime(s.InsertedAt, bs[n:])
	n += marshalTime(s.UpdatedAt, bs[n:])
	return n
}

func (sceneMUS) Unmarshal(bs []byte) (s Scene, n int, err error) {
	var n1 int
	if s.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if s.VideoID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.StartTime, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.EndTime, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Faces, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Objects, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Emotions, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.ShotType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Camera, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Transcription, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	return s, n, nil
}

func (sceneMUS) Size(s Scene) (size int) {
	size = ord.String.Size(s.ID)
	size += ord.String.Size(s.VideoID)
	size += varint.Float64.Size(s.StartTime)
	size += varint.Float64.Size(s.EndTime)
	size += ord.String.Size(s.Text)
	size += stringSliceMUS.Size(s.Faces)
	size += stringSliceMUS.Size(s.Objects)
	size += stringSliceMUS.Size(s.Emotions)
	size += ord.String.Size(s.ShotType)
	size += ord.String.Size(s.Camera)
	size += ord.String.Size(s.Location)
	size += ord.String.Size(s.Transcription)
	size += sizeTime(s.InsertedAt)
	size += sizeTime(s.UpdatedAt)
	return size
}

type jobMUS struct{}

func (jobMUS) Marshal(j Job, bs []byte) (n int) {
	n = ord.String.Marshal(j.ID, bs)
	n += ord.String.Marshal(j.IntegrationID, bs[n:])
	n += varint.Int.Marshal(int(j.State), bs[n:])
	n += stringMapMUS.Marshal(j.Data, bs[n:])
	n += marshalTime(j.CreatedAt, bs[n:])
	return n
}

func (jobMUS) Unmarshal(bs []byte) (j Job, n int, err error) {
	var n1 int
	if j.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if j.IntegrationID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return j, n + n1, err
	}
	n += n1
	var state int
	if state, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return j, n + n1, err
	}
	n += n1
	j.State = JobState(state)
	if j.Data, n1, err = stringMapMUS.Unmarshal(bs[n:]); err != nil {
		return j, n + n1, err
	}
	n += n1
	if j.CreatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return j, n + n1, err
	}
	n += n1
	return j, n, nil
}

func (jobMUS) Size(j Job) (size int) {
	size = ord.String.Size(j.ID)
	size += ord.String.Size(j.IntegrationID)
	size += varint.Int.Size(int(j.State))
	size += stringMapMUS.Size(j.Data)
	size += sizeTime(j.CreatedAt)
	return size
}

type chatMessageMUS struct{}

func (chatMessageMUS) Marshal(m ChatMessage, bs []byte) (n int) {
	n = ord.String.Marshal(m.ID, bs)
	n += varint.Int.Marshal(int(m.Sender), bs[n:])
	n += ord.String.Marshal(m.Text, bs[n:])
	n += marshalTime(m.CreatedAt, bs[n:])
	return n
}

func (chatMessageMUS) Unmarshal(bs []byte) (m ChatMessage, n int, err error) {
	var n1 int
	if m.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var sender int
	if sender, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	m.Sender = Sender(sender)
	if m.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	if m.CreatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	return m, n, nil
}

func (chatMessageMUS) Size(m ChatMessage) (size int) {
	size = ord.String.Size(m.ID)
	size += varint.Int.Size(int(m.Sender))
	size += ord.String.Size(m.Text)
	size += sizeTime(m.CreatedAt)
	return size
}

type vectorPointMUS struct{}

func (vectorPointMUS) Marshal(p VectorPoint, bs []byte) (n int) {
	n = ord.String.Marshal(p.ID, bs)
	n += float32SliceMUS.Marshal(p.Vector, bs[n:])
	n += stringMapMUS.Marshal(p.Metadata, bs[n:])
	n += ord.String.Marshal(p.Document, bs[n:])
	return n
}

func (vectorPointMUS) Unmarshal(bs []byte) (p VectorPoint, n int, err error) {
	var n1 int
	if p.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if p.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Document, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	return p, n, nil
}

func (vectorPointMUS) Size(p VectorPoint) (size int) {
	size = ord.String.Size(p.ID)
	size += float32SliceMUS.Size(p.Vector)
	size += stringMapMUS.Size(p.Metadata)
	size += ord.String.Size(p.Document)
	return size
}
