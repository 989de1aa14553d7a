package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/IliasHad/edit-mind-sub003/core"
)

// Key prefixes for different data types
const (
	scenePrefix      = "scnrec"
	sceneVideoPrefix = "scnvid"
	vectorPrefix     = "vecrec"
	vectorSeq        = "vecrecseq"
	jobPrefix        = "jobrec"
	jobStatePrefix   = "jobsta"
	chatMsgPrefix    = "chamsg"
)

// makeSceneKey generates a key for a scene by ID.
func makeSceneKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", scenePrefix, id))
}

// makeSceneVideoKey generates a composite key for the per-video index.
// Format: prefix:videoID:startTime:sceneID
// Start time is encoded BigEndian so lexicographic sort follows playback order.
func makeSceneVideoKey(videoID string, startTime float64, sceneID string) []byte {
	prefix := []byte(sceneVideoPrefix + ":" + videoID + ":")
	buf := make([]byte, len(prefix)+8+len(sceneID))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], sortableFloat(startTime))
	offset += 8
	copy(buf[offset:], sceneID)
	return buf
}

// makePartialSceneVideoKey generates the iteration prefix for one video.
func makePartialSceneVideoKey(videoID string) []byte {
	return []byte(sceneVideoPrefix + ":" + videoID + ":")
}

// sortableFloat maps a non-negative float64 onto uint64 preserving order,
// with microsecond precision. Scene validation rejects negative start
// times before any key is built.
func sortableFloat(f float64) uint64 {
	return uint64(f * 1e6)
}

// makeVectorKey generates a key for a vector point in a collection.
func makeVectorKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", vectorPrefix, collection, id))
}

// makePartialVectorKey generates the iteration prefix for a collection.
func makePartialVectorKey(collection string) []byte {
	return []byte(vectorPrefix + ":" + collection + ":")
}

// makeJobKey generates a key for a job by ID.
func makeJobKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", jobPrefix, id))
}

// makeJobStateKey generates a composite key for the per-state index.
// Format: prefix:state:createdAt:jobID, BigEndian timestamp so reverse
// iteration yields most recently created first.
func makeJobStateKey(state core.JobState, createdAt time.Time, jobID string) []byte {
	prefix := []byte(fmt.Sprintf("%s:%d:", jobStatePrefix, state))
	buf := make([]byte, len(prefix)+8+len(jobID))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], jobID)
	return buf
}

// makePartialJobStateKey generates the iteration prefix for one state bucket.
func makePartialJobStateKey(state core.JobState) []byte {
	return []byte(fmt.Sprintf("%s:%d:", jobStatePrefix, state))
}

// makeChatMessageKey generates a composite key for a chat message.
// Format: prefix:createdAt:messageID, BigEndian timestamp so reverse
// iteration yields most recent first.
func makeChatMessageKey(createdAt time.Time, messageID string) []byte {
	prefix := []byte(chatMsgPrefix + ":")
	buf := make([]byte, len(prefix)+8+len(messageID))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], messageID)
	return buf
}
