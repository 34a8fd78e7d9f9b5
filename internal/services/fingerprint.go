package services

import (
	"encoding/binary"
	"room-matching-service/internal/domain"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// cacheKeyPrefix is bumped whenever the hashed layout changes.
const cacheKeyPrefix = "roommatch:v1:"

// Fingerprint returns a stable cache key for solving m in dir with strategy.
// Names are included because two matrices with equal scores but different
// labels produce different reports.
func Fingerprint(m *domain.ScoreMatrix, dir domain.Direction, strategy domain.Strategy) string {
	d := xxhash.New()

	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		d.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(int64(len(s)))
		d.WriteString(s)
	}

	n := m.Size()
	writeInt(int64(n))
	writeInt(int64(dir))
	writeString(string(strategy))
	for i := 0; i < n; i++ {
		writeString(m.Person(i).Name)
	}
	for j := 0; j < n; j++ {
		writeString(m.Room(j).Name)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			writeInt(m.Score(i, j))
		}
	}

	return cacheKeyPrefix + strconv.FormatUint(d.Sum64(), 16)
}
