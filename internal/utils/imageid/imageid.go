package imageid

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const prefix = "ai_"

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

	filenameRe = regexp.MustCompile(`^ai_\d+_[0-9a-z]{26}\.(png|jpg|webp|gif)$`)
)

// New returns a lowercase ULID.
func New(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(now), entropy).String())
}

// Filename returns ai_<unix seconds>_<ulid>.<ext>.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("%s%d_%s.%s", prefix, now.Unix(), New(now), ext)
}

// IsGenerated reports whether name was produced by Filename.
func IsGenerated(name string) bool {
	return filenameRe.MatchString(name)
}

// CreatedAt extracts the ULID timestamp from a generated filename.
func CreatedAt(name string) (time.Time, bool) {
	if !IsGenerated(name) {
		return time.Time{}, false
	}
	base := strings.TrimSuffix(name, name[strings.LastIndex(name, "."):])
	id, err := ulid.ParseStrict(strings.ToUpper(base[strings.LastIndex(base, "_")+1:]))
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(id.Time()), true
}
