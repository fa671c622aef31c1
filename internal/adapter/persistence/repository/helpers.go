package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"orcafacil/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// blob reads and writes one JSON value under a single key of the key-value medium.
type blob struct {
	kv     interfaces.IKeyValueStore
	locker interfaces.ILocker
	key    string
	logger *logrus.Logger
	area   string
}

// load decodes the stored value into dst. found is false when the key is absent.
// A read error is returned; a corrupt value is logged and reported as absent.
func (b blob) load(ctx context.Context, dst any) (found bool, err error) {
	raw, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		b.logger.WithFields(logrus.Fields{"key": b.key}).WithError(err).Errorf("[%s][repository] read failed", b.area)
		return false, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		b.logger.WithFields(logrus.Fields{"key": b.key}).WithError(err).Errorf("[%s][repository] corrupt data ignored", b.area)
		return false, nil
	}
	return true, nil
}

func (b blob) store(ctx context.Context, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		b.logger.WithFields(logrus.Fields{"key": b.key}).WithError(err).Errorf("[%s][repository] encode failed", b.area)
		return err
	}
	if err := b.kv.Set(ctx, b.key, string(raw)); err != nil {
		b.logger.WithFields(logrus.Fields{"key": b.key}).WithError(err).Errorf("[%s][repository] write failed", b.area)
		return err
	}
	return nil
}

// mutate runs fn under the store lock when one is configured.
func (b blob) mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	if b.locker == nil {
		return fn(ctx)
	}
	return b.locker.WithLock(ctx, b.key, fn)
}

// parseLeadingInt reads an integer the way a lenient form field does: leading
// whitespace, an optional sign, then as many decimal digits as are present.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
