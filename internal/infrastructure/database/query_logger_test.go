package database

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestQueryLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(zerolog.New(&buf), gormlogger.Warn, time.Second)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "boom")
}

func TestQueryLoggerSlowQueryTruncated(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(zerolog.New(&buf), gormlogger.Warn, time.Millisecond)

	query := "INSERT INTO diary (content) VALUES ('" + strings.Repeat("x", 300) + "')"
	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return query, 1 }, nil)

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.NotContains(t, buf.String(), strings.Repeat("x", 200))
}

func TestQueryLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(zerolog.New(&buf), gormlogger.Warn, time.Second).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	l.Error(context.Background(), "oops %d", 1)
	assert.Empty(t, buf.String())
}
