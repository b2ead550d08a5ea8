package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// queryLogger adapts gorm's logger interface onto zerolog. Record-not-found
// is expected on diary lookups and is never logged as an error.
type queryLogger struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newQueryLogger(log zerolog.Logger, level gormlogger.LogLevel, slow time.Duration) gormlogger.Interface {
	if level == 0 {
		level = gormlogger.Warn
	}
	return &queryLogger{
		log:   log.With().Str("component", "gorm").Logger(),
		level: level,
		slow:  slow,
	}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *queryLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var event *zerolog.Event
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		event = l.log.Error().Err(err)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		event = l.log.Warn().Dur("threshold", l.slow)
	case l.level >= gormlogger.Info:
		event = l.log.Debug()
	default:
		return
	}

	// Interpolated SQL can hold diary text; warn and error lines keep its head only.
	query, rows := fc()
	if event.Enabled() && l.level < gormlogger.Info {
		query = truncateQuery(query)
	}
	event.Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", query).Msg("query")
}

func truncateQuery(query string) string {
	const limit = 120
	if len(query) <= limit {
		return query
	}
	return query[:limit] + "..."
}
