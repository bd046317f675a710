package errx

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to the unified Error type.
func WrapRedis(err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, RedisNotFoundMessage)
	}
	return New(err, http.StatusBadGateway, RedisErrorMessage)
}

// WrapDB maps database/sql errors to the unified Error type. sql.ErrNoRows is
// a lookup miss, not a failure.
func WrapDB(err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return New(err, http.StatusNotFound, "record not found")
	}
	return New(err, http.StatusInternalServerError, DBErrorMessage)
}
