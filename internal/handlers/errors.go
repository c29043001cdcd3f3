package handlers

import (
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// writeServiceError normalizes failures the services did not classify.
// Integrity violations surfaced by the store become a 400 with the store's
// detail; connectivity failures become a 503 with a retry-later message;
// anything else is a 500 whose detail is only logged server-side.
func writeServiceError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23"):
		writeMessage(w, http.StatusBadRequest, "Invalid data: "+pgErr.Message)
	case isUnreachable(err):
		log.Errorw("database unreachable", "err", err)
		writeMessage(w, http.StatusServiceUnavailable,
			"We're having trouble connecting to the database. Please try again shortly.")
	default:
		log.Errorw("internal server error", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// isUnreachable reports driver-level connectivity failures by error kind,
// never by message text.
func isUnreachable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
