package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm/clause"
)

var (
	errNotFound         = errors.New("NOT_FOUND")
	errBadStatus        = errors.New("BAD_STATUS")
	errAlreadyProcessed = errors.New("ALREADY_PROCESSED")
	errReservedCategory = errors.New("RESERVED_CATEGORY")
)

func clauseUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id missing from context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user_id invalid")
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
