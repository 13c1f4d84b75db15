package errprocess

import (
	"errors"

	"skill_exchange_service/pkg/logger"
)

// Set log err info and return it as an error
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}
