package services

import (
	"fmt"

	"github.com/dmitrijs2005/labkeeper/internal/common"
)

// storeError marks err as an unexpected persistence failure of op. Both
// common.ErrorStore and the cause stay matchable with errors.Is.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrorStore, err)
}
