package auth

import (
	"fmt"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
)

// RequireRole returns common.ErrorUnauthorized when claims are absent and
// common.ErrForbidden when they carry a different role.
func RequireRole(claims *Claims, role models.Role) error {
	if claims == nil {
		return common.ErrorUnauthorized
	}
	if claims.Role != role {
		return fmt.Errorf("%w: role %s required", common.ErrForbidden, role)
	}
	return nil
}
