package contextutil

import (
	"context"

	"shopease-main/internal/middleware"
)

// GetShopperIDFromContext извлекает id покупателя из контекста
func GetShopperIDFromContext(ctx context.Context) (string, bool) {
	shopperID, ok := middleware.GetShopperFromContext(ctx)
	if !ok || shopperID == "" {
		return "", false
	}
	return shopperID, true
}
