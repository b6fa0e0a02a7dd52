package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type ShopperKey string

var shopperKey ShopperKey = "shopperKey"

// ShopperCookie кука анонимного покупателя, по ней выбирается корзина
const ShopperCookie = "shopper_id"

const shopperCookieTTL = 365 * 24 * time.Hour

// Shopper достает id покупателя из куки, а если куки нет или она битая, выдает новый
func Shopper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shopperID, raw := "", ""
		if c, err := r.Cookie(ShopperCookie); err == nil {
			raw = c.Value
			// uuid.Parse принимает и {…}, и urn:uuid:…, храним каноническую запись
			if parsed, err := uuid.Parse(raw); err == nil {
				shopperID = parsed.String()
			}
		}

		if shopperID == "" {
			shopperID = uuid.New().String()
		}
		if shopperID != raw {
			http.SetCookie(w, &http.Cookie{
				Name:     ShopperCookie,
				Value:    shopperID,
				Path:     "/",
				Expires:  time.Now().Add(shopperCookieTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		// Добавляем покупателя в контекст и передаем дальше
		ctx := ContextWithShopper(r.Context(), shopperID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ContextWithShopper(ctx context.Context, shopperID string) context.Context {
	return context.WithValue(ctx, shopperKey, shopperID)
}

func GetShopperFromContext(ctx context.Context) (string, bool) {
	shopperID, ok := ctx.Value(shopperKey).(string)
	return shopperID, ok
}
