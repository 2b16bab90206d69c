package constants

const (
	APP_USER_SERVICE      = "user-service"
	APP_PRODUCT_SERVICE   = "product-service"
	APP_ORDER_SERVICE     = "order-service"
	APP_CART_SERVICE      = "cart-service"
	APP_QUANTITY_LISTENER = "product-quantity-listener"
	APP_MAIN              = "malchin-market"

	AUDIENCE_USER = "audience-user"

	URL_USER_SERVICE    = "http://user-service:8080/users"
	URL_PRODUCT_SERVICE = "http://product-service:8080/products"
	URL_ORDER_SERVICE   = "http://order-service:8080/orders"

	CHANNEL_PRODUCT_QUANTITY = "product.quantity.updated"
)
