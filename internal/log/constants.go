package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyConfig        = "config"
	KeyRequestID     = "requestId"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"

	KeyEmail      = "email"
	KeyUserID     = "userId"
	KeyUserRole   = "userRole"
	KeyCartKey    = "cartKey"
	KeyCacheKey   = "cacheKey"
	KeyJsonCache  = "jsonCache"
	KeyProduct    = "product"
	KeyProducts   = "products"
	KeyProductID  = "productId"
	KeyOrder      = "order"
	KeyOrders     = "orders"
	KeyOrderID    = "orderId"
	KeyOrderItems = "orderItems"
	KeyCartItems  = "cartItems"
	KeyQuantity   = "quantity"
	KeyStatus     = "status"
	KeyDbURL      = "dbURL"
)
