package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// OrderInvalidPrice represents an order rejected because its price is not positive.
	OrderInvalidPrice ErrorCode = "order_invalid_price"
	// OrderInvalidQuantity represents an order rejected because its quantity is not positive.
	OrderInvalidQuantity ErrorCode = "order_invalid_quantity"
	// OrderNotFound represents a cancel targeting an unknown or already-filled order id.
	OrderNotFound ErrorCode = "order_not_found"
	// BookCrossed represents a crossed book observed after a mutation returned.
	// This is a matching-engine defect, never a retryable caller error.
	BookCrossed ErrorCode = "book_crossed"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"

	// TradePublishError represents a failure publishing a trade event to the feed.
	TradePublishError ErrorCode = "trade_publish_error"
)
