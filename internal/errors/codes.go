package errors

// Error code constants returned in API error bodies.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound  = "PRODUCT_NOT_FOUND"
	ProductSKUExists = "PRODUCT_SKU_EXISTS"

	// ==================== Cart (CART_) ====================
	CartNotFound      = "CART_NOT_FOUND"
	CartItemNotFound  = "CART_ITEM_NOT_FOUND"
	CartGuestNotFound = "CART_GUEST_NOT_FOUND"
	CartGuestEmpty    = "CART_GUEST_EMPTY"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutNotFound         = "CHECKOUT_NOT_FOUND"
	CheckoutEmptyItems       = "CHECKOUT_EMPTY_ITEMS"
	CheckoutInvalidItem      = "CHECKOUT_INVALID_ITEM"
	CheckoutInvalidAddress   = "CHECKOUT_INVALID_ADDRESS"
	CheckoutInvalidPayStatus = "CHECKOUT_INVALID_PAYMENT_STATUS"
	CheckoutNotPaid          = "CHECKOUT_NOT_PAID"
	CheckoutFinalized        = "CHECKOUT_ALREADY_FINALIZED"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"

	// ==================== Newsletter (SUBSCRIBE_) ====================
	SubscribeEmailRequired = "SUBSCRIBE_EMAIL_REQUIRED"
	SubscribeDuplicate     = "SUBSCRIBE_DUPLICATE"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
