package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Frontends map these codes to their own user-facing messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"
	AuthAccountDisabled    = "AUTH_ACCOUNT_DISABLED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // no access to the resource
	AuthzStaffOnly = "AUTHZ_STAFF_ONLY"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationTooShort      = "VALIDATION_TOO_SHORT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogCategoryNotFound  = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogAccessoryNotFound = "CATALOG_ACCESSORY_NOT_FOUND"
	CatalogOutOfStock        = "CATALOG_OUT_OF_STOCK"
	CatalogInvalidStock      = "CATALOG_INVALID_STOCK"

	// ==================== Pets (PET_) ====================
	PetNotFound       = "PET_NOT_FOUND"
	PetAlreadyAdopted = "PET_ALREADY_ADOPTED"
	PetNotAdopted     = "PET_NOT_ADOPTED"

	// ==================== Addresses (ADDRESS_) ====================
	AddressNotFound     = "ADDRESS_NOT_FOUND"
	AddressLimitReached = "ADDRESS_LIMIT_REACHED"

	// ==================== Carts (CART_) ====================
	CartNotFound          = "CART_NOT_FOUND"
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CartEmpty             = "CART_EMPTY"
	CartInsufficientStock = "CART_INSUFFICIENT_STOCK"
	CartInUse             = "CART_IN_USE"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderNotCancelable = "ORDER_NOT_CANCELABLE"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"

	// ==================== Payments (PAYMENT_) ====================
	PaymentNotFound         = "PAYMENT_NOT_FOUND"
	PaymentAlreadyCompleted = "PAYMENT_ALREADY_COMPLETED"
	PaymentOrderDelivered   = "PAYMENT_ORDER_DELIVERED"
	PaymentInvalidStatus    = "PAYMENT_INVALID_STATUS"
	PaymentNotPending       = "PAYMENT_NOT_PENDING"
	PaymentNotRefundable    = "PAYMENT_NOT_REFUNDABLE"

	// ==================== Contacts (CONTACT_) ====================
	ContactNotFound      = "CONTACT_NOT_FOUND"
	ContactInvalidStatus = "CONTACT_INVALID_STATUS"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
