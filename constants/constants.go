package constants

// roles
const (
	ROLE_USER        = "user"
	ROLE_ADMIN       = "admin"
	ROLE_SUPER_ADMIN = "super_admin"
)

var ROLES = []string{ROLE_USER, ROLE_ADMIN, ROLE_SUPER_ADMIN}

// event status
const (
	EVENT_PENDING   = "pending"
	EVENT_CONFIRMED = "confirmed"
	EVENT_CANCELLED = "cancelled"
	EVENT_ACTIVE    = "active"
)

var EVENT_STATUSES = []string{EVENT_PENDING, EVENT_CONFIRMED, EVENT_CANCELLED, EVENT_ACTIVE}

// gallery status
const (
	GALLERY_DRAFT     = "draft"
	GALLERY_PUBLISHED = "published"
)

// rsvp
const (
	RSVP_PENDING   = "pending"
	RSVP_ATTENDING = "attending"
	RSVP_DECLINED  = "declined"
)

var RSVP_STATUSES = []string{RSVP_PENDING, RSVP_ATTENDING, RSVP_DECLINED}

// chat senders
const (
	SENDER_USER  = "user"
	SENDER_ADMIN = "admin"
)

// notification kinds
const (
	NOTIFY_EVENT_STATUS = "event_status"
	NOTIFY_CHAT_REPLY   = "chat_reply"
	NOTIFY_REMINDER     = "event_reminder"
)

// console paths per role
const (
	PATH_USER_DASHBOARD = "/dashboard"
	PATH_ADMIN          = "/admin"
	PATH_SUPER_ADMIN    = "/super-admin"
)

const (
	REFERENCE_PREFIX = "EVT-"
	DATE_LAYOUT      = "2006-01-02"
	TIME_LAYOUT      = "15:04"
)

// response messages
const (
	ERROR_INTERNAL_ERROR       = "Something went wrong, please try again"
	ERROR_INPUT                = "Invalid input"
	ERROR_PARSE_DATA_TO_LOCALS = "Could not read request data"
	VALIDATION_FAILED          = "Validation failed"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
	MISSING_TOKEN              = "Missing token"
	INVALID_TOKEN              = "Invalid or expired token"
	FORBIDDEN                  = "You are not allowed to do this"
	NOT_FOUND                  = "Not found"
	USER_ALREADY_REGISTERED    = "This email is already registered. Please sign in instead."
	INVALID_LOGIN_CREDENTIALS  = "Invalid email or password"
	INVALID_RECOVERY_CODE      = "The code is invalid or has expired"
	RECOVERY_CODE_SENT         = "If the email is registered, a recovery code has been sent"
	DUPLICATE_EVENT            = "You already have an event of this type at the same date and time. Please change the details and try again."
	WIZARD_INCOMPLETE          = "Please complete the required fields before continuing"
	THREAD_BLOCKED             = "This conversation is blocked"
	TOO_MANY_REQUESTS          = "Too many attempts, please wait a minute and try again"
)
