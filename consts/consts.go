package consts

// ServiceName identifies this service on pushed messages
const ServiceName = "Notifications"

// Notification mongo collection
const Notification = "Notifications"

// NotificationsKeySalt - fixed salt combined with the service name to derive
// the server-to-server notifications key
const NotificationsKeySalt = "NGX-56BA2999-Notify-A2E4-Backend-4B54-Shared-83EB-Key-693C250DC95D"

// NotificationCacheKeyPrefix - redis key prefix for notification records
const NotificationCacheKeyPrefix = "notification:"

// NotificationsKeyHeader - request extra carrying the server-to-server key
const NotificationsKeyHeader = "x-notifications-key"
