// Package main runs the library circulation HTTP server.
//
// Configuration comes from the environment, see config.AppConfigFromEnv. JWT_SECRET is mandatory.
// Setting OTEL_ENDPOINT enables tracing and metrics, REDIS_ADDR moves the notification queue to Redis,
// TELEGRAM_BOT_TOKEN together with TELEGRAM_CHAT_ID delivers notifications to Telegram instead of the log.
package main
