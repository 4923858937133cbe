// Package notifier delivers notification texts to the staff channel without blocking the use cases.
//
// Dispatcher implements shell.Notifier: Notify only enqueues, a pool of workers drains the Queue
// and hands each Message to a Sender. ChannelQueue keeps messages in process, RedisQueue keeps them
// in a redis list so they survive a restart. TelegramSender posts to the Telegram Bot API,
// LogSender writes the text to the log when no bot is configured.
//
// Delivery failures are logged and counted, they never reach the caller of Notify.
package notifier
