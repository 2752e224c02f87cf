/*

Package logger provides logging functionality to an application by defining the required behavior in [Logger]
and providing an implementation of it with [AppLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [AppLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*AppLogger.Warn], [*AppLogger.Error], and [*AppLogger.Fatal] produce messages.

# AppLogger

The [AppLogger] is the implementation of [Logger] returned by the [New] function.

Log messages emitted by [AppLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] respond/file.go:143 'delivery aborted' log_context: "{"error":"client aborted"}"

The file, line number, and parent directory of the call comprise the call site.
The message is the actual string passed into the AppLogger method, in this example, [*AppLogger.Debug].
Lastly, the log context is a JSON-encoded [*LogContext],
allowing for additional data inessential to the message proper
that provides a fuller picture of the application state at the time of logging.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides that configuration by setting the number of frames to skip
when ascertaining the call site.

# SentryLogger

When a Sentry DSN is available, [New] decorates the AppLogger with a [SentryLogger],
shipping warnings, errors, and fatals to Sentry alongside the regular output.

*/
package logger
