// Package log provides structured logging for Drove using zerolog. A single
// global logger is configured once at startup; components derive child
// loggers with WithComponent and friends.
package log
