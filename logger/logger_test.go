package logger_test

import (
	"io"
	"log"
	"regexp"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/\w+_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}
