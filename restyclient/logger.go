package restyclient

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/httpfacade/logger"
)

// restyLogger forwards resty's own log output to a zerolog-backed logger.
type restyLogger struct {
	log *logger.Logger
}

var _ resty.Logger = restyLogger{}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(message(format, v))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(message(format, v))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(message(format, v))
}

func message(format string, v []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
