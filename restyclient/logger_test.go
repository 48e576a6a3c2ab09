package restyclient

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/kbukum/httpfacade/logger"
)

func TestRestyLogger(t *testing.T) {
	var buf bytes.Buffer
	l := restyLogger{log: logger.FromZerolog(zerolog.New(&buf).Level(zerolog.DebugLevel))}

	l.Warnf("Using Basic Auth in HTTP mode is not secure, use HTTPS\n")
	l.Errorf("attempt %d failed", 2)
	l.Debugf("dump")

	out := buf.String()
	assert.Contains(t, out, `"level":"warn","message":"Using Basic Auth in HTTP mode is not secure, use HTTPS"`)
	assert.Contains(t, out, `"level":"error","message":"attempt 2 failed"`)
	assert.Contains(t, out, `"level":"debug","message":"dump"`)
}
