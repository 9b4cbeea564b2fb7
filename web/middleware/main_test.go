package middleware

import (
	"os"
	"testing"

	"github.com/lukafrizz/content-api/logger"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}
