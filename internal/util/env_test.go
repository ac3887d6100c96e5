package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	a := assert.New(t)

	a.Equal("fallback", Getenv("holdem_test_key", "fallback"))

	unset := SetEnv("holdem_test_key", "value")
	defer unset()
	a.Equal("value", Getenv("holdem_test_key", "fallback"))
}

func TestSetEnv(t *testing.T) {
	a := assert.New(t)
	_, found := os.LookupEnv("holdem_test_foo")
	a.False(found)

	unset1 := SetEnv("holdem_test_foo", "bar")
	a.Equal("bar", os.Getenv("holdem_test_foo"))

	unset2 := SetEnv("holdem_test_foo", "bar2")
	a.Equal("bar2", os.Getenv("holdem_test_foo"))
	unset2()
	a.Equal("bar", os.Getenv("holdem_test_foo"))
	unset1()

	_, found = os.LookupEnv("holdem_test_foo")
	a.False(found)
}
