package redis

import (
	"context"
	"testing"

	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestNew_RequiresAddr(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorContains(t, err, "address required")
}

func TestNewWithClient_Prefix(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	s := NewWithClient(client, "")
	assert.Equal(t, "reception:cages", s.key("cages"))

	s = NewWithClient(client, "tenant-a/")
	assert.Equal(t, "tenant-a/cages", s.key("cages"))
}
