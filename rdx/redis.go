package rdx

import (
	"log"
	"os"
	"time"

	"barbearia/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// CacheGet returns the cached value for key, or "" on miss or error.
func CacheGet(key string) string {
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Redis Get error:", err)
		}
		return ""
	}
	return val
}

func CacheSet(key, value string, ttl time.Duration) {
	if err := Conn.Set(globals.Ctx, key, value, ttl).Err(); err != nil {
		log.Println("Redis Set error:", err)
	}
}

func CacheDel(keys ...string) {
	if err := Conn.Del(globals.Ctx, keys...).Err(); err != nil {
		log.Println("Redis Del error:", err)
	}
}
