// Package redis connects to a Redis server with retries and exposes a small
// prefixed key-value Store plus a health check for the HTTP server.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil { ... }
//	store := redis.NewStore(client, cfg.KeyPrefix)
package redis
