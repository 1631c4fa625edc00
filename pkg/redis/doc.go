// Package redis connects to the redis server that carries server-pushed
// billing updates.
//
//	client, err := redis.Connect(ctx, redis.Config{
//	    ConnectionURL: "redis://localhost:6379/0",
//	    RetryAttempts: 3,
//	    RetryInterval: 2 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Healthcheck wraps a client into a check suitable for readiness endpoints.
package redis
