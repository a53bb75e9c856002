package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := Load()
	is.Equal(c.Strategy, "minimize_tiles")
	is.Equal(c.TimeLimitMs, int64(5000))
	is.Equal(c.Threads, 1)
	is.Equal(c.TimeBudget(), 5*time.Second)
}

func TestLoadFromEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("RUMMISOLVE_STRATEGY", "minimize_points")
	t.Setenv("RUMMISOLVE_TIME_LIMIT_MS", "250")
	t.Setenv("RUMMISOLVE_THREADS", "4")

	c := Load()
	is.Equal(c.Strategy, "minimize_points")
	is.Equal(c.TimeBudget(), 250*time.Millisecond)
	is.Equal(c.Threads, 4)
}
